package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving from s
// to next. A processing order may be re-confirmed (processing -> processing),
// shipped or cancelled; a shipped order may be delivered or cancelled;
// delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusProcessing:
		return next == StatusProcessing || next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered || next == StatusCancelled
	}
	return false
}

// ArabicLabel returns the storefront display label for the status.
func (s OrderStatus) ArabicLabel() string {
	switch s {
	case StatusProcessing:
		return "قيد المعالجة"
	case StatusShipped:
		return "تم الإرسال"
	case StatusDelivered:
		return "تم التسليم"
	case StatusCancelled:
		return "تم الإلغاء"
	}
	return string(s)
}

// Order represents a placed customer order. Money fields are decimal major
// units (e.g. 19.900). Total is always recomputed server-side from subtotal,
// discount amount and delivery fees; it is never accepted from a client.
type Order struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	OrderCode         string             `gorm:"uniqueIndex;not null" json:"order_code"`
	CustomerName      string             `gorm:"not null" json:"customer_name"`
	CustomerPhone     string             `gorm:"not null;index" json:"customer_phone"`
	CustomerEmail     string             `gorm:"index" json:"customer_email,omitempty"`
	City              string             `gorm:"not null" json:"city"`
	Address           string             `gorm:"not null" json:"address"`
	Notes             string             `json:"notes,omitempty"`
	Items             []OrderItem        `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Subtotal          float64            `gorm:"not null" json:"subtotal"`
	DiscountCode      *string            `json:"discount_code,omitempty"`
	DiscountAmount    float64            `gorm:"not null;default:0" json:"discount_amount"`
	DeliveryFees      float64            `gorm:"not null;default:0" json:"delivery_fees"`
	Total             float64            `gorm:"not null" json:"total"`
	Status            OrderStatus        `gorm:"not null;default:'processing';index" json:"status"`
	StatusHistory     []OrderStatusEntry `gorm:"constraint:OnDelete:CASCADE" json:"status_history"`
	DeliveryPartnerID *uint              `gorm:"index" json:"delivery_partner_id,omitempty"`
	DeliveryPartner   *DeliveryPartner   `json:"delivery_partner,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	ConfirmedAt       *time.Time         `json:"confirmed_at,omitempty"`
	DeliveredAt       *time.Time         `json:"delivered_at,omitempty"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. Title and price are snapshots taken at
// order time so historical orders do not change when the catalog does.
// BookID goes null when the referenced book is later deleted; the order
// stays readable through the snapshots.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"-"`
	BookID   *uint   `gorm:"index" json:"book_id"`
	Book     *Book   `gorm:"constraint:OnDelete:SET NULL" json:"book"`
	Title    string  `gorm:"not null" json:"title"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Position int     `gorm:"not null;default:0" json:"-"` // insertion order for display
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatusEntry is one line of an order's append-only status audit trail.
// Entries are only ever inserted, never edited or removed.
type OrderStatusEntry struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"-"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Note      string      `json:"note,omitempty"`
	UpdatedBy string      `json:"updated_by,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the OrderStatusEntry model
func (OrderStatusEntry) TableName() string {
	return "order_status_entries"
}
