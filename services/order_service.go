package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"gorm.io/gorm"
)

// CreateOrderItemInput is one cart line as submitted by the caller. Only
// the reference and quantity are taken from the client; title and price are
// snapshotted from the catalog so a tampered payload cannot change pricing.
type CreateOrderItemInput struct {
	Ref      BookRef
	Quantity int
}

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	CustomerName      string
	CustomerPhone     string
	CustomerEmail     string
	City              string
	Address           string
	Notes             string
	Items             []CreateOrderItemInput
	DiscountCode      string
	DeliveryPartnerID *uint
	DeliveryFee       *float64
}

// OrderService is the order aggregate: creation and status transitions.
type OrderService struct {
	db        *gorm.DB
	stock     *StockService
	discounts *DiscountService
	delivery  *DeliveryService
}

// NewOrderService wires the order service with its collaborating ledgers.
func NewOrderService(db *gorm.DB, stock *StockService, discounts *DiscountService, delivery *DeliveryService) *OrderService {
	return &OrderService{db: db, stock: stock, discounts: discounts, delivery: delivery}
}

// orderCodeAttempts bounds retries on an order-code collision.
const orderCodeAttempts = 3

type resolvedLine struct {
	book     *models.Book
	quantity int
}

// CreateOrder converts a cart into a durable order. All validation happens
// before any side effect; the order row, its items, the seed status entry,
// every stock decrement and the discount usage increment commit in a single
// database transaction, so a failure at any step leaves nothing behind.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if err := validateCreateOrderInput(&input); err != nil {
		return nil, err
	}

	// Resolve every line and snapshot catalog prices. The availability
	// check here fails fast with an accurate count; the conditional
	// decrement inside the transaction is what actually prevents oversell.
	lines := make([]resolvedLine, 0, len(input.Items))
	subtotal := 0.0
	for _, item := range input.Items {
		book, err := s.stock.Resolve(item.Ref)
		if err != nil {
			return nil, err
		}
		if err := s.stock.CheckAvailability(book, item.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, resolvedLine{book: book, quantity: item.Quantity})
		subtotal += book.Price * float64(item.Quantity)
	}
	subtotal = roundMoney(subtotal)

	deliveryFee, partnerID, err := s.delivery.ResolveFee(input.DeliveryPartnerID, input.DeliveryFee)
	if err != nil {
		return nil, err
	}

	// Commit-time discount validation, regardless of any earlier preview.
	var applied *AppliedDiscount
	if input.DiscountCode != "" {
		applied, err = s.discounts.Validate(input.DiscountCode, subtotal, input.CustomerPhone, time.Now())
		if err != nil {
			return nil, err
		}
	}

	discountAmount := 0.0
	var discountCode *string
	if applied != nil {
		discountAmount = applied.Amount
		discountCode = &applied.Code
	}
	total := computeTotal(subtotal, discountAmount, deliveryFee)

	var lastErr error
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		code, err := GenerateOrderCode()
		if err != nil {
			return nil, err
		}

		order := s.buildOrder(&input, lines, code, subtotal, discountCode, discountAmount, deliveryFee, partnerID, total)
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
			for _, line := range lines {
				if err := s.stock.Decrement(tx, line.book, line.quantity); err != nil {
					return err
				}
			}
			if applied != nil {
				if err := s.discounts.ConsumeUsage(tx, applied.Code); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return s.reload(order.ID)
		}
		if isDuplicateKey(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate a unique order code after %d attempts: %w", orderCodeAttempts, lastErr)
}

func (s *OrderService) buildOrder(input *CreateOrderInput, lines []resolvedLine, code string,
	subtotal float64, discountCode *string, discountAmount, deliveryFee float64,
	partnerID *uint, total float64) *models.Order {

	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		bookID := line.book.ID
		items[i] = models.OrderItem{
			BookID:   &bookID,
			Title:    line.book.Title,
			Price:    line.book.Price,
			Quantity: line.quantity,
			Position: i,
		}
	}

	return &models.Order{
		OrderCode:         code,
		CustomerName:      input.CustomerName,
		CustomerPhone:     input.CustomerPhone,
		CustomerEmail:     input.CustomerEmail,
		City:              input.City,
		Address:           input.Address,
		Notes:             input.Notes,
		Items:             items,
		Subtotal:          subtotal,
		DiscountCode:      discountCode,
		DiscountAmount:    discountAmount,
		DeliveryFees:      deliveryFee,
		Total:             total,
		Status:            models.StatusProcessing,
		DeliveryPartnerID: partnerID,
		StatusHistory: []models.OrderStatusEntry{
			{Status: models.StatusProcessing},
		},
	}
}

// UpdateStatus moves an order through the state machine and appends exactly
// one audit entry. The write is conditional on the status we read, so two
// admins racing on the same order cannot both apply a transition. Setting a
// shipped order to cancelled requires a note explaining why.
func (s *OrderService) UpdateStatus(orderCode string, next models.OrderStatus, note, updatedBy string) (*models.Order, error) {
	if !next.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", next)}
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("order_code = ?", orderCode).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		orderID = order.ID

		if !order.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{From: order.Status, To: next}
		}
		if order.Status == models.StatusShipped && next == models.StatusCancelled && strings.TrimSpace(note) == "" {
			return &ValidationError{Field: "note", Message: "a note is required when cancelling a shipped order"}
		}

		now := time.Now()
		updates := map[string]interface{}{"status": next, "updated_at": now}
		if next == models.StatusDelivered {
			updates["delivered_at"] = now
		}
		if next == models.StatusProcessing {
			// Re-confirmation of a processing order.
			updates["confirmed_at"] = now
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Someone else moved the order first; their transition won.
			return &InvalidTransitionError{From: order.Status, To: next}
		}

		entry := models.OrderStatusEntry{
			OrderID:   order.ID,
			Status:    next,
			Note:      strings.TrimSpace(note),
			UpdatedBy: updatedBy,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(orderID)
}

func (s *OrderService) reload(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := withOrderAssociations(s.db).First(&order, orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return &order, nil
}

func validateCreateOrderInput(input *CreateOrderInput) error {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	input.City = strings.TrimSpace(input.City)
	input.Address = strings.TrimSpace(input.Address)

	switch {
	case input.CustomerName == "":
		return &ValidationError{Field: "customer_name", Message: "required"}
	case len(input.CustomerName) > 100:
		return &ValidationError{Field: "customer_name", Message: "must be at most 100 characters"}
	case input.CustomerPhone == "":
		return &ValidationError{Field: "customer_phone", Message: "required"}
	case len(input.CustomerPhone) < 8 || len(input.CustomerPhone) > 20:
		return &ValidationError{Field: "customer_phone", Message: "must be between 8 and 20 characters"}
	case input.City == "":
		return &ValidationError{Field: "city", Message: "required"}
	case len(input.City) > 100:
		return &ValidationError{Field: "city", Message: "must be at most 100 characters"}
	case input.Address == "":
		return &ValidationError{Field: "address", Message: "required"}
	case len(input.Address) > 500:
		return &ValidationError{Field: "address", Message: "must be at most 500 characters"}
	case len(input.Notes) > 1000:
		return &ValidationError{Field: "notes", Message: "must be at most 1000 characters"}
	case len(input.Items) == 0:
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}

	for i, item := range input.Items {
		if item.Ref.ID == 0 && item.Ref.Slug == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].book", i), Message: "required"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be at least 1"}
		}
	}
	return nil
}

// isDuplicateKey detects a unique-constraint violation on insert. The only
// unique index hit by order creation is orders.order_code, so this is the
// signal to regenerate the code and retry.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
