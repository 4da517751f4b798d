package models

import "time"

// DiscountType distinguishes percentage discounts from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// DiscountCode is an admin-managed promotion code. Codes are stored
// uppercase and matched case-insensitively. UsageCount is only ever moved
// by a conditional update at order-commit time; there is no refund flow
// that decrements it.
type DiscountCode struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Code              string       `gorm:"uniqueIndex;not null" json:"code"`
	Type              DiscountType `gorm:"not null" json:"type"`
	Value             float64      `gorm:"not null" json:"value"`
	MinOrderTotal     float64      `gorm:"not null;default:0" json:"min_order_total"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty"` // caps a percentage discount in currency
	UsageLimit        *int         `json:"usage_limit,omitempty"`
	UsageCount        int          `gorm:"not null;default:0" json:"usage_count"`
	PerUserLimit      *int         `json:"per_user_limit,omitempty"` // keyed by customer phone
	StartDate         *time.Time   `json:"start_date,omitempty"`
	EndDate           *time.Time   `json:"end_date,omitempty"`
	IsActive          bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the DiscountCode model
func (DiscountCode) TableName() string {
	return "discount_codes"
}
