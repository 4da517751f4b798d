package models

import "time"

// DeliveryPartner is a courier the store hands orders to. Its configured
// fee wins over any caller-supplied fee when the partner is active.
type DeliveryPartner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `json:"phone,omitempty"`
	DeliveryFees float64   `gorm:"not null;default:0" json:"delivery_fees"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the DeliveryPartner model
func (DeliveryPartner) TableName() string {
	return "delivery_partners"
}
