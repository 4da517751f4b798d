package models

import (
	"time"

	"gorm.io/gorm"
)

// Book represents a catalog item. The catalog itself (browsing, search,
// cover images) is managed elsewhere; the order engine reads books and
// conditionally decrements their stock at order-commit time.
type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string         `gorm:"not null" json:"title"`
	Author    string         `json:"author,omitempty"`
	Price     float64        `gorm:"not null" json:"price"` // decimal major units, e.g. 19.900
	Stock     int            `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Book model
func (Book) TableName() string {
	return "books"
}
