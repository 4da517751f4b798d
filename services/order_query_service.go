package services

import (
	"errors"
	"fmt"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"gorm.io/gorm"
)

// List bounds for the admin order listing.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// OrderListFilters narrows the admin order listing. Zero values mean "no
// filter". Limit is clamped to MaxListLimit and defaults to DefaultListLimit.
type OrderListFilters struct {
	Status       models.OrderStatus
	Phone        string
	DiscountCode string
	Limit        int
}

// OrderQueryService is the read side of the order engine.
type OrderQueryService struct {
	db *gorm.DB
}

// NewOrderQueryService creates a query service backed by the given database.
func NewOrderQueryService(db *gorm.DB) *OrderQueryService {
	return &OrderQueryService{db: db}
}

// withOrderAssociations preloads everything an order response carries:
// items in insertion order, the full status history in append order, the
// live book rows (nil after catalog deletion) and the delivery partner.
func withOrderAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Items.Book").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("DeliveryPartner")
}

// GetByCode returns the order with the given public code, or ErrOrderNotFound.
func (s *OrderQueryService) GetByCode(code string) (*models.Order, error) {
	var order models.Order
	err := withOrderAssociations(s.db).Where("order_code = ?", code).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order by code: %w", err)
	}
	return &order, nil
}

// GetByCustomer returns orders matching the given email or phone, newest
// first. With neither filter it returns an empty slice, never the whole
// table: this is the customer-privacy boundary for the self-service lookup.
func (s *OrderQueryService) GetByCustomer(email, phone string) ([]models.Order, error) {
	if email == "" && phone == "" {
		return []models.Order{}, nil
	}

	q := withOrderAssociations(s.db)
	switch {
	case email != "" && phone != "":
		q = q.Where("customer_email = ? OR customer_phone = ?", email, phone)
	case email != "":
		q = q.Where("customer_email = ?", email)
	default:
		q = q.Where("customer_phone = ?", phone)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load customer orders: %w", err)
	}
	return orders, nil
}

// ListAll is the administrative listing: filtered, newest first, and always
// bounded so a busy store cannot trigger an unbounded scan.
func (s *OrderQueryService) ListAll(filters OrderListFilters) ([]models.Order, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	q := withOrderAssociations(s.db)
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Phone != "" {
		q = q.Where("customer_phone = ?", filters.Phone)
	}
	if filters.DiscountCode != "" {
		q = q.Where("discount_code = ?", NormalizeCode(filters.DiscountCode))
	}

	var orders []models.Order
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
