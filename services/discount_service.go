package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"gorm.io/gorm"
)

// AppliedDiscount is the outcome of a successful validation: the normalized
// code and the amount to subtract from the subtotal.
type AppliedDiscount struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// DiscountService is the discount ledger: code validation, amount
// computation and usage tracking.
type DiscountService struct {
	db *gorm.DB
}

// NewDiscountService creates a discount service backed by the given database.
func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

// NormalizeCode maps a user-typed code to its stored form. Codes are
// case-insensitive and stored uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FindByCode returns the discount code row for a (case-insensitive) code,
// or nil when no such code exists.
func (s *DiscountService) FindByCode(code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	err := s.db.Where("code = ?", NormalizeCode(code)).First(&dc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up discount code: %w", err)
	}
	return &dc, nil
}

// Validate checks a code against its constraints for the given subtotal at
// the given time and computes the discount amount. It reads state but never
// writes: the usage increment happens separately in ConsumeUsage inside the
// order transaction. Validation here is repeated at commit time even when a
// checkout preview already ran it, since time, subtotal and usage may all
// have moved in between.
//
// customerPhone attributes guest redemptions for per-user limits; pass ""
// when no phone is known and the per-user check is skipped.
func (s *DiscountService) Validate(code string, subtotal float64, customerPhone string, now time.Time) (*AppliedDiscount, error) {
	dc, err := s.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, &DiscountError{Reason: DiscountCodeNotFound, Code: NormalizeCode(code)}
	}

	if !dc.IsActive {
		return nil, &DiscountError{Reason: DiscountInactive, Code: dc.Code}
	}
	if dc.StartDate != nil && now.Before(*dc.StartDate) {
		return nil, &DiscountError{Reason: DiscountNotStarted, Code: dc.Code}
	}
	if dc.EndDate != nil && now.After(*dc.EndDate) {
		return nil, &DiscountError{Reason: DiscountExpired, Code: dc.Code}
	}
	if dc.UsageLimit != nil && dc.UsageCount >= *dc.UsageLimit {
		return nil, &DiscountError{Reason: DiscountUsageLimitReached, Code: dc.Code}
	}
	if subtotal < dc.MinOrderTotal {
		return nil, &DiscountError{Reason: DiscountBelowMinimum, Code: dc.Code, MinOrderTotal: dc.MinOrderTotal}
	}

	if dc.PerUserLimit != nil && customerPhone != "" {
		var used int64
		err := s.db.Model(&models.Order{}).
			Where("discount_code = ? AND customer_phone = ? AND status <> ?",
				dc.Code, customerPhone, models.StatusCancelled).
			Count(&used).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count per-user redemptions: %w", err)
		}
		if used >= int64(*dc.PerUserLimit) {
			return nil, &DiscountError{Reason: DiscountPerUserLimitReached, Code: dc.Code}
		}
	}

	return &AppliedDiscount{Code: dc.Code, Amount: discountAmount(dc, subtotal)}, nil
}

// discountAmount computes the amount for a code already known to be valid.
// Fixed discounts are capped at the subtotal; percentage discounts are
// capped first by max_discount_amount, then by the subtotal.
func discountAmount(dc *models.DiscountCode, subtotal float64) float64 {
	var amount float64
	switch dc.Type {
	case models.DiscountFixed:
		amount = dc.Value
	case models.DiscountPercentage:
		amount = subtotal * dc.Value / 100
		if dc.MaxDiscountAmount != nil && amount > *dc.MaxDiscountAmount {
			amount = *dc.MaxDiscountAmount
		}
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return roundMoney(amount)
}

// ConsumeUsage records one redemption inside the caller's transaction. The
// usage limit is re-checked in the UPDATE itself so two orders racing for
// the last redemption of a limited code cannot both get it: the loser sees
// zero rows affected and the whole order rolls back.
func (s *DiscountService) ConsumeUsage(tx *gorm.DB, code string) error {
	res := tx.Model(&models.DiscountCode{}).
		Where("code = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", NormalizeCode(code)).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to record discount usage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &DiscountError{Reason: DiscountUsageLimitReached, Code: NormalizeCode(code)}
	}
	return nil
}
