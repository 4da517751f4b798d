package services

import (
	"errors"
	"fmt"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"gorm.io/gorm"
)

// DeliveryService resolves the delivery fee to charge on an order.
type DeliveryService struct {
	db         *gorm.DB
	defaultFee float64
}

// NewDeliveryService creates a delivery service. defaultFee is the
// last-resort fee when neither a partner nor the caller supplies one.
func NewDeliveryService(db *gorm.DB, defaultFee float64) *DeliveryService {
	return &DeliveryService{db: db, defaultFee: defaultFee}
}

// ResolveFee picks the delivery fee with a three-tier fallback: an active
// partner's configured fee, then the caller-supplied fee, then the default.
// The UI pre-fetches partner data that can go stale between page load and
// submission, so an unresolvable or inactive partner is not an error; the
// order just falls back and carries no partner reference.
func (s *DeliveryService) ResolveFee(partnerID *uint, requestedFee *float64) (float64, *uint, error) {
	if partnerID != nil {
		var partner models.DeliveryPartner
		err := s.db.First(&partner, *partnerID).Error
		if err == nil && partner.IsActive {
			return roundMoney(partner.DeliveryFees), partnerID, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, fmt.Errorf("failed to resolve delivery partner: %w", err)
		}
	}

	if requestedFee != nil && *requestedFee >= 0 {
		return roundMoney(*requestedFee), nil, nil
	}

	return roundMoney(s.defaultFee), nil, nil
}
