package services

import (
	"testing"
	"time"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountService_Validate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name       string
		discount   *models.DiscountCode
		code       string
		subtotal   float64
		wantAmount float64
		wantReason DiscountReason
	}{
		{
			name:       "unknown code",
			code:       "NOPE",
			subtotal:   100,
			wantReason: DiscountCodeNotFound,
		},
		{
			name: "inactive code",
			discount: &models.DiscountCode{
				Code: "OFF10", Type: models.DiscountPercentage, Value: 10, IsActive: false,
			},
			code: "OFF10", subtotal: 100,
			wantReason: DiscountInactive,
		},
		{
			name: "not started yet",
			discount: &models.DiscountCode{
				Code: "SOON", Type: models.DiscountFixed, Value: 5, IsActive: true, StartDate: &future,
			},
			code: "SOON", subtotal: 100,
			wantReason: DiscountNotStarted,
		},
		{
			name: "expired",
			discount: &models.DiscountCode{
				Code: "LATE", Type: models.DiscountFixed, Value: 5, IsActive: true, EndDate: &past,
			},
			code: "LATE", subtotal: 100,
			wantReason: DiscountExpired,
		},
		{
			name: "usage limit reached",
			discount: &models.DiscountCode{
				Code: "FULL", Type: models.DiscountFixed, Value: 5, IsActive: true,
				UsageLimit: intPtr(3), UsageCount: 3,
			},
			code: "FULL", subtotal: 100,
			wantReason: DiscountUsageLimitReached,
		},
		{
			name: "below minimum order total",
			discount: &models.DiscountCode{
				Code: "BIG", Type: models.DiscountPercentage, Value: 10, IsActive: true, MinOrderTotal: 30,
			},
			code: "BIG", subtotal: 25.500,
			wantReason: DiscountBelowMinimum,
		},
		{
			name: "fixed amount",
			discount: &models.DiscountCode{
				Code: "FIVE", Type: models.DiscountFixed, Value: 5, IsActive: true,
			},
			code: "FIVE", subtotal: 100,
			wantAmount: 5,
		},
		{
			name: "fixed amount capped at subtotal",
			discount: &models.DiscountCode{
				Code: "HUGE", Type: models.DiscountFixed, Value: 50, IsActive: true,
			},
			code: "HUGE", subtotal: 30,
			wantAmount: 30,
		},
		{
			name: "percentage",
			discount: &models.DiscountCode{
				Code: "TEN", Type: models.DiscountPercentage, Value: 10, IsActive: true,
			},
			code: "TEN", subtotal: 200,
			wantAmount: 20,
		},
		{
			name: "percentage capped by max discount amount",
			discount: &models.DiscountCode{
				Code: "SAVE10", Type: models.DiscountPercentage, Value: 10, IsActive: true,
				MinOrderTotal: 20, MaxDiscountAmount: floatPtr(3),
			},
			code: "SAVE10", subtotal: 25.500,
			wantAmount: 2.550,
		},
		{
			name: "percentage cap kicks in above threshold",
			discount: &models.DiscountCode{
				Code: "CAPPED", Type: models.DiscountPercentage, Value: 10, IsActive: true,
				MaxDiscountAmount: floatPtr(3),
			},
			code: "CAPPED", subtotal: 80,
			wantAmount: 3,
		},
		{
			name: "lookup is case-insensitive",
			discount: &models.DiscountCode{
				Code: "WELCOME", Type: models.DiscountFixed, Value: 2, IsActive: true,
			},
			code: "welcome", subtotal: 50,
			wantAmount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			discounts := NewDiscountService(db)
			if tt.discount != nil {
				require.NoError(t, db.Create(tt.discount).Error)
			}

			applied, err := discounts.Validate(tt.code, tt.subtotal, "", now)

			if tt.wantReason != "" {
				var discountErr *DiscountError
				require.ErrorAs(t, err, &discountErr)
				assert.Equal(t, tt.wantReason, discountErr.Reason)
				if tt.wantReason == DiscountBelowMinimum {
					assert.Equal(t, tt.discount.MinOrderTotal, discountErr.MinOrderTotal)
				}
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantAmount, applied.Amount, 1e-9)
			assert.LessOrEqual(t, applied.Amount, tt.subtotal, "a discount can never exceed the subtotal")
		})
	}
}

func TestDiscountService_ValidateIsPure(t *testing.T) {
	db := setupTestDB(t)
	discounts := NewDiscountService(db)
	now := time.Now()

	require.NoError(t, db.Create(&models.DiscountCode{
		Code: "PURE", Type: models.DiscountPercentage, Value: 10, IsActive: true, UsageLimit: intPtr(5),
	}).Error)

	first, err := discounts.Validate("PURE", 100, "", now)
	require.NoError(t, err)
	second, err := discounts.Validate("PURE", 100, "", now)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same code, subtotal and time must yield the same decision")
	assert.Equal(t, 0, discountUsage(t, db, "PURE"), "validation must not consume usage")
}

func TestDiscountService_PerUserLimit(t *testing.T) {
	db := setupTestDB(t)
	discounts := NewDiscountService(db)
	now := time.Now()

	require.NoError(t, db.Create(&models.DiscountCode{
		Code: "ONCE", Type: models.DiscountFixed, Value: 2, IsActive: true, PerUserLimit: intPtr(1),
	}).Error)

	// Redemptions are attributed by customer phone (guest checkout has no
	// stable identity). A cancelled order does not count.
	code := "ONCE"
	require.NoError(t, db.Create(&models.Order{
		OrderCode: "KTB-AAAAAA", CustomerName: "A", CustomerPhone: "0911111111",
		City: "Tripoli", Address: "x", Subtotal: 10, Total: 10,
		Status: models.StatusProcessing, DiscountCode: &code,
	}).Error)

	_, err := discounts.Validate("ONCE", 50, "0911111111", now)
	var discountErr *DiscountError
	require.ErrorAs(t, err, &discountErr)
	assert.Equal(t, DiscountPerUserLimitReached, discountErr.Reason)

	// A different phone is unaffected.
	applied, err := discounts.Validate("ONCE", 50, "0922222222", now)
	require.NoError(t, err)
	assert.InDelta(t, 2, applied.Amount, 1e-9)

	// Cancelling the prior order frees the redemption.
	require.NoError(t, db.Model(&models.Order{}).
		Where("order_code = ?", "KTB-AAAAAA").
		Update("status", models.StatusCancelled).Error)
	_, err = discounts.Validate("ONCE", 50, "0911111111", now)
	assert.NoError(t, err)
}

func TestDiscountService_ConsumeUsage(t *testing.T) {
	db := setupTestDB(t)
	discounts := NewDiscountService(db)

	require.NoError(t, db.Create(&models.DiscountCode{
		Code: "LIMITED", Type: models.DiscountFixed, Value: 1, IsActive: true, UsageLimit: intPtr(2),
	}).Error)

	require.NoError(t, discounts.ConsumeUsage(db, "LIMITED"))
	require.NoError(t, discounts.ConsumeUsage(db, "limited")) // case-insensitive
	assert.Equal(t, 2, discountUsage(t, db, "LIMITED"))

	// Third redemption loses the conditional update.
	err := discounts.ConsumeUsage(db, "LIMITED")
	var discountErr *DiscountError
	require.ErrorAs(t, err, &discountErr)
	assert.Equal(t, DiscountUsageLimitReached, discountErr.Reason)
	assert.Equal(t, 2, discountUsage(t, db, "LIMITED"))
}

func TestDiscountService_ConsumeUsageUnlimited(t *testing.T) {
	db := setupTestDB(t)
	discounts := NewDiscountService(db)

	require.NoError(t, db.Create(&models.DiscountCode{
		Code: "OPEN", Type: models.DiscountFixed, Value: 1, IsActive: true,
	}).Error)

	for i := 0; i < 5; i++ {
		require.NoError(t, discounts.ConsumeUsage(db, "OPEN"))
	}
	assert.Equal(t, 5, discountUsage(t, db, "OPEN"))
}
