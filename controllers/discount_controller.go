package controllers

import (
	"net/http"
	"time"

	"github.com/abdougarali/Koutob-Library-sub000/config"
	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/abdougarali/Koutob-Library-sub000/services"
	"github.com/gin-gonic/gin"
)

// PreviewDiscountRequest represents the request body for a checkout preview.
// The decision here is advisory: the same validation runs again at order
// commit, where time, subtotal and usage may all have moved.
type PreviewDiscountRequest struct {
	Code          string  `json:"code" binding:"required"`
	Subtotal      float64 `json:"subtotal" binding:"required,gt=0"`
	CustomerPhone string  `json:"customer_phone" binding:"omitempty,min=8,max=20"`
}

// CreateDiscountRequest represents the request body for creating a discount code
type CreateDiscountRequest struct {
	Code              string     `json:"code" binding:"required,max=50"`
	Type              string     `json:"type" binding:"required,oneof=percentage fixed"`
	Value             float64    `json:"value" binding:"required,gt=0"`
	MinOrderTotal     float64    `json:"min_order_total" binding:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" binding:"omitempty,gt=0"`
	UsageLimit        *int       `json:"usage_limit" binding:"omitempty,gt=0"`
	PerUserLimit      *int       `json:"per_user_limit" binding:"omitempty,gt=0"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          *bool      `json:"is_active"`
}

// UpdateDiscountRequest represents the request body for editing a discount
// code. UsageCount is deliberately absent: only order commits move it.
type UpdateDiscountRequest struct {
	Value             *float64   `json:"value" binding:"omitempty,gt=0"`
	MinOrderTotal     *float64   `json:"min_order_total" binding:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" binding:"omitempty,gt=0"`
	UsageLimit        *int       `json:"usage_limit" binding:"omitempty,gt=0"`
	PerUserLimit      *int       `json:"per_user_limit" binding:"omitempty,gt=0"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          *bool      `json:"is_active"`
}

// PreviewDiscount handles POST /api/v1/discounts/preview - checkout preview
func PreviewDiscount(c *gin.Context) {
	var req PreviewDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	discounts := services.NewDiscountService(config.GetDB())
	applied, err := discounts.Validate(req.Code, req.Subtotal, req.CustomerPhone, time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    applied,
	})
}

// CreateDiscount handles POST /api/v1/admin/discounts - creates a discount code
func CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	discountType := models.DiscountType(req.Type)
	if discountType == models.DiscountPercentage && req.Value > 100 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A percentage discount cannot exceed 100",
			},
		})
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "end_date cannot be before start_date",
			},
		})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	discount := models.DiscountCode{
		Code:              services.NormalizeCode(req.Code),
		Type:              discountType,
		Value:             req.Value,
		MinOrderTotal:     req.MinOrderTotal,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		PerUserLimit:      req.PerUserLimit,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          isActive,
	}

	db := config.GetDB()
	if err := db.Create(&discount).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_CODE",
				"message": "A discount code with this name already exists",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    discount,
	})
}

// ListDiscounts handles GET /api/v1/admin/discounts - lists all discount codes
func ListDiscounts(c *gin.Context) {
	var discounts []models.DiscountCode
	db := config.GetDB()
	if err := db.Order("created_at DESC, id DESC").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list discount codes",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    discounts,
	})
}

// UpdateDiscount handles PATCH /api/v1/admin/discounts/:code - edits a discount code
func UpdateDiscount(c *gin.Context) {
	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	discounts := services.NewDiscountService(db)
	discount, err := discounts.FindByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up discount code",
			},
		})
		return
	}
	if discount == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISCOUNT_CODE_NOT_FOUND",
				"message": "Discount code not found",
			},
		})
		return
	}

	if req.Value != nil {
		if discount.Type == models.DiscountPercentage && *req.Value > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "A percentage discount cannot exceed 100",
				},
			})
			return
		}
		discount.Value = *req.Value
	}
	if req.MinOrderTotal != nil {
		discount.MinOrderTotal = *req.MinOrderTotal
	}
	if req.MaxDiscountAmount != nil {
		discount.MaxDiscountAmount = req.MaxDiscountAmount
	}
	if req.UsageLimit != nil {
		discount.UsageLimit = req.UsageLimit
	}
	if req.PerUserLimit != nil {
		discount.PerUserLimit = req.PerUserLimit
	}
	if req.StartDate != nil {
		discount.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		discount.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		discount.IsActive = *req.IsActive
	}

	// Checked on the patched result so a new end_date cannot slip behind
	// an already stored start_date.
	if discount.StartDate != nil && discount.EndDate != nil && discount.EndDate.Before(*discount.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "end_date cannot be before start_date",
			},
		})
		return
	}

	if err := db.Save(discount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update discount code",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    discount,
	})
}
