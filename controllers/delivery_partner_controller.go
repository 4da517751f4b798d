package controllers

import (
	"errors"
	"net/http"

	"github.com/abdougarali/Koutob-Library-sub000/config"
	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateDeliveryPartnerRequest represents the request body for creating a delivery partner
type CreateDeliveryPartnerRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Phone        string  `json:"phone" binding:"omitempty,max=20"`
	DeliveryFees float64 `json:"delivery_fees" binding:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

// UpdateDeliveryPartnerRequest represents the request body for editing a delivery partner
type UpdateDeliveryPartnerRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=100"`
	Phone        *string  `json:"phone" binding:"omitempty,max=20"`
	DeliveryFees *float64 `json:"delivery_fees" binding:"omitempty,gte=0"`
	IsActive     *bool    `json:"is_active"`
}

// CreateDeliveryPartner handles POST /api/v1/admin/delivery-partners
func CreateDeliveryPartner(c *gin.Context) {
	var req CreateDeliveryPartnerRequest
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

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	partner := models.DeliveryPartner{
		Name:         req.Name,
		Phone:        req.Phone,
		DeliveryFees: req.DeliveryFees,
		IsActive:     isActive,
	}

	db := config.GetDB()
	if err := db.Create(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create delivery partner",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    partner,
	})
}

// ListDeliveryPartners handles GET /api/v1/admin/delivery-partners
func ListDeliveryPartners(c *gin.Context) {
	var partners []models.DeliveryPartner
	db := config.GetDB()
	if err := db.Order("name ASC").Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list delivery partners",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    partners,
	})
}

// UpdateDeliveryPartner handles PATCH /api/v1/admin/delivery-partners/:id
func UpdateDeliveryPartner(c *gin.Context) {
	var req UpdateDeliveryPartnerRequest
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
	var partner models.DeliveryPartner
	if err := db.First(&partner, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PARTNER_NOT_FOUND",
					"message": "Delivery partner not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up delivery partner",
			},
		})
		return
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.DeliveryFees != nil {
		partner.DeliveryFees = *req.DeliveryFees
	}
	if req.IsActive != nil {
		partner.IsActive = *req.IsActive
	}

	if err := db.Save(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update delivery partner",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    partner,
	})
}
