package controllers

import (
	"net/http"
	"strconv"

	"github.com/abdougarali/Koutob-Library-sub000/config"
	"github.com/abdougarali/Koutob-Library-sub000/middleware"
	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/abdougarali/Koutob-Library-sub000/services"
	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest represents the request body for a status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"omitempty,max=1000"`
}

// ListOrders handles GET /api/v1/admin/orders - administrative order listing
func ListOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "limit must be a positive integer",
				},
			})
			return
		}
		limit = parsed
	}

	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "unknown status filter",
			},
		})
		return
	}

	queries := services.NewOrderQueryService(config.GetDB())
	orders, err := queries.ListAll(services.OrderListFilters{
		Status:       status,
		Phone:        c.Query("phone"),
		DiscountCode: c.Query("discount_code"),
		Limit:        limit,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}

// GetOrder handles GET /api/v1/admin/orders/:code - admin order detail
func GetOrder(c *gin.Context) {
	queries := services.NewOrderQueryService(config.GetDB())
	order, err := queries.GetByCode(c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:code/status - moves
// an order through the state machine and appends one audit-trail entry
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
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

	// Record who moved the order; empty when the route runs without auth.
	actor, _ := middleware.GetActorID(c)

	svc := newOrderService(config.GetDB())
	order, err := svc.UpdateStatus(c.Param("code"), models.OrderStatus(req.Status), req.Note, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
