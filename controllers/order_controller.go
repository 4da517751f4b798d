package controllers

import (
	"net/http"

	"github.com/abdougarali/Koutob-Library-sub000/config"
	"github.com/abdougarali/Koutob-Library-sub000/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderItemRequest is one cart line in the order placement payload. Book
// is an opaque reference: a numeric id or a slug.
type OrderItemRequest struct {
	Book     string `json:"book" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest represents the request body for placing an order.
// Prices never appear here: the engine snapshots them from the catalog.
type PlaceOrderRequest struct {
	CustomerName      string             `json:"customer_name" binding:"required,max=100"`
	CustomerPhone     string             `json:"customer_phone" binding:"required,min=8,max=20"`
	CustomerEmail     string             `json:"customer_email" binding:"omitempty,email"`
	City              string             `json:"city" binding:"required,max=100"`
	Address           string             `json:"address" binding:"required,max=500"`
	Notes             string             `json:"notes" binding:"omitempty,max=1000"`
	Items             []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountCode      string             `json:"discount_code"`
	DeliveryPartnerID *uint              `json:"delivery_partner_id"`
	DeliveryFee       *float64           `json:"delivery_fee" binding:"omitempty,gte=0"`
}

// newOrderService wires the order engine against the active database.
func newOrderService(db *gorm.DB) *services.OrderService {
	defaultFee := 25.0
	if cfg := config.GetConfig(); cfg != nil {
		defaultFee = cfg.DefaultDeliveryFee
	}
	return services.NewOrderService(
		db,
		services.NewStockService(db),
		services.NewDiscountService(db),
		services.NewDeliveryService(db, defaultFee),
	)
}

// PlaceOrder handles POST /api/v1/orders - converts a cart into an order
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
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

	items := make([]services.CreateOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = services.CreateOrderItemInput{
			Ref:      services.ParseBookRef(item.Book),
			Quantity: item.Quantity,
		}
	}

	svc := newOrderService(config.GetDB())
	order, err := svc.CreateOrder(services.CreateOrderInput{
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerEmail:     req.CustomerEmail,
		City:              req.City,
		Address:           req.Address,
		Notes:             req.Notes,
		Items:             items,
		DiscountCode:      req.DiscountCode,
		DeliveryPartnerID: req.DeliveryPartnerID,
		DeliveryFee:       req.DeliveryFee,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// TrackOrder handles GET /api/v1/orders/track/:code - customer order tracking
func TrackOrder(c *gin.Context) {
	code := c.Param("code")

	queries := services.NewOrderQueryService(config.GetDB())
	order, err := queries.GetByCode(code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// MyOrders handles GET /api/v1/orders/my?phone=&email= - customer
// self-service lookup. With neither filter the response is an empty list;
// the full listing is admin-only.
func MyOrders(c *gin.Context) {
	email := c.Query("email")
	phone := c.Query("phone")

	queries := services.NewOrderQueryService(config.GetDB())
	orders, err := queries.GetByCustomer(email, phone)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}
