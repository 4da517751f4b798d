package main

import (
	"log"
	"net/http"

	"github.com/abdougarali/Koutob-Library-sub000/config"
	"github.com/abdougarali/Koutob-Library-sub000/controllers"
	"github.com/abdougarali/Koutob-Library-sub000/middleware"
	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting Koutob order API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Book{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEntry{},
		&models.DiscountCode{},
		&models.DeliveryPartner{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize Gin router with all routes
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the router: public storefront routes and the
// JWT-guarded admin surface.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public storefront routes
		v1.POST("/orders", controllers.PlaceOrder)
		v1.GET("/orders/track/:code", controllers.TrackOrder)
		v1.GET("/orders/my", controllers.MyOrders)
		v1.POST("/discounts/preview", controllers.PreviewDiscount)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg))
		{
			admin.GET("/orders", middleware.RequireScope("manage:orders"), controllers.ListOrders)
			admin.GET("/orders/:code", middleware.RequireScope("manage:orders"), controllers.GetOrder)
			admin.PATCH("/orders/:code/status", middleware.RequireScope("manage:orders"), controllers.UpdateOrderStatus)

			admin.POST("/discounts", middleware.RequireScope("manage:discounts"), controllers.CreateDiscount)
			admin.GET("/discounts", middleware.RequireScope("manage:discounts"), controllers.ListDiscounts)
			admin.PATCH("/discounts/:code", middleware.RequireScope("manage:discounts"), controllers.UpdateDiscount)

			admin.POST("/delivery-partners", middleware.RequireScope("manage:partners"), controllers.CreateDeliveryPartner)
			admin.GET("/delivery-partners", middleware.RequireScope("manage:partners"), controllers.ListDeliveryPartners)
			admin.PATCH("/delivery-partners/:id", middleware.RequireScope("manage:partners"), controllers.UpdateDeliveryPartner)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Koutob order API is running",
	})
}
