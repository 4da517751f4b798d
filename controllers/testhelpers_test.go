package controllers

import (
	"testing"

	"github.com/abdougarali/Koutob-Library-sub000/config"
	"github.com/abdougarali/Koutob-Library-sub000/middleware"
	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates a fresh in-memory database, installs it as the
// active database and returns it. The pool is pinned to one connection
// because every sqlite :memory: connection is its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Book{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEntry{},
		&models.DiscountCode{},
		&models.DeliveryPartner{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{GoEnv: "test", DefaultDeliveryFee: 25})
	return db
}

// setupTestRouter creates a bare router in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// mockAuthMiddleware injects admin claims the way EnsureValidToken would,
// without a live Auth0 tenant.
func mockAuthMiddleware(actorID, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor_id", actorID)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: actorID},
			CustomClaims:     &middleware.CustomClaims{Scope: scope},
		})
		c.Next()
	}
}
