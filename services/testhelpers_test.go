package services

import (
	"testing"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testDefaultDeliveryFee matches the config default used in production.
const testDefaultDeliveryFee = 25.0

// setupTestDB creates a fresh in-memory database per test. The pool is
// pinned to a single connection because every sqlite :memory: connection
// is its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Book{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEntry{},
		&models.DiscountCode{},
		&models.DeliveryPartner{},
	)
	require.NoError(t, err, "Failed to migrate test database")

	return db
}

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		NewStockService(db),
		NewDiscountService(db),
		NewDeliveryService(db, testDefaultDeliveryFee),
	)
}

func createBook(t *testing.T, db *gorm.DB, slug, title string, price float64, stock int) *models.Book {
	t.Helper()
	book := &models.Book{Slug: slug, Title: title, Price: price, Stock: stock}
	require.NoError(t, db.Create(book).Error)
	return book
}

func bookStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var book models.Book
	require.NoError(t, db.First(&book, id).Error)
	return book.Stock
}

func discountUsage(t *testing.T, db *gorm.DB, code string) int {
	t.Helper()
	var dc models.DiscountCode
	require.NoError(t, db.Where("code = ?", code).First(&dc).Error)
	return dc.UsageCount
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	return n
}

// sampleCart returns the standard two-book cart used across scenarios:
// Book A 10.000 x2 and Book B 5.500 x1, subtotal 25.500.
func sampleCart(t *testing.T, db *gorm.DB) (bookA, bookB *models.Book, input CreateOrderInput) {
	t.Helper()
	bookA = createBook(t, db, "book-a", "Book A", 10.000, 10)
	bookB = createBook(t, db, "book-b", "Book B", 5.500, 10)
	input = CreateOrderInput{
		CustomerName:  "Amal Benali",
		CustomerPhone: "0912345678",
		City:          "Tripoli",
		Address:       "12 Omar Mukhtar St",
		Items: []CreateOrderItemInput{
			{Ref: RefByID(bookA.ID), Quantity: 2},
			{Ref: RefByID(bookB.ID), Quantity: 1},
		},
	}
	return bookA, bookB, input
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func uintPtr(v uint) *uint { return &v }

func boolPtr(v bool) *bool { return &v }
