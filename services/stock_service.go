package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/abdougarali/Koutob-Library-sub000/models"
	"gorm.io/gorm"
)

// BookRef is a tagged reference to a catalog item. Callers say explicitly
// whether they hold a database id or a slug instead of the resolver guessing
// from string shape. ParseBookRef exists for the API boundary where the
// client sends a single opaque string.
type BookRef struct {
	ID   uint
	Slug string
}

// RefByID references a book by its database id.
func RefByID(id uint) BookRef {
	return BookRef{ID: id}
}

// RefBySlug references a book by its URL slug.
func RefBySlug(slug string) BookRef {
	return BookRef{Slug: slug}
}

// ParseBookRef tags a raw client-supplied reference. A numeric string is
// tried as an id first with the raw value kept as a slug fallback, so a
// catalog that happens to use numeric slugs still resolves.
func ParseBookRef(raw string) BookRef {
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil && n > 0 {
		return BookRef{ID: uint(n), Slug: raw}
	}
	return BookRef{Slug: raw}
}

func (r BookRef) String() string {
	if r.Slug != "" {
		return r.Slug
	}
	return strconv.FormatUint(uint64(r.ID), 10)
}

// StockService is the stock ledger: it resolves book references and owns
// the only write path to books.stock.
type StockService struct {
	db *gorm.DB
}

// NewStockService creates a stock service backed by the given database.
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Resolve looks a reference up by id first (when one is tagged), then by
// slug. A miss on both returns ItemNotFoundError.
func (s *StockService) Resolve(ref BookRef) (*models.Book, error) {
	var book models.Book

	if ref.ID != 0 {
		err := s.db.First(&book, ref.ID).Error
		if err == nil {
			return &book, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve book by id: %w", err)
		}
	}

	if ref.Slug != "" {
		err := s.db.Where("slug = ?", ref.Slug).First(&book).Error
		if err == nil {
			return &book, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve book by slug: %w", err)
		}
	}

	return nil, &ItemNotFoundError{Ref: ref.String()}
}

// CheckAvailability verifies the book has at least quantity units on hand.
// This is the cheap pre-flight check; the authoritative check is the
// conditional update in Decrement.
func (s *StockService) CheckAvailability(book *models.Book, quantity int) error {
	if book.Stock < quantity {
		return &InsufficientStockError{
			Title:     book.Title,
			Requested: quantity,
			Available: book.Stock,
		}
	}
	return nil
}

// Decrement takes quantity units off a book's stock inside the caller's
// transaction. The precondition stock >= quantity is expressed in the
// UPDATE itself; zero rows affected means a concurrent order won the last
// units between our pre-flight check and this write, and the caller's
// transaction must roll back.
func (s *StockService) Decrement(tx *gorm.DB, book *models.Book, quantity int) error {
	res := tx.Model(&models.Book{}).
		Where("id = ? AND stock >= ?", book.ID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for %q: %w", book.Title, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race. Re-read for an accurate available count.
		available := 0
		var current models.Book
		if err := tx.First(&current, book.ID).Error; err == nil {
			available = current.Stock
		}
		return &InsufficientStockError{
			Title:     book.Title,
			Requested: quantity,
			Available: available,
		}
	}
	return nil
}
