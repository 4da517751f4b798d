package services

import (
	"errors"
	"fmt"

	"github.com/abdougarali/Koutob-Library-sub000/models"
)

// ErrOrderNotFound is returned by lookups when no order matches.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError reports a malformed input payload. The caller can fix
// the input and resubmit; it is never worth retrying as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ItemNotFoundError reports a cart line whose book reference resolved to
// nothing, neither as an id nor as a slug.
type ItemNotFoundError struct {
	Ref string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("book not found: %s", e.Ref)
}

// InsufficientStockError reports a cart line asking for more units than
// the catalog has on hand. Title and Available are surfaced so the UI can
// tell the customer exactly which book and how many are left.
type InsufficientStockError struct {
	Title     string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Title, e.Requested, e.Available)
}

// DiscountReason says why a discount code was rejected.
type DiscountReason string

const (
	DiscountCodeNotFound        DiscountReason = "CODE_NOT_FOUND"
	DiscountInactive            DiscountReason = "INACTIVE"
	DiscountNotStarted          DiscountReason = "NOT_STARTED"
	DiscountExpired             DiscountReason = "EXPIRED"
	DiscountUsageLimitReached   DiscountReason = "USAGE_LIMIT_REACHED"
	DiscountBelowMinimum        DiscountReason = "BELOW_MINIMUM"
	DiscountPerUserLimitReached DiscountReason = "PER_USER_LIMIT_REACHED"
)

// DiscountError reports a discount code that failed validation, with enough
// detail for the UI to explain why, not just that it failed.
type DiscountError struct {
	Reason        DiscountReason
	Code          string
	MinOrderTotal float64 // set for BELOW_MINIMUM
}

func (e *DiscountError) Error() string {
	switch e.Reason {
	case DiscountCodeNotFound:
		return fmt.Sprintf("discount code %q not found", e.Code)
	case DiscountInactive:
		return fmt.Sprintf("discount code %q is inactive", e.Code)
	case DiscountNotStarted:
		return fmt.Sprintf("discount code %q is not active yet", e.Code)
	case DiscountExpired:
		return fmt.Sprintf("discount code %q has expired", e.Code)
	case DiscountUsageLimitReached:
		return fmt.Sprintf("discount code %q has reached its usage limit", e.Code)
	case DiscountBelowMinimum:
		return fmt.Sprintf("discount code %q requires a minimum order total of %.3f", e.Code, e.MinOrderTotal)
	case DiscountPerUserLimitReached:
		return fmt.Sprintf("discount code %q has already been used the maximum number of times by this customer", e.Code)
	}
	return fmt.Sprintf("discount code %q rejected", e.Code)
}

// InvalidTransitionError reports a status change that violates the order
// state machine.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}
