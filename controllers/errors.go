package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/abdougarali/Koutob-Library-sub000/services"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps the engine's typed errors onto the response
// envelope. Every branch carries enough detail for the storefront to show
// an actionable message (which book, how much stock, which discount rule)
// instead of a generic failure.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": gin.H{
					"field":  validationErr.Field,
					"reason": validationErr.Message,
				},
			},
		})
		return
	}

	var notFoundErr *services.ItemNotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": notFoundErr.Error(),
				"details": gin.H{"book": notFoundErr.Ref},
			},
		})
		return
	}

	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INSUFFICIENT_STOCK",
				"message": stockErr.Error(),
				"details": gin.H{
					"title":     stockErr.Title,
					"requested": stockErr.Requested,
					"available": stockErr.Available,
				},
			},
		})
		return
	}

	var discountErr *services.DiscountError
	if errors.As(err, &discountErr) {
		details := gin.H{"code": discountErr.Code}
		if discountErr.Reason == services.DiscountBelowMinimum {
			details["min_order_total"] = discountErr.MinOrderTotal
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISCOUNT_" + string(discountErr.Reason),
				"message": discountErr.Error(),
				"details": details,
			},
		})
		return
	}

	var transitionErr *services.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": transitionErr.Error(),
				"details": gin.H{
					"from": transitionErr.From,
					"to":   transitionErr.To,
				},
			},
		})
		return
	}

	if errors.Is(err, services.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	log.Printf("Unexpected service error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "An internal error occurred",
		},
	})
}
