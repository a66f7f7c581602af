package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

var orderValidationErrors = []error{
	ordersvc.ErrEmptyOrder,
	ordersvc.ErrInvalidQuantity,
	ordersvc.ErrUnknownPaymentMethod,
	ordersvc.ErrCardDetailsRequired,
	ordersvc.ErrIncompleteAddress,
	ordersvc.ErrUnknownProduct,
	ordersvc.ErrPriceChanged,
	ordersvc.ErrTotalMismatch,
}

// respondOrderError maps assembler errors onto HTTP statuses. Anything not in
// the taxonomy is a persistence failure and surfaces as a generic 500.
func respondOrderError(c *gin.Context, err error) {
	for _, v := range orderValidationErrors {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	switch {
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
