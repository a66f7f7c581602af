package httpserver

import (
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

func placeOrderHandler(orders orderService, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		in.IdempotencyKey = c.GetHeader("Idempotency-Key")

		created, err := orders.Place(c.Request.Context(), callerIdentity(c), in)
		if err != nil {
			respondOrderError(c, err)
			return
		}

		// Clearing the cart is the client's side of checkout; do it only once
		// the order write has succeeded.
		if sid := c.GetHeader(cartSessionHeader); sid != "" {
			carts.Drop(sid)
		} else if sid, err := c.Cookie(cartSessionCookie); err == nil && sid != "" {
			carts.Drop(sid)
		}

		c.JSON(http.StatusCreated, gin.H{"order": created})
	}
}

func listOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListByUser(c.Request.Context(), callerIdentity(c))
		if err != nil {
			respondOrderError(c, err)
			return
		}
		if list == nil {
			list = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), callerIdentity(c), c.Param("id"))
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
