package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	cartSessionHeader = "X-Cart-Session"
	cartSessionCookie = "cart_session"
	cartCookieMaxAge  = 7 * 24 * 60 * 60
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// cartSession returns the caller's session id, minting one (and setting the
// cookie) on first contact.
func cartSession(c *gin.Context, carts *cart.Store) string {
	if sid := c.GetHeader(cartSessionHeader); sid != "" {
		return sid
	}
	if sid, err := c.Cookie(cartSessionCookie); err == nil && sid != "" {
		return sid
	}
	sid := carts.NewSession()
	c.SetCookie(cartSessionCookie, sid, cartCookieMaxAge, "/", "", false, true)
	c.Header(cartSessionHeader, sid)
	return sid
}

func getCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cartSession(c, carts)
		c.JSON(http.StatusOK, gin.H{"cart": carts.Get(sid)})
	}
}

func addCartItemHandler(carts *cart.Store, catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addCartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// The line snapshot always comes from the live catalog, never from
		// client-supplied name/price.
		product, err := catalog.Get(c.Request.Context(), in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		sid := cartSession(c, carts)
		updated, err := carts.Add(sid, cart.LineItem{
			ProductID:      product.ID,
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			Color:          in.Color,
			Size:           in.Size,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

func removeCartItemHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cartSession(c, carts)
		updated, err := carts.Remove(sid, c.Param("productId"))
		if err != nil {
			if errors.Is(err, cart.ErrLineNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "line item not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

func decreaseCartItemHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cartSession(c, carts)
		updated, err := carts.Decrease(sid, c.Param("productId"))
		if err != nil {
			if errors.Is(err, cart.ErrLineNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "line item not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

func clearCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cartSession(c, carts)
		carts.Clear(sid)
		c.JSON(http.StatusOK, gin.H{"cart": carts.Get(sid)})
	}
}
