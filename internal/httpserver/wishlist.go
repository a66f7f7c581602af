package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listWishlistHandler(wishlist wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := wishlist.List(c.Request.Context(), callerIdentity(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if ids == nil {
			ids = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"products": ids})
	}
}

func toggleWishlistHandler(wishlist wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		added, err := wishlist.Toggle(c.Request.Context(), callerIdentity(c).ID, c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"inWishlist": added})
	}
}
