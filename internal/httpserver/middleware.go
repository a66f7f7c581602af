package httpserver

import (
	"net/http"
	"strings"

	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// requireAuth resolves a Bearer access token into the caller's identity and
// aborts with 401 when there is none or it does not verify.
func requireAuth(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		userID, name, err := auth.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(identityKey, ordersvc.Identity{ID: userID, Name: name})
		c.Next()
	}
}

func callerIdentity(c *gin.Context) ordersvc.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(ordersvc.Identity); ok {
			return id
		}
	}
	return ordersvc.Identity{}
}
