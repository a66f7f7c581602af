package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Verify(token string) (userID, name string, err error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type orderService interface {
	Place(ctx context.Context, user ordersvc.Identity, in ordersvc.PlaceInput) (*domain.Order, error)
	Get(ctx context.Context, user ordersvc.Identity, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, user ordersvc.Identity) ([]domain.Order, error)
}

type wishlistService interface {
	Toggle(ctx context.Context, userID, productID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
}

// Deps carries the services the router dispatches to.
type Deps struct {
	AuthSvc        authService
	CatalogSvc     catalogService
	OrderSvc       orderService
	WishlistSvc    wishlistService
	Carts          *cart.Store
	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	switch {
	case deps.AuthSvc == nil:
		return nil, errors.New("auth service required")
	case deps.CatalogSvc == nil:
		return nil, errors.New("catalog service required")
	case deps.OrderSvc == nil:
		return nil, errors.New("order service required")
	case deps.WishlistSvc == nil:
		return nil, errors.New("wishlist service required")
	case deps.Carts == nil:
		return nil, errors.New("cart store required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "Idempotency-Key", cartSessionHeader)
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/register", registerHandler(deps.AuthSvc))
	router.POST("/auth/login", loginHandler(deps.AuthSvc))
	router.POST("/auth/refresh", refreshHandler(deps.AuthSvc))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))

	router.GET("/cart", getCartHandler(deps.Carts))
	router.POST("/cart/items", addCartItemHandler(deps.Carts, deps.CatalogSvc))
	router.DELETE("/cart/items/:productId", removeCartItemHandler(deps.Carts))
	router.POST("/cart/items/:productId/decrease", decreaseCartItemHandler(deps.Carts))
	router.DELETE("/cart", clearCartHandler(deps.Carts))

	authed := router.Group("/", requireAuth(deps.AuthSvc))
	authed.GET("/me", meHandler(deps.AuthSvc))
	authed.POST("/orders", placeOrderHandler(deps.OrderSvc, deps.Carts))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	authed.GET("/wishlist", listWishlistHandler(deps.WishlistSvc))
	authed.POST("/wishlist/:productId", toggleWishlistHandler(deps.WishlistSvc))

	return router, nil
}
