package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Create persists the order and its lines in one transaction. A replayed
	// idempotency key for the same user fails with domain.ErrAlreadyExists.
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
