// Package order assembles checkout submissions into durable orders. Pricing
// authority lives here: every line is re-priced from the live catalog and the
// submitted totals must agree with it before anything is written.
package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

var (
	// ErrEmptyOrder is returned when a checkout carries no products.
	ErrEmptyOrder = errors.New("no products in order")
	// ErrInvalidQuantity is returned when a line quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrUnknownPaymentMethod is returned for a payment method outside the supported set.
	ErrUnknownPaymentMethod = errors.New("unsupported payment method")
	// ErrCardDetailsRequired is returned when paying by card without card details.
	ErrCardDetailsRequired = errors.New("card details required")
	// ErrIncompleteAddress is returned when a shipping field is missing.
	ErrIncompleteAddress = errors.New("incomplete shipping address")
	// ErrUnknownProduct is returned when a submitted line references no catalog product.
	ErrUnknownProduct = errors.New("product not found")
	// ErrPriceChanged is returned when a submitted unit price disagrees with the
	// live catalog price. The client should refresh and resubmit.
	ErrPriceChanged = errors.New("product price changed")
	// ErrTotalMismatch is returned when the submitted total does not equal the
	// sum of the re-priced lines.
	ErrTotalMismatch = errors.New("order total does not match line items")
	// ErrInvalidTransition is returned for a status change the order cannot make.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Identity is the authenticated user placing or reading orders. It is
// supplied by the auth layer and trusted as-is.
type Identity struct {
	ID   string
	Name string
}

type Service struct {
	repo     orderRepo
	products productRepo
}

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo orderRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// LineInput is one submitted cart line. PriceCents is the price the client
// saw; it is verified against the catalog, never trusted.
type LineInput struct {
	ProductID  string `json:"product"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
}

// PlaceInput is a checkout submission.
type PlaceInput struct {
	Lines           []LineInput            `json:"products"`
	TotalCents      int64                  `json:"totalCents"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	CardDetails     *domain.CardDetails    `json:"cardDetails,omitempty"`
	IdempotencyKey  string                 `json:"-"`
}

// Place validates the submission, re-prices it from the catalog, and persists
// a pending order. A replayed idempotency key returns the original order
// without a second write. No side effects beyond the write; retry is the
// caller's decision.
func (s *Service) Place(ctx context.Context, user Identity, in PlaceInput) (*domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	method := domain.PaymentMethod(in.PaymentMethod)
	if !domain.ValidPaymentMethod(method) {
		return nil, ErrUnknownPaymentMethod
	}
	card := in.CardDetails
	if method == domain.PaymentCard {
		if card == nil {
			return nil, ErrCardDetailsRequired
		}
	} else {
		card = nil
	}

	if !in.ShippingAddress.Complete() {
		return nil, ErrIncompleteAddress
	}

	if in.IdempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, user.ID, in.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	lines := make([]domain.OrderLine, 0, len(in.Lines))
	var total int64
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.products.GetByID(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, l.ProductID)
			}
			return nil, err
		}
		if l.PriceCents != product.PriceCents {
			return nil, fmt.Errorf("%w: %s", ErrPriceChanged, l.ProductID)
		}
		lines = append(lines, domain.OrderLine{
			ProductID:      product.ID,
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       l.Quantity,
			Color:          l.Color,
			Size:           l.Size,
		})
		total += product.PriceCents * int64(l.Quantity)
	}

	if in.TotalCents != total {
		return nil, ErrTotalMismatch
	}

	created, err := s.repo.Create(ctx, domain.Order{
		UserID:          user.ID,
		UserName:        user.Name,
		Lines:           lines,
		TotalCents:      total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   method,
		CardDetails:     card,
		Status:          domain.StatusPending,
		IdempotencyKey:  in.IdempotencyKey,
	})
	if err != nil {
		// Lost a race against a concurrent replay of the same key: the other
		// request's order is the one to return.
		if errors.Is(err, domain.ErrAlreadyExists) && in.IdempotencyKey != "" {
			return s.repo.GetByIdempotencyKey(ctx, user.ID, in.IdempotencyKey)
		}
		return nil, err
	}
	return created, nil
}

// Get returns a single order, refusing to leak orders owned by someone else.
func (s *Service) Get(ctx context.Context, user Identity, orderID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, user Identity) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, user.ID)
}

// UpdateStatus moves an order along its forward-only status sequence. Owned
// by the fulfillment side, not the storefront client.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !domain.CanTransition(o.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}
	return s.repo.SetStatus(ctx, orderID, status)
}
