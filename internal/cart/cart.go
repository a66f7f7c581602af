// Package cart holds the in-memory shopping cart for one session. A Cart has
// exactly one owner and is never persisted; totals are derived from the line
// items after every mutation and must always equal the fold over them.
package cart

import "errors"

var (
	// ErrInvalidProduct is returned when a line item has no product id.
	ErrInvalidProduct = errors.New("product id required")
	// ErrInvalidPrice is returned when a line item carries a negative unit price.
	ErrInvalidPrice = errors.New("unit price must not be negative")
	// ErrLineNotFound is returned when no line item matches the product id.
	ErrLineNotFound = errors.New("line item not found")
)

// LineItem is one product selected for purchase. UnitPriceCents is a
// snapshot taken when the item was first added; the final charge is decided
// server-side at checkout.
type LineItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
}

// TotalCents is the line subtotal.
func (l LineItem) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart aggregates the line items of one session. Items are unique by
// product id; TotalQuantity and TotalCents are derived, never set directly.
type Cart struct {
	Items         []LineItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalCents    int64      `json:"totalCents"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges item into the cart. An existing line for the same product
// gains one unit at its original snapshot price; otherwise a new line is
// appended with quantity 1. Invalid input is rejected before any state
// changes.
func (c *Cart) AddItem(item LineItem) error {
	if item.ProductID == "" {
		return ErrInvalidProduct
	}
	if item.UnitPriceCents < 0 {
		return ErrInvalidPrice
	}
	if i := c.index(item.ProductID); i >= 0 {
		c.Items[i].Quantity++
	} else {
		item.Quantity = 1
		c.Items = append(c.Items, item)
	}
	c.recompute()
	return nil
}

// RemoveItem deletes the whole line, regardless of quantity.
func (c *Cart) RemoveItem(productID string) error {
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.recompute()
	return nil
}

// DecreaseQuantity removes one unit from the line. At quantity 1 it does
// nothing: a line never drops to zero here, only RemoveItem deletes it.
func (c *Cart) DecreaseQuantity(productID string) error {
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
		c.recompute()
	}
	return nil
}

// Clear resets the cart to its empty state.
func (c *Cart) Clear() {
	c.Items = nil
	c.TotalQuantity = 0
	c.TotalCents = 0
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a copy of the line items for checkout submission.
func (c *Cart) Snapshot() []LineItem {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}

func (c *Cart) index(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) recompute() {
	qty := 0
	var cents int64
	for _, item := range c.Items {
		qty += item.Quantity
		cents += item.TotalCents()
	}
	c.TotalQuantity = qty
	c.TotalCents = cents
}
