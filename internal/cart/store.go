package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store hands out session-scoped carts. Each cart is owned by exactly one
// session; the mutex only guards the session map, which all requests share.
// Carts live in memory for the lifetime of the session and are dropped after
// a successful checkout.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// NewSession creates an empty cart and returns its session id.
func (s *Store) NewSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.carts[id] = New()
	s.mu.Unlock()
	return id
}

// Get returns a copy of the session's cart. An unknown session reads as an
// empty cart.
func (s *Store) Get(sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		snap := *c
		snap.Items = c.Snapshot()
		return snap
	}
	return Cart{}
}

// Add merges item into the session's cart, creating the cart if the session
// is new to the store.
func (s *Store) Add(sessionID string, item LineItem) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	if err := c.AddItem(item); err != nil {
		return Cart{}, err
	}
	return s.copyOf(c), nil
}

// Remove deletes the whole line from the session's cart.
func (s *Store) Remove(sessionID, productID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	if err := c.RemoveItem(productID); err != nil {
		return Cart{}, err
	}
	return s.copyOf(c), nil
}

// Decrease removes one unit from the line, flooring at quantity 1.
func (s *Store) Decrease(sessionID, productID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	if err := c.DecreaseQuantity(productID); err != nil {
		return Cart{}, err
	}
	return s.copyOf(c), nil
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		c.Clear()
	}
}

// Drop forgets the session entirely. Called after a successful checkout.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *Store) cart(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

func (s *Store) copyOf(c *Cart) Cart {
	snap := *c
	snap.Items = c.Snapshot()
	return snap
}
