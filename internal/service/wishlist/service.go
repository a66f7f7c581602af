// Package wishlist flips per-user product membership. Toggles go through the
// optimistic helper: the cached view changes first and reverts if the write
// fails.
package wishlist

import (
	"context"
	"sync"

	"storefront/internal/optimistic"
	wishlistrepo "storefront/internal/repository/wishlist"
)

type Service struct {
	repo wishlistrepo.Repository

	mu     sync.Mutex
	cached map[string][]string
}

func New(repo wishlistrepo.Repository) *Service {
	return &Service{repo: repo, cached: make(map[string][]string)}
}

// Toggle adds the product to the user's wishlist if absent and removes it if
// present. It reports the resulting membership.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.cached[userID]
	if !ok {
		loaded, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return false, err
		}
		current = loaded
		s.cached[userID] = current
	}

	adding := !contains(current, productID)
	confirm := func() error {
		if adding {
			return s.repo.Add(ctx, userID, productID)
		}
		return s.repo.Remove(ctx, userID, productID)
	}

	err := optimistic.Apply(
		func() []string { return s.cached[userID] },
		func(v []string) { s.cached[userID] = v },
		func(v []string) []string { return toggle(v, productID) },
		confirm,
	)
	if err != nil {
		return !adding, err
	}
	return adding, nil
}

// List returns the user's wishlist from the repository, refreshing the cache.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cached[userID] = ids
	s.mu.Unlock()
	return ids, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func toggle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
