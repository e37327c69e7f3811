// Package memory provides the in-memory cart store.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/bazaar.chat/internal/cart/domain"
)

// Store keeps carts in process memory keyed by user id.
type Store struct {
	mu    sync.RWMutex
	carts map[int64]domain.Cart
}

// New returns an empty in-memory cart store.
func New() *Store {
	return &Store{carts: map[int64]domain.Cart{}}
}

// GetCart returns the user's cart or domain.ErrNotFound.
func (s *Store) GetCart(ctx context.Context, userID int64) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[userID]
	if !ok {
		return domain.Cart{}, domain.ErrNotFound
	}
	copied := cart
	copied.Items = append([]domain.LineItem(nil), cart.Items...)
	return copied, nil
}

// PutCart stores the user's cart.
func (s *Store) PutCart(ctx context.Context, cart domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := cart
	copied.Items = append([]domain.LineItem(nil), cart.Items...)
	s.carts[cart.UserID] = copied
	return nil
}

// DeleteCart removes the user's cart. Missing carts are not an error.
func (s *Store) DeleteCart(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
