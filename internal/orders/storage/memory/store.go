// Package memory provides the in-memory order store.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/bazaar.chat/internal/orders/domain"
)

// Store keeps orders in process memory in append order.
type Store struct {
	mu     sync.RWMutex
	orders []domain.Order
}

// New returns an empty in-memory order store.
func New() *Store {
	return &Store{}
}

// AppendOrder persists one order record.
func (s *Store) AppendOrder(ctx context.Context, order domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order)
	return nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}
