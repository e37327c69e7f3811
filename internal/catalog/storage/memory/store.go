// Package memory provides the in-memory catalog store.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/bazaar.chat/internal/catalog/domain"
)

// Store keeps catalog entries in process memory, ordered by insertion.
// The mutex also guards the id counter, so concurrent appends never reuse
// an id.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int64
}

// New returns an empty in-memory catalog store.
func New() *Store {
	return &Store{nextID: 1}
}

// GetProduct returns one product by id.
func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.products {
		if product.ID == id {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

// ListProducts returns all products in catalog order.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// CountProducts returns the number of catalog entries.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

// AppendProduct assigns the next id and appends the product.
func (s *Store) AppendProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.nextID
	s.nextID++
	s.products = append(s.products, product)
	return product, nil
}
