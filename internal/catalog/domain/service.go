package domain

import (
	"context"
	"strings"
)

// Store is the domain persistence boundary for the catalog.
//
// Append assigns the product id from a store-owned monotonic counter and must
// serialize assignment globally, so concurrent appends never produce
// duplicate ids.
type Store interface {
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	AppendProduct(ctx context.Context, product Product) (Product, error)
	CountProducts(ctx context.Context) (int64, error)
}

// CreateProductInput describes one product creation request.
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
}

// Service orchestrates catalog reads and appends.
type Service struct {
	store Store
}

// NewService constructs catalog use-cases.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if s == nil || s.store == nil {
		return Product{}, ErrStoreNotConfigured
	}
	return s.store.GetProduct(ctx, id)
}

// List returns all products in catalog order.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.ListProducts(ctx)
}

// Count returns the number of catalog entries.
func (s *Service) Count(ctx context.Context) (int64, error) {
	if s == nil || s.store == nil {
		return 0, ErrStoreNotConfigured
	}
	return s.store.CountProducts(ctx)
}

// Create validates input and appends a new product. The id is assigned by
// the store under its write discipline.
func (s *Service) Create(ctx context.Context, input CreateProductInput) (Product, error) {
	if s == nil || s.store == nil {
		return Product{}, ErrStoreNotConfigured
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Product{}, ErrNameEmpty
	}
	if input.Price <= 0 {
		return Product{}, ErrPriceInvalid
	}
	return s.store.AppendProduct(ctx, Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
	})
}
