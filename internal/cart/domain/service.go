package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
)

// Store is the keyed persistence boundary for carts.
type Store interface {
	GetCart(ctx context.Context, userID int64) (Cart, error)
	PutCart(ctx context.Context, cart Cart) error
	DeleteCart(ctx context.Context, userID int64) error
}

// Catalog is the minimal product lookup contract the cart needs.
type Catalog interface {
	Get(ctx context.Context, id int64) (catalogdomain.Product, error)
}

// PricedLine is one cart line joined with live catalog data.
type PricedLine struct {
	ProductID int64
	Name      string
	Quantity  int64
	UnitPrice int64
	Subtotal  int64
}

// Service orchestrates cart mutations against the catalog.
type Service struct {
	store   Store
	catalog Catalog
}

// NewService constructs cart use-cases.
func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// AddItem merges one unit of the product into the user's cart. The cart is
// unchanged when the product is missing from the catalog.
func (s *Service) AddItem(ctx context.Context, userID, productID int64) (catalogdomain.Product, error) {
	if s == nil || s.store == nil {
		return catalogdomain.Product{}, ErrStoreNotConfigured
	}
	if s.catalog == nil {
		return catalogdomain.Product{}, ErrCatalogNotConfigured
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) {
			return catalogdomain.Product{}, ErrProductNotFound
		}
		return catalogdomain.Product{}, err
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return catalogdomain.Product{}, err
	}
	cart.merge(productID)
	if err := s.store.PutCart(ctx, cart); err != nil {
		return catalogdomain.Product{}, err
	}
	return product, nil
}

// Clear resets the user's cart to empty. It is idempotent.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if s == nil || s.store == nil {
		return ErrStoreNotConfigured
	}
	err := s.store.DeleteCart(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Items returns the user's cart lines joined with live catalog names and
// prices, plus the recomputed total.
func (s *Service) Items(ctx context.Context, userID int64) ([]PricedLine, int64, error) {
	if s == nil || s.store == nil {
		return nil, 0, ErrStoreNotConfigured
	}
	if s.catalog == nil {
		return nil, 0, ErrCatalogNotConfigured
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var lines []PricedLine
	var total int64
	for _, item := range cart.Items {
		product, err := s.catalog.Get(ctx, item.ProductID)
		if err != nil {
			return nil, 0, err
		}
		subtotal := product.Price * item.Quantity
		lines = append(lines, PricedLine{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		total += subtotal
	}
	return lines, total, nil
}

// Total recomputes the cart total from current catalog prices. A catalog
// price change retroactively changes an uncommitted cart's total.
func (s *Service) Total(ctx context.Context, userID int64) (int64, error) {
	_, total, err := s.Items(ctx, userID)
	return total, err
}

func (s *Service) load(ctx context.Context, userID int64) (Cart, error) {
	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Cart{UserID: userID}, nil
		}
		return Cart{}, err
	}
	return cart, nil
}
