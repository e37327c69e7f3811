// Package domain holds the product catalog types and use-cases.
package domain

import "errors"

var (
	// ErrNotFound indicates a product record was not found.
	ErrNotFound = errors.New("product not found")
	// ErrNameEmpty indicates a product name is required.
	ErrNameEmpty = errors.New("product name is required")
	// ErrPriceInvalid indicates a product price must be a positive integer.
	ErrPriceInvalid = errors.New("product price must be positive")
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("catalog store is not configured")
)

// Product is one sellable catalog entry. Prices are minor currency units.
// Products are immutable once created; the catalog has no edit or delete.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}
