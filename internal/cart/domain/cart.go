// Package domain holds the per-user shopping cart types and use-cases.
package domain

import "errors"

var (
	// ErrProductNotFound indicates an add targeted a product missing from the catalog.
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("cart store is not configured")
	// ErrCatalogNotConfigured indicates the service is missing catalog wiring.
	ErrCatalogNotConfigured = errors.New("catalog is not configured")
	// ErrNotFound indicates no cart record exists for a user yet.
	ErrNotFound = errors.New("cart not found")
)

// LineItem is one (product, quantity) pair. Quantity is always >= 1; a
// cart never holds a zero or negative quantity line.
type LineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// Cart is the ordered line-item collection owned by exactly one user.
// Lines carry no price snapshot; totals are always recomputed from live
// catalog prices.
type Cart struct {
	UserID int64      `json:"user_id"`
	Items  []LineItem `json:"items"`
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// merge increments an existing line for the product or appends a new one.
func (c *Cart) merge(productID int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, LineItem{ProductID: productID, Quantity: 1})
}
