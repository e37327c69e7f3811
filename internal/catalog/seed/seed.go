// Package seed installs the starter catalog on first boot.
package seed

import (
	"context"

	"github.com/louisbranch/bazaar.chat/internal/catalog/domain"
)

// starter mirrors the demo storefront inventory the shop launched with.
var starter = []domain.CreateProductInput{
	{Name: "📱 iPhone 15", Price: 79900, Description: "Новый iPhone 15"},
	{Name: "💻 MacBook Air", Price: 119900, Description: "Ноутбук Apple"},
	{Name: "🎧 AirPods Pro", Price: 24900, Description: "Беспроводные наушники"},
}

// Ensure appends the starter products when the catalog is empty. It is a
// no-op on a populated catalog, so restarts never duplicate entries.
func Ensure(ctx context.Context, svc *domain.Service) error {
	count, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, input := range starter {
		if _, err := svc.Create(ctx, input); err != nil {
			return err
		}
	}
	return nil
}
