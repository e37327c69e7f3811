// Package redis provides Redis-backed cart persistence for deployments that
// want carts to survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/louisbranch/bazaar.chat/internal/cart/domain"
)

// Store persists carts as JSON values keyed by user id.
type Store struct {
	client *redis.Client
}

// New wraps an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("cart:%d", userID)
}

// GetCart returns the user's cart or domain.ErrNotFound.
func (s *Store) GetCart(ctx context.Context, userID int64) (domain.Cart, error) {
	if s == nil || s.client == nil {
		return domain.Cart{}, fmt.Errorf("redis client is not configured")
	}
	raw, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, domain.ErrNotFound
		}
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

// PutCart stores the user's cart.
func (s *Store) PutCart(ctx context.Context, cart domain.Cart) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis client is not configured")
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(cart.UserID), raw, 0).Err(); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

// DeleteCart removes the user's cart. Missing carts are not an error.
func (s *Store) DeleteCart(ctx context.Context, userID int64) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis client is not configured")
	}
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
