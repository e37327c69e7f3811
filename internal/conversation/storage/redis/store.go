// Package redis provides Redis-backed session persistence so in-flight
// conversations survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/louisbranch/bazaar.chat/internal/conversation/domain"
)

// Store persists sessions as JSON values keyed by user id.
type Store struct {
	client *redis.Client
}

// New wraps an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// GetSession returns the user's session or domain.ErrNotFound.
func (s *Store) GetSession(ctx context.Context, userID int64) (domain.Session, error) {
	if s == nil || s.client == nil {
		return domain.Session{}, fmt.Errorf("redis client is not configured")
	}
	raw, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

// PutSession stores the user's session.
func (s *Store) PutSession(ctx context.Context, session domain.Session) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis client is not configured")
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.UserID), raw, 0).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// DeleteSession removes the user's session.
func (s *Store) DeleteSession(ctx context.Context, userID int64) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis client is not configured")
	}
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
