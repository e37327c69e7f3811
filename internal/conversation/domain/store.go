package domain

import (
	"context"
	"errors"
)

// ErrNotFound indicates no session record exists for a user yet. Callers
// treat it as an idle session.
var ErrNotFound = errors.New("session not found")

// Store is the keyed persistence boundary for sessions.
type Store interface {
	GetSession(ctx context.Context, userID int64) (Session, error)
	PutSession(ctx context.Context, session Session) error
	DeleteSession(ctx context.Context, userID int64) error
}
