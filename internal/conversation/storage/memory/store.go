// Package memory provides the in-memory session store.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/bazaar.chat/internal/conversation/domain"
)

// Store keeps sessions in process memory keyed by user id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

// New returns an empty in-memory session store.
func New() *Store {
	return &Store{sessions: map[int64]domain.Session{}}
}

// GetSession returns the user's session or domain.ErrNotFound.
func (s *Store) GetSession(ctx context.Context, userID int64) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

// PutSession stores the user's session.
func (s *Store) PutSession(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session
	return nil
}

// DeleteSession removes the user's session.
func (s *Store) DeleteSession(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
