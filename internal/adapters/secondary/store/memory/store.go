// Package memory is the fallback store used when the SQLite file cannot
// be opened: nothing survives the process, but the dashboard still runs.
package memory

import (
	"context"
	"sync"

	"github.com/akulikov/reviewdeck/internal/core/domain"
)

// Store is an in-memory, thread-safe app.Store implementation.
type Store struct {
	mu            sync.Mutex
	notifications []*domain.Notification
	theme         string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) LoadNotifications(_ context.Context) ([]*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Notification, len(s.notifications))
	copy(out, s.notifications)

	return out, nil
}

func (s *Store) SaveNotifications(_ context.Context, notifications []*domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = make([]*domain.Notification, len(notifications))
	copy(s.notifications, notifications)

	return nil
}

func (s *Store) Theme(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme, nil
}

func (s *Store) SetTheme(_ context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme

	return nil
}
