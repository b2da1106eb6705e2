// Package sqlite persists the notification log and UI preferences in a
// single SQLite file. Use ":memory:" for tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/domain"
	_ "github.com/mattn/go-sqlite3"
)

const themeKey = "theme"

// Store implements the app.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the store at the given path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	-- Notification log, position 0 is the newest entry.
	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		type TEXT NOT NULL,
		message_key TEXT NOT NULL,
		params TEXT NOT NULL,
		message TEXT NOT NULL,
		pull_request TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_position ON notifications(position);

	-- Single-value preferences (theme).
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)

	return err
}

// LoadNotifications returns the persisted log, newest first. Rows that
// fail to decode are skipped so one corrupted entry cannot take the
// whole history down.
func (s *Store) LoadNotifications(ctx context.Context) ([]*domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, message_key, params, message, pull_request, created_at, is_read
		FROM notifications ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var (
			n         domain.Notification
			params    string
			prJSON    string
			createdAt int64
		)
		if err := rows.Scan(&n.ID, (*string)(&n.Type), &n.MessageKey, &params, &n.Message, &prJSON, &createdAt, &n.IsRead); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(params), &n.Params); err != nil {
			continue
		}
		var pr domain.PullRequest
		if err := json.Unmarshal([]byte(prJSON), &pr); err != nil {
			continue
		}
		n.PullRequest = &pr
		n.CreatedAt = time.Unix(createdAt, 0)
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	return notifications, nil
}

// SaveNotifications replaces the persisted log with the given entries,
// preserving their newest-first order.
func (s *Store) SaveNotifications(ctx context.Context, notifications []*domain.Notification) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}

	insert := `
		INSERT INTO notifications (id, position, type, message_key, params, message, pull_request, created_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, n := range notifications {
		params, err := json.Marshal(n.Params)
		if err != nil {
			return fmt.Errorf("failed to encode params: %w", err)
		}
		prJSON, err := json.Marshal(n.PullRequest)
		if err != nil {
			return fmt.Errorf("failed to encode pull request: %w", err)
		}
		_, err = tx.ExecContext(ctx, insert,
			n.ID, i, string(n.Type), n.MessageKey, string(params), n.Message,
			string(prJSON), n.CreatedAt.Unix(), n.IsRead,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// Theme returns the stored theme preference, empty when unset.
func (s *Store) Theme(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", themeKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}

	return value, nil
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, themeKey, theme)
	if err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
