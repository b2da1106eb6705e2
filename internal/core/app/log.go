package app

import (
	"sync"

	"github.com/akulikov/reviewdeck/internal/core/domain"
)

// logCap bounds the notification log; the oldest entries beyond it are
// silently evicted.
const logCap = 100

// NotificationLog is a bounded, newest-first event log. Entries are
// never deleted individually, only evicted past the cap.
type NotificationLog struct {
	mu      sync.Mutex
	entries []*domain.Notification
}

func NewNotificationLog() *NotificationLog {
	return &NotificationLog{}
}

// Restore replaces the log with previously persisted entries, keeping
// their stored order and read flags. Anything past the cap is dropped.
func (l *NotificationLog) Restore(entries []*domain.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(entries) > logCap {
		entries = entries[:logCap]
	}
	l.entries = make([]*domain.Notification, len(entries))
	copy(l.entries, entries)
}

// Prepend inserts a batch at the head of the log, skipping ids already
// present, then trims to the cap.
func (l *NotificationLog) Prepend(batch []*domain.Notification) {
	if len(batch) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(l.entries))
	for _, n := range l.entries {
		seen[n.ID] = struct{}{}
	}

	fresh := make([]*domain.Notification, 0, len(batch))
	for _, n := range batch {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		fresh = append(fresh, n)
	}

	l.entries = append(fresh, l.entries...)
	if len(l.entries) > logCap {
		l.entries = l.entries[:logCap]
	}
}

// All returns the entries, newest first.
func (l *NotificationLog) All() []*domain.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Notification, len(l.entries))
	copy(out, l.entries)

	return out
}

// Unread counts entries not yet marked read.
func (l *NotificationLog) Unread() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, n := range l.entries {
		if !n.IsRead {
			count++
		}
	}

	return count
}

// MarkRead flips one entry to read; it reports whether the id existed.
func (l *NotificationLog) MarkRead(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, n := range l.entries {
		if n.ID == id {
			n.IsRead = true

			return true
		}
	}

	return false
}

// MarkAllRead flips every entry to read.
func (l *NotificationLog) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, n := range l.entries {
		n.IsRead = true
	}
}

// Len returns the number of entries.
func (l *NotificationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
