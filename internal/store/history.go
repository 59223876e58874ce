package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
)

// History defaults. Retention filters reads; nothing is deleted at write
// time, so shrinking the window later still shows older entries again.
const (
	DefaultHistoryLimit     = 20
	DefaultHistoryRetention = 5 * 24 * time.Hour
)

// HistoryStore is the persistent, deduplicated, capped "recently played"
// list. Its head doubles as the single-slot "currently playing" resume
// pointer. Implements playback.Recorder.
type HistoryStore struct {
	store  *Store
	limit  int
	logger *slog.Logger
}

// NewHistoryStore creates a history store capped at limit entries
// (DefaultHistoryLimit when limit <= 0).
func NewHistoryStore(s *Store, limit int, logger *slog.Logger) *HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{store: s, limit: limit, logger: logger}
}

// Upsert records a playback. Any existing entry for the same
// (book, chapter) is removed, the new entry is prepended, and the list is
// truncated to the cap. The full list is persisted atomically.
func (h *HistoryStore) Upsert(ctx context.Context, entry *domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := updateList(h.store, keyRecentlyPlayed, func(current []domain.HistoryEntry) ([]domain.HistoryEntry, error) {
		next := make([]domain.HistoryEntry, 0, len(current)+1)
		next = append(next, *entry)
		for _, e := range current {
			if e.SameChapter(entry) {
				continue
			}
			next = append(next, e)
		}
		if len(next) > h.limit {
			next = next[:h.limit]
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	if h.logger != nil {
		h.logger.Debug("recorded playback",
			"book", entry.Book, "chapter", entry.Chapter, "position", entry.PositionSeconds)
	}
	return nil
}

// List returns entries newer than the retention window, most recent first.
// Filtering happens at read time and never mutates the persisted list.
func (h *HistoryStore) List(ctx context.Context, retention time.Duration) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if retention <= 0 {
		retention = DefaultHistoryRetention
	}

	entries, err := readList[domain.HistoryEntry](h.store, keyRecentlyPlayed)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-retention)
	recent := entries[:0]
	for _, e := range entries {
		if !e.LastPlayedAt.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent, nil
}

// MostRecent returns the head of the unfiltered persisted list, or nil when
// nothing has been played. The "Currently Playing" view resumes from this
// regardless of the retention window.
func (h *HistoryStore) MostRecent(ctx context.Context) (*domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := readList[domain.HistoryEntry](h.store, keyRecentlyPlayed)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}
