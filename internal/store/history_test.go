package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
)

func setupTestHistoryStore(t *testing.T) (*store.HistoryStore, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "history-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return store.NewHistoryStore(s, 0, nil), cleanup
}

func TestHistoryUpsert_DeduplicatesSameChapter(t *testing.T) {
	h, cleanup := setupTestHistoryStore(t)
	defer cleanup()

	ctx := context.Background()
	first := &domain.HistoryEntry{
		Book:            "matthew",
		Chapter:         5,
		VideoID:         "84WIaK3bl_s",
		LastPlayedAt:    time.Now().Add(-time.Hour),
		PositionSeconds: 42,
	}
	require.NoError(t, h.Upsert(ctx, first))

	second := &domain.HistoryEntry{
		Book:            "matthew",
		Chapter:         5,
		VideoID:         "84WIaK3bl_s",
		LastPlayedAt:    time.Now(),
		PositionSeconds: 90,
	}
	require.NoError(t, h.Upsert(ctx, second))

	entries, err := h.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 90, entries[0].PositionSeconds)
}

func TestHistoryUpsert_CapsAtLimit(t *testing.T) {
	h, cleanup := setupTestHistoryStore(t)
	defer cleanup()

	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		entry := &domain.HistoryEntry{
			Book:         fmt.Sprintf("book-%02d", i),
			Chapter:      1,
			VideoID:      "84WIaK3bl_s",
			LastPlayedAt: time.Now(),
		}
		require.NoError(t, h.Upsert(ctx, entry))
	}

	entries, err := h.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, store.DefaultHistoryLimit)

	// Most recent first: the last upsert heads the list, the first five
	// fell off the tail.
	assert.Equal(t, "book-25", entries[0].Book)
	assert.Equal(t, "book-06", entries[len(entries)-1].Book)
}

func TestHistoryList_FiltersByRetention(t *testing.T) {
	h, cleanup := setupTestHistoryStore(t)
	defer cleanup()

	ctx := context.Background()
	stale := &domain.HistoryEntry{
		Book:            "genesis",
		Chapter:         1,
		VideoID:         "84WIaK3bl_s",
		LastPlayedAt:    time.Now().Add(-6 * 24 * time.Hour),
		PositionSeconds: 300,
	}
	require.NoError(t, h.Upsert(ctx, stale))

	entries, err := h.List(ctx, 5*24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The resume pointer ignores the retention window.
	resume, err := h.MostRecent(ctx)
	require.NoError(t, err)
	require.NotNil(t, resume)
	assert.Equal(t, "genesis", resume.Book)
	assert.Equal(t, 300, resume.PositionSeconds)
}

func TestHistoryMostRecent_EmptyReturnsNil(t *testing.T) {
	h, cleanup := setupTestHistoryStore(t)
	defer cleanup()

	resume, err := h.MostRecent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resume)
}

func TestHistoryList_KeepsRecentEntries(t *testing.T) {
	h, cleanup := setupTestHistoryStore(t)
	defer cleanup()

	ctx := context.Background()
	entries := []*domain.HistoryEntry{
		{Book: "mark", Chapter: 2, VideoID: "aaaaaaaaaaa", LastPlayedAt: time.Now().Add(-2 * 24 * time.Hour)},
		{Book: "luke", Chapter: 3, VideoID: "bbbbbbbbbbb", LastPlayedAt: time.Now()},
	}
	for _, e := range entries {
		require.NoError(t, h.Upsert(ctx, e))
	}

	recent, err := h.List(ctx, 5*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "luke", recent[0].Book)
	assert.Equal(t, "mark", recent[1].Book)
}
