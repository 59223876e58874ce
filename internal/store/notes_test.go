package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubugingoapp/ubugingo-server/internal/errors"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
)

func setupTestNoteStore(t *testing.T) (*store.NoteStore, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "note-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return store.NewNoteStore(s, nil), cleanup
}

func TestNoteCreate(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	ctx := context.Background()
	note, err := n.Create(ctx, store.CreateNoteInput{
		Book:             "john",
		Chapter:          3,
		VideoID:          "84WIaK3bl_s",
		TimestampSeconds: 125,
		Text:             "  for God so loved  ",
	})
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "for God so loved", note.Text)
	assert.Equal(t, 125, note.TimestampSeconds)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Nil(t, note.UpdatedAt)
}

func TestNoteCreate_WhitespaceOnlyDiscarded(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	ctx := context.Background()
	note, err := n.Create(ctx, store.CreateNoteInput{
		Book: "john", Chapter: 3, VideoID: "84WIaK3bl_s", Text: "   \n\t ",
	})
	require.NoError(t, err)
	assert.Nil(t, note)

	notes, err := n.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteList_NewestFirst(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := n.Create(ctx, store.CreateNoteInput{Book: "john", Chapter: 1, VideoID: "aaaaaaaaaaa", Text: "first"})
	require.NoError(t, err)
	_, err = n.Create(ctx, store.CreateNoteInput{Book: "john", Chapter: 2, VideoID: "bbbbbbbbbbb", Text: "second"})
	require.NoError(t, err)

	notes, err := n.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Text)
	assert.Equal(t, "first", notes[1].Text)
}

func TestNoteEdit(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	ctx := context.Background()
	created, err := n.Create(ctx, store.CreateNoteInput{Book: "acts", Chapter: 2, VideoID: "ccccccccccc", Text: "pentecost"})
	require.NoError(t, err)

	updated, err := n.Edit(ctx, created.ID, "pentecost, wind and fire")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "pentecost, wind and fire", updated.Text)
	require.NotNil(t, updated.UpdatedAt)

	notes, err := n.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "pentecost, wind and fire", notes[0].Text)
}

func TestNoteEdit_EmptyTextNoOp(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	ctx := context.Background()
	created, err := n.Create(ctx, store.CreateNoteInput{Book: "acts", Chapter: 2, VideoID: "ccccccccccc", Text: "original"})
	require.NoError(t, err)

	updated, err := n.Edit(ctx, created.ID, "   ")
	require.NoError(t, err)
	assert.Nil(t, updated)

	notes, err := n.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "original", notes[0].Text)
	assert.Nil(t, notes[0].UpdatedAt)
}

func TestNoteEdit_UnknownID(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	_, err := n.Edit(context.Background(), "note-missing", "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestNoteDelete(t *testing.T) {
	n, cleanup := setupTestNoteStore(t)
	defer cleanup()

	ctx := context.Background()
	keep, err := n.Create(ctx, store.CreateNoteInput{Book: "acts", Chapter: 1, VideoID: "ddddddddddd", Text: "keep"})
	require.NoError(t, err)
	drop, err := n.Create(ctx, store.CreateNoteInput{Book: "acts", Chapter: 2, VideoID: "eeeeeeeeeee", Text: "drop"})
	require.NoError(t, err)

	require.NoError(t, n.Delete(ctx, drop.ID))

	notes, err := n.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.ID, notes[0].ID)

	err = n.Delete(ctx, drop.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
