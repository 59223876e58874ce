package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
	"github.com/ubugingoapp/ubugingo-server/internal/errors"
	"github.com/ubugingoapp/ubugingo-server/internal/id"
)

// NoteStore is the persistent list of user notes, newest-created first.
// Callers update UI-visible state only after an operation returns, so a
// failed write never leaves a ghost note on screen.
type NoteStore struct {
	store  *Store
	logger *slog.Logger
}

// NewNoteStore creates a note store over the shared local database.
func NewNoteStore(s *Store, logger *slog.Logger) *NoteStore {
	return &NoteStore{store: s, logger: logger}
}

// CreateNoteInput anchors a new note to the active session's position.
type CreateNoteInput struct {
	Book             string
	Chapter          int
	VideoID          string
	TimestampSeconds int
	Text             string
}

// Create persists a new note and returns it. Whitespace-only text is
// silently discarded - the modal just closes - and (nil, nil) is returned.
func (n *NoteStore) Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, nil
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to generate note ID")
	}

	note := domain.Note{
		ID:               noteID,
		Book:             input.Book,
		Chapter:          input.Chapter,
		VideoID:          input.VideoID,
		TimestampSeconds: max(input.TimestampSeconds, 0),
		Text:             text,
		CreatedAt:        time.Now(),
	}

	_, err = updateList(n.store, keyVideoNotes, func(current []domain.Note) ([]domain.Note, error) {
		return append([]domain.Note{note}, current...), nil
	})
	if err != nil {
		return nil, err
	}

	if n.logger != nil {
		n.logger.Debug("note created", "note_id", note.ID, "book", note.Book, "chapter", note.Chapter)
	}
	return &note, nil
}

// Edit updates a note's text and stamps UpdatedAt. Whitespace-only text is
// a no-op returning (nil, nil). A missing ID yields errors.ErrNotFound.
func (n *NoteStore) Edit(ctx context.Context, noteID, newText string) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(newText)
	if text == "" {
		return nil, nil
	}

	var updated *domain.Note
	_, err := updateList(n.store, keyVideoNotes, func(current []domain.Note) ([]domain.Note, error) {
		for i := range current {
			if current[i].ID != noteID {
				continue
			}
			now := time.Now()
			current[i].Text = text
			current[i].UpdatedAt = &now
			note := current[i]
			updated = &note
			return current, nil
		}
		return nil, errors.NotFoundf("note %s not found", noteID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a note. Confirmation is the UI's concern, not the store's.
func (n *NoteStore) Delete(ctx context.Context, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := updateList(n.store, keyVideoNotes, func(current []domain.Note) ([]domain.Note, error) {
		next := current[:0]
		for _, note := range current {
			if note.ID != noteID {
				next = append(next, note)
			}
		}
		if len(next) == len(current) {
			return nil, errors.NotFoundf("note %s not found", noteID)
		}
		return next, nil
	})
	return err
}

// List returns all notes in stored order (newest-created first).
func (n *NoteStore) List(ctx context.Context) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readList[domain.Note](n.store, keyVideoNotes)
}
