// Package service orchestrates content operations between the HTTP API,
// the seeder, and the store.
package service

import (
	"context"
	"log/slog"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
	"github.com/ubugingoapp/ubugingo-server/internal/errors"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
	"github.com/ubugingoapp/ubugingo-server/internal/validation"
	"github.com/ubugingoapp/ubugingo-server/internal/youtube"
)

// AudioChapter is the wire shape of a chapter document. It is the stored
// record plus the videoId the clients use to embed the player; the ID is
// resolved from the raw URL at read time so stored documents never go stale
// against resolver fixes.
type AudioChapter struct {
	store.ChapterRecord
	VideoID string `json:"videoId,omitempty"`
}

// ContentService fronts the content collections.
type ContentService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewContentService creates a new content service.
func NewContentService(s *store.Store, logger *slog.Logger) *ContentService {
	return &ContentService{
		store:     s,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListAudio returns every chapter document sorted by book then chapter.
func (s *ContentService) ListAudio(ctx context.Context) ([]AudioChapter, error) {
	records, err := s.store.ListAllChapters(ctx)
	if err != nil {
		return nil, err
	}
	return s.toWire(records), nil
}

// ListBookAudio returns a book's chapter documents in ascending chapter
// order. An empty book maps to errors.ErrNotFound, matching the legacy API.
func (s *ContentService) ListBookAudio(ctx context.Context, book string) ([]AudioChapter, error) {
	records, err := s.store.ListChapters(ctx, book)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFound("No audio chapters found")
	}
	return s.toWire(records), nil
}

// GetAudio returns a single chapter document.
func (s *ContentService) GetAudio(ctx context.Context, book string, chapter int) (*AudioChapter, error) {
	rec, err := s.store.GetChapter(ctx, book, chapter)
	if err != nil {
		return nil, err
	}
	doc := s.resolve(*rec)
	return &doc, nil
}

// ListBooks returns the book documents for a testament.
func (s *ContentService) ListBooks(ctx context.Context, testament string) ([]domain.Book, error) {
	if testament != "old" && testament != "new" {
		return nil, errors.Validationf("unknown testament %q", testament)
	}
	books, err := s.store.ListBooks(ctx, testament)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// UpsertChapter validates and stores a chapter document. Used by the seeder.
func (s *ContentService) UpsertChapter(ctx context.Context, rec *store.ChapterRecord) error {
	if err := s.validator.Validate(rec); err != nil {
		return err
	}
	if _, ok := youtube.Resolve(rec.URL); !ok && s.logger != nil {
		// Stored anyway: clients list it without a play action.
		s.logger.Warn("chapter URL does not resolve to a video ID",
			"book", rec.Book, "chapter", rec.Chapter, "url", rec.URL)
	}
	return s.store.UpsertChapter(ctx, rec)
}

// UpsertBookInput contains fields for creating or replacing a book document.
type UpsertBookInput struct {
	ID            string `json:"book_id" validate:"required"`
	Name          string `json:"book_name" validate:"required"`
	TotalChapters int    `json:"total_chapters" validate:"required,min=1"`
	Cover         string `json:"book_cover"`
	Testament     string `json:"book_testament" validate:"required,oneof=old new"`
}

// UpsertBook validates and stores a book document. Used by the seeder.
func (s *ContentService) UpsertBook(ctx context.Context, input UpsertBookInput) error {
	if err := s.validator.Validate(input); err != nil {
		return err
	}
	return s.store.UpsertBook(ctx, &domain.Book{
		ID:            input.ID,
		Name:          input.Name,
		TotalChapters: input.TotalChapters,
		Cover:         input.Cover,
		Testament:     input.Testament,
	})
}

func (s *ContentService) toWire(records []store.ChapterRecord) []AudioChapter {
	docs := make([]AudioChapter, 0, len(records))
	for _, rec := range records {
		docs = append(docs, s.resolve(rec))
	}
	return docs
}

func (s *ContentService) resolve(rec store.ChapterRecord) AudioChapter {
	doc := AudioChapter{ChapterRecord: rec}
	if id, ok := youtube.Resolve(rec.URL); ok {
		doc.VideoID = id
	}
	return doc
}
