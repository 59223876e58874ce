package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
	"github.com/ubugingoapp/ubugingo-server/internal/errors"
)

// Key prefixes for the content collections.
// Chapter keys zero-pad the chapter number so prefix scans come back in
// chapter order without an extra sort.
const (
	audioPrefix = "audio:" // audio:{book}:{chapter:03d}
	bookPrefix  = "book:"  // book:{testament}:{book_id}
)

// ChapterRecord is the stored shape of one audio chapter, matching the
// legacy content API document. Length stays a string because the source
// data mixes numbers and values like "20min"; normalization happens in
// the catalog client, not here.
type ChapterRecord struct {
	ID      string `json:"_id"`
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"required,min=1"`
	Verses  int    `json:"verses" validate:"min=0"`
	Length  string `json:"length"`
	URL     string `json:"url" validate:"required"`
}

func chapterKey(book string, chapter int) []byte {
	return fmt.Appendf(nil, "%s%s:%03d", audioPrefix, strings.ToLower(book), chapter)
}

func bookKey(testament, bookID string) []byte {
	return fmt.Appendf(nil, "%s%s:%s", bookPrefix, strings.ToLower(testament), bookID)
}

// UpsertChapter writes a chapter record keyed by (book, chapter).
func (s *Store) UpsertChapter(ctx context.Context, rec *ChapterRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to marshal chapter record")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chapterKey(rec.Book, rec.Chapter), data)
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to store chapter record")
	}
	return nil
}

// GetChapter retrieves a single chapter record, or errors.ErrNotFound.
func (s *Store) GetChapter(ctx context.Context, book string, chapter int) (*ChapterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec ChapterRecord
	if err := s.get(string(chapterKey(book, chapter)), &rec); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("no audio for %s chapter %d", book, chapter)
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read chapter record")
	}
	return &rec, nil
}

// ListChapters returns all chapter records for a book in ascending chapter
// order. An unknown book yields an empty slice, not an error.
func (s *Store) ListChapters(ctx context.Context, book string) ([]ChapterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := fmt.Appendf(nil, "%s%s:", audioPrefix, strings.ToLower(book))
	return s.scanChapters(prefix)
}

// ListAllChapters returns every chapter record sorted by book then chapter.
func (s *Store) ListAllChapters(ctx context.Context) ([]ChapterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := s.scanChapters([]byte(audioPrefix))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Book != records[j].Book {
			return records[i].Book < records[j].Book
		}
		return records[i].Chapter < records[j].Chapter
	})
	return records, nil
}

func (s *Store) scanChapters(prefix []byte) ([]ChapterRecord, error) {
	var records []ChapterRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec ChapterRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to scan chapter records")
	}
	return records, nil
}

// UpsertBook writes a book record keyed by (testament, book ID).
func (s *Store) UpsertBook(ctx context.Context, book *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(book)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to marshal book record")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bookKey(book.Testament, book.ID), data)
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to store book record")
	}
	return nil
}

// ListBooks returns all book records for a testament ("old" or "new") in
// key order. An unknown testament yields an empty slice.
func (s *Store) ListBooks(ctx context.Context, testament string) ([]domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var books []domain.Book
	prefix := fmt.Appendf(nil, "%s%s:", bookPrefix, strings.ToLower(testament))
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return err
				}
				books = append(books, book)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to scan book records")
	}
	return books, nil
}
