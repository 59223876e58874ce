// Package catalog fetches and indexes the audio chapters available for a book.
//
// The content API returns chapter records in no guaranteed order, with
// heterogeneous field encodings accumulated over time (durations as numbers
// or strings like "20min", media references as URLs or bare IDs). All
// normalization happens here, at the boundary; everything downstream works
// with ordered, integer-second, eagerly-resolved entries.
package catalog

import (
	"slices"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
)

// DefaultUpNextLimit is how many upcoming chapters the player surfaces.
const DefaultUpNextLimit = 4

// Catalog is the ordered set of chapters fetched for one book.
// Entries are sorted ascending by chapter number and immutable after build.
type Catalog struct {
	book    string
	entries []domain.Chapter
}

// New builds a catalog from normalized entries: sorts ascending by chapter
// number and keeps the first occurrence of any duplicated chapter.
func New(book string, entries []domain.Chapter) *Catalog {
	slices.SortStableFunc(entries, func(a, b domain.Chapter) int {
		return a.Chapter - b.Chapter
	})

	deduped := entries[:0]
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if seen[e.Chapter] {
			continue
		}
		seen[e.Chapter] = true
		deduped = append(deduped, e)
	}

	return &Catalog{book: book, entries: deduped}
}

// Empty returns a catalog with no entries for the given book.
func Empty(book string) *Catalog {
	return &Catalog{book: book}
}

// Book returns the book this catalog was fetched for.
func (c *Catalog) Book() string {
	return c.book
}

// Entries returns the ordered chapter entries.
func (c *Catalog) Entries() []domain.Chapter {
	return c.entries
}

// Len returns the number of chapters in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the catalog has no chapters.
func (c *Catalog) IsEmpty() bool {
	return len(c.entries) == 0
}

// UpNext returns up to limit entries immediately following currentChapter in
// catalog order. When currentChapter is not in the catalog the result is
// empty - the caller renders nothing rather than guessing.
func (c *Catalog) UpNext(currentChapter, limit int) []domain.Chapter {
	if limit <= 0 {
		limit = DefaultUpNextLimit
	}
	idx := c.indexOf(currentChapter)
	if idx < 0 {
		return nil
	}
	rest := c.entries[idx+1:]
	return slices.Clone(rest[:min(limit, len(rest))])
}

// FindByChapter returns the entry for the given chapter number, or nil.
func (c *Catalog) FindByChapter(chapter int) *domain.Chapter {
	if idx := c.indexOf(chapter); idx >= 0 {
		return &c.entries[idx]
	}
	return nil
}

// HasAudio reports whether the catalog carries an entry for the chapter.
// Chapter-selection UI enumerates 1..totalChapters from book metadata, which
// may exceed catalog coverage; absent chapters render disabled.
func (c *Catalog) HasAudio(chapter int) bool {
	return c.indexOf(chapter) >= 0
}

// NextPlayable returns the nearest playable entry after the given chapter,
// or nil when none exists. Unresolvable entries are skipped: they are shown
// in listings but are never navigation targets.
func (c *Catalog) NextPlayable(currentChapter int) *domain.Chapter {
	for i := range c.entries {
		if c.entries[i].Chapter > currentChapter && c.entries[i].Playable() {
			return &c.entries[i]
		}
	}
	return nil
}

// PrevPlayable returns the nearest playable entry before the given chapter,
// or nil when none exists.
func (c *Catalog) PrevPlayable(currentChapter int) *domain.Chapter {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Chapter < currentChapter && c.entries[i].Playable() {
			return &c.entries[i]
		}
	}
	return nil
}

func (c *Catalog) indexOf(chapter int) int {
	return slices.IndexFunc(c.entries, func(e domain.Chapter) bool {
		return e.Chapter == chapter
	})
}
