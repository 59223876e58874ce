// Package domain contains the core types shared by the playback core and the content API.
package domain

// Chapter is one unit of playable content within a book's catalog.
// Chapters are rebuilt on every catalog fetch and never persisted locally.
type Chapter struct {
	Book            string `json:"book"`
	Chapter         int    `json:"chapter"`
	Verses          int    `json:"verses"`
	DurationSeconds int    `json:"duration_seconds"`

	// MediaRef is the raw reference from the content source: a full
	// YouTube URL or a bare 11-character video ID.
	MediaRef string `json:"media_ref"`

	// VideoID is the resolved canonical identifier. Empty when the
	// media reference could not be resolved.
	VideoID string `json:"video_id,omitempty"`
}

// Playable reports whether the chapter resolved to a playable identifier.
// Unplayable chapters stay in listings but are never navigation targets.
func (c *Chapter) Playable() bool {
	return c.VideoID != ""
}

// Key identifies a chapter within its book's catalog.
func (c *Chapter) Key() ChapterKey {
	return ChapterKey{Book: c.Book, Chapter: c.Chapter}
}

// ChapterKey is the (book, chapter) pair that uniquely identifies an entry.
type ChapterKey struct {
	Book    string
	Chapter int
}
