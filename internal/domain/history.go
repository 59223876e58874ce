package domain

import "time"

// HistoryEntry is a persisted "recently played" record.
// At most one entry exists per (book, chapter) in the stored list.
type HistoryEntry struct {
	Book         string    `json:"book"`
	Chapter      int       `json:"chapter"`
	VideoID      string    `json:"video_id"`
	Verses       int       `json:"verses"`
	LastPlayedAt time.Time `json:"last_played_at"`

	// PositionSeconds is the playback position to resume from. Captured
	// from the 1 Hz progress sample when the session leaves the chapter.
	PositionSeconds int `json:"position_seconds"`

	// Thumbnail is derived from the video ID at write time so history
	// views render without resolving anything.
	Thumbnail string `json:"thumbnail"`
}

// SameChapter reports whether two entries refer to the same (book, chapter).
func (h *HistoryEntry) SameChapter(other *HistoryEntry) bool {
	return h.Book == other.Book && h.Chapter == other.Chapter
}
