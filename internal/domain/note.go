package domain

import "time"

// Note is a user annotation anchored to a (book, chapter, timestamp) tuple.
// The timestamp is the playback position at the moment the note was taken.
type Note struct {
	ID               string     `json:"id"`
	Book             string     `json:"book"`
	Chapter          int        `json:"chapter"`
	VideoID          string     `json:"video_id"`
	TimestampSeconds int        `json:"timestamp_seconds"`
	Text             string     `json:"text"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
