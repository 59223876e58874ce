// Package youtube resolves raw media references into canonical YouTube video
// identifiers and derives the URLs the app needs from them.
//
// Content records reference their media inconsistently: some store a bare
// 11-character video ID, others a full URL in one of several shapes. All
// resolution is pure string work - no network calls.
package youtube

import (
	"fmt"
	"regexp"
)

var (
	// bareID matches the YouTube video ID grammar: exactly 11 characters
	// from the URL-safe alphabet.
	bareID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

	// urlShapes capture an embedded video ID from the known URL forms:
	// watch?v=ID, /embed/ID, /e/ID, /v/ID, and youtu.be/ID short links.
	urlShapes = []*regexp.Regexp{
		regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`/v/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`/e/([a-zA-Z0-9_-]{11})`),
	}
)

// Resolve normalizes a media reference into a canonical video ID.
//
// A bare ID is returned unchanged, so Resolve is a fixed point over its own
// output. URLs yield the first capture group that matches. References that
// match neither shape return ("", false); the caller must treat the chapter
// as non-playable rather than fail the whole catalog.
func Resolve(mediaRef string) (string, bool) {
	if mediaRef == "" {
		return "", false
	}
	if bareID.MatchString(mediaRef) {
		return mediaRef, true
	}
	for _, re := range urlShapes {
		if m := re.FindStringSubmatch(mediaRef); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ThumbnailURL returns the default thumbnail image for a video ID.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", videoID)
}

// EmbedURL returns the embeddable player URL used by the web player surface.
func EmbedURL(videoID string, autoplay bool) string {
	auto := 0
	if autoplay {
		auto = 1
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=%d&enablejsapi=1", videoID, auto)
}
