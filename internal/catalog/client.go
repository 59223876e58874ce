package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ubugingoapp/ubugingo-server/internal/domain"
	"github.com/ubugingoapp/ubugingo-server/internal/errors"
	"github.com/ubugingoapp/ubugingo-server/internal/youtube"
)

// Sentinel errors for catalog fetches.
var (
	// ErrUnavailable covers network failures, unexpected statuses, and
	// malformed payloads. Retryable by the user; the session keeps its
	// last-known-good catalog.
	ErrUnavailable = errors.ErrUnavailable.WithMessage("chapter catalog unavailable")

	// ErrEmpty marks a valid "no chapters yet" result. Returned together
	// with a usable empty catalog, never as a hard failure.
	ErrEmpty = errors.ErrNotFound.WithMessage("no audio chapters found")
)

// Client fetches chapter catalogs from the content API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a catalog client for the given content API base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// wireChapter mirrors the content API's chapter record. Numeric fields are
// decoded as any: the legacy collection mixes numbers and strings.
type wireChapter struct {
	ID      string `json:"_id"`
	Book    string `json:"book"`
	Chapter any    `json:"chapter"`
	Verses  any    `json:"verses"`
	Length  any    `json:"length"`
	URL     string `json:"url"`
	VideoID string `json:"videoId"`
}

// FetchChapters retrieves and normalizes all chapters for a book, sorted
// ascending by chapter number.
//
// A 404 or zero-length payload yields (Empty(book), ErrEmpty) - representable
// and non-fatal. Any other failure yields (nil, ErrUnavailable).
func (c *Client) FetchChapters(ctx context.Context, book string) (*Catalog, error) {
	var records []wireChapter
	if err := c.getJSON(ctx, "/api/audio/"+url.PathEscape(book), &records); err != nil {
		if errors.Is(err, ErrEmpty) {
			return Empty(book), ErrEmpty
		}
		return nil, err
	}
	if len(records) == 0 {
		return Empty(book), ErrEmpty
	}

	entries := make([]domain.Chapter, 0, len(records))
	for _, rec := range records {
		entries = append(entries, c.normalize(book, rec))
	}
	return New(book, entries), nil
}

// FetchChapter retrieves a single chapter record.
func (c *Client) FetchChapter(ctx context.Context, book string, chapter int) (*domain.Chapter, error) {
	var rec wireChapter
	path := fmt.Sprintf("/api/audio/%s/%d", url.PathEscape(book), chapter)
	if err := c.getJSON(ctx, path, &rec); err != nil {
		if errors.Is(err, ErrEmpty) {
			return nil, errors.NotFoundf("no audio for %s chapter %d", book, chapter)
		}
		return nil, err
	}
	entry := c.normalize(book, rec)
	return &entry, nil
}

// getJSON performs a GET and decodes the body. 404 maps to ErrEmpty so
// callers can distinguish "nothing there" from "the source is broken".
func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrEmpty
	case resp.StatusCode != http.StatusOK:
		return ErrUnavailable.WithCause(fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return ErrUnavailable.WithCause(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

// normalize converts a wire record into the internal chapter model.
// Resolution failures keep the entry but leave VideoID empty.
func (c *Client) normalize(book string, rec wireChapter) domain.Chapter {
	if rec.Book != "" {
		book = rec.Book
	}

	mediaRef := rec.VideoID
	if mediaRef == "" {
		mediaRef = rec.URL
	}

	entry := domain.Chapter{
		Book:            book,
		Chapter:         coerceInt(rec.Chapter),
		Verses:          max(coerceInt(rec.Verses), 0),
		DurationSeconds: normalizeDuration(rec.Length),
		MediaRef:        mediaRef,
	}

	if id, ok := youtube.Resolve(mediaRef); ok {
		entry.VideoID = id
	} else if c.logger != nil {
		c.logger.Warn("unresolvable media reference, chapter marked non-playable",
			"book", entry.Book, "chapter", entry.Chapter, "media_ref", mediaRef)
	}
	return entry
}

// coerceInt converts a loosely-typed numeric value to an int, defaulting to 0.
func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return 0
}

// normalizeDuration converts the heterogeneous length field to integer
// seconds. Numeric values are used as-is; strings like "20min" are stripped
// to their digits. Anything unparseable defaults to 0.
func normalizeDuration(v any) int {
	switch n := v.(type) {
	case float64:
		return max(int(n), 0)
	case int:
		return max(n, 0)
	case string:
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, n)
		if digits == "" {
			return 0
		}
		parsed, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}
