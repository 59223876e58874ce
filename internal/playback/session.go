// Package playback implements the state machine driving one playback screen:
// current chapter and identifier, advance/rewind/end-of-media transitions,
// catalog refresh, and write-through of continuation state to the history
// store.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ubugingoapp/ubugingo-server/internal/catalog"
	"github.com/ubugingoapp/ubugingo-server/internal/domain"
	"github.com/ubugingoapp/ubugingo-server/internal/errors"
	"github.com/ubugingoapp/ubugingo-server/internal/youtube"
)

// DefaultTickInterval is how often the session samples playback position
// while playing.
const DefaultTickInterval = time.Second

// ChapterSource fetches the chapter catalog for a book.
// *catalog.Client is the production implementation.
type ChapterSource interface {
	FetchChapters(ctx context.Context, book string) (*catalog.Catalog, error)
}

// Recorder persists continuation state as the session transitions.
// *store.HistoryStore is the production implementation.
type Recorder interface {
	Upsert(ctx context.Context, entry *domain.HistoryEntry) error
}

// Config carries everything a session needs at construction.
type Config struct {
	Book     string
	Chapter  int
	MediaRef string
	Verses   int

	// StartSeconds positions the first chapter for resume-from-history.
	StartSeconds int

	Surface  MediaSurface
	Source   ChapterSource
	Recorder Recorder
	Logger   *slog.Logger

	// UpNextLimit defaults to catalog.DefaultUpNextLimit.
	UpNextLimit int
	// TickInterval defaults to DefaultTickInterval.
	TickInterval time.Duration
}

// Session owns the playback state for one screen. One session per screen,
// never shared; all methods are safe for the screen's event callbacks to
// call from different goroutines.
type Session struct {
	id           string
	book         string
	upNextLimit  int
	tickInterval time.Duration

	surface  MediaSurface
	source   ChapterSource
	recorder Recorder
	logger   *slog.Logger

	mu             sync.Mutex
	state          State
	currentChapter int
	currentVideoID string
	currentVerses  int
	elapsed        int
	lastErr        error
	cat            *catalog.Catalog
	upNext         []domain.Chapter
	fetchGen       int
	closed         bool

	tickCancel context.CancelFunc
	tickWG     sync.WaitGroup
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	ID             string
	State          State
	Book           string
	CurrentChapter int
	CurrentVideoID string
	ElapsedSeconds int
	IsPlaying      bool
	UpNext         []domain.Chapter
	CatalogLoaded  bool
	Err            error
}

// NewSession creates a session in the Idle state.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Book == "" {
		return nil, errors.Validation("book is required")
	}
	if cfg.Chapter < 1 {
		return nil, errors.Validation("chapter must be >= 1")
	}
	if cfg.Surface == nil || cfg.Source == nil || cfg.Recorder == nil {
		return nil, errors.Validation("surface, source, and recorder are required")
	}
	if cfg.UpNextLimit <= 0 {
		cfg.UpNextLimit = catalog.DefaultUpNextLimit
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	sessionID := uuid.NewString()

	return &Session{
		id:             sessionID,
		book:           cfg.Book,
		currentChapter: cfg.Chapter,
		currentVideoID: cfg.MediaRef, // resolved in Start
		currentVerses:  cfg.Verses,
		elapsed:        cfg.StartSeconds,
		upNextLimit:    cfg.UpNextLimit,
		tickInterval:   cfg.TickInterval,
		surface:        cfg.Surface,
		source:         cfg.Source,
		recorder:       cfg.Recorder,
		logger:         cfg.Logger.With("session_id", sessionID),
		state:          StateIdle,
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Start resolves the media reference, records the creation-time history
// snapshot, cues the surface, and kicks off the catalog fetch. The fetch is
// asynchronous: initial playback never waits for it.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return errors.Conflict("session already started")
	}
	s.state = StateLoading

	videoID, ok := youtube.Resolve(s.currentVideoID)
	if !ok {
		s.state = StateError
		s.lastErr = errors.Validationf("unresolvable media reference: %q", s.currentVideoID)
		err := s.lastErr
		s.mu.Unlock()
		return err
	}
	s.currentVideoID = videoID

	s.surface.Load(videoID, s.elapsed)
	s.recordLocked(ctx)
	s.state = StateReady
	s.mu.Unlock()

	s.RefreshCatalog(ctx)
	return nil
}

// RefreshCatalog starts an asynchronous catalog fetch. A result arriving
// after the session closed, or after a newer refresh started, is discarded.
func (s *Session) RefreshCatalog(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()

	go func() {
		cat, err := s.source.FetchChapters(ctx, s.book)
		s.applyCatalog(gen, cat, err)
	}()
}

// applyCatalog installs a fetch result if the session still wants it.
func (s *Session) applyCatalog(gen int, cat *catalog.Catalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.fetchGen {
		return
	}

	switch {
	case err == nil || errors.Is(err, catalog.ErrEmpty):
		s.cat = cat
		s.lastErr = nil
		s.upNext = cat.UpNext(s.currentChapter, s.upNextLimit)
		if s.state == StateLoading || s.state == StateError {
			s.state = StateReady
		}
	default:
		s.logger.Warn("catalog fetch failed", "book", s.book, "error", err)
		s.lastErr = err
		// Last-known-good catalog stays usable; only a session that
		// never loaded one has nothing to show.
		if s.cat == nil {
			s.state = StateError
		}
	}
}

// Retry re-attempts the catalog fetch after a failure.
func (s *Session) Retry(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.state == StateError {
		s.state = StateLoading
	}
	s.mu.Unlock()

	s.RefreshCatalog(ctx)
}

// Advance moves to the adjacent chapter in the given direction. Without a
// target (no successor/predecessor, or catalog not loaded yet) it is a
// silent no-op. Returns whether a transition happened.
func (s *Session) Advance(ctx context.Context, dir Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(ctx, dir)
}

func (s *Session) advanceLocked(ctx context.Context, dir Direction) bool {
	if s.closed || s.cat == nil {
		return false
	}

	var target *domain.Chapter
	switch dir {
	case Next:
		// Prefer the precomputed up-next head; fall back to the full
		// catalog when up-next predates the finished fetch.
		if len(s.upNext) > 0 && s.upNext[0].Playable() {
			target = &s.upNext[0]
		} else {
			target = s.cat.NextPlayable(s.currentChapter)
		}
	case Previous:
		target = s.cat.PrevPlayable(s.currentChapter)
	}

	if target == nil {
		return false
	}
	s.transitionLocked(ctx, target)
	return true
}

// SelectChapter jumps directly to a chapter from the catalog listing.
// Valid from any loaded state, including Ended.
func (s *Session) SelectChapter(ctx context.Context, chapter int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.cat == nil {
		return false
	}
	target := s.cat.FindByChapter(chapter)
	if target == nil || !target.Playable() {
		return false
	}
	s.transitionLocked(ctx, target)
	return true
}

// transitionLocked switches the session to a new chapter: persists the
// departing chapter's sampled position, resets to the new chapter at 0,
// starts playing, and recomputes up-next.
func (s *Session) transitionLocked(ctx context.Context, target *domain.Chapter) {
	s.recordLocked(ctx)

	s.currentChapter = target.Chapter
	s.currentVideoID = target.VideoID
	s.currentVerses = target.Verses
	s.elapsed = 0
	s.upNext = s.cat.UpNext(target.Chapter, s.upNextLimit)

	s.surface.Load(target.VideoID, 0)
	s.surface.Play()
	s.setPlayingLocked(true)

	s.recordLocked(ctx)
}

// OnMediaEnded handles end-of-media from the surface: advance to the next
// chapter, or transition to Ended when the book is done. Ended is terminal
// for auto-advance; the user must select a chapter to continue.
func (s *Session) OnMediaEnded(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.advanceLocked(ctx, Next) {
		return
	}
	s.stopTickLocked()
	s.state = StateEnded
}

// TogglePlayPause flips between Playing and Paused. No catalog or history
// I/O happens here.
func (s *Session) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	switch s.state {
	case StatePlaying:
		s.surface.Pause()
		s.setPlayingLocked(false)
	case StatePaused, StateReady:
		s.surface.Play()
		s.setPlayingLocked(true)
	default:
		// Idle, Loading, Ended, Error: nothing to toggle.
	}
}

// setPlayingLocked moves between Playing and Paused, managing the 1 Hz
// position tick so it runs exactly while playing.
func (s *Session) setPlayingLocked(playing bool) {
	if playing {
		s.state = StatePlaying
		s.startTickLocked()
		return
	}
	s.stopTickLocked()
	s.state = StatePaused
}

// startTickLocked launches the position sampler if not already running.
func (s *Session) startTickLocked() {
	if s.tickCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.tickCancel = cancel

	s.tickWG.Add(1)
	go func() {
		defer s.tickWG.Done()
		ticker := time.NewTicker(s.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.samplePosition()
			}
		}
	}()
}

// stopTickLocked stops the sampler. The goroutine may still be mid-tick;
// samplePosition re-checks state under the lock, so no sample lands after a
// transition out of Playing.
func (s *Session) stopTickLocked() {
	if s.tickCancel != nil {
		s.tickCancel()
		s.tickCancel = nil
	}
}

// samplePosition records the surface's position for progress display and
// eventual resume persistence.
func (s *Session) samplePosition() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StatePlaying {
		return
	}
	if t := s.surface.CurrentTime(); t >= 0 {
		s.elapsed = t
	}
}

// Snapshot returns the current view of the session. The note-creation modal
// uses it to anchor a note to (book, chapter, elapsed).
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:             s.id,
		State:          s.state,
		Book:           s.book,
		CurrentChapter: s.currentChapter,
		CurrentVideoID: s.currentVideoID,
		ElapsedSeconds: s.elapsed,
		IsPlaying:      s.state == StatePlaying,
		UpNext:         append([]domain.Chapter(nil), s.upNext...),
		CatalogLoaded:  s.cat != nil,
		Err:            s.lastErr,
	}
}

// Catalog returns the last loaded catalog, or nil.
func (s *Session) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat
}

// Close tears the session down: persists the final sampled position, stops
// the tick, and discards any in-flight catalog fetch. Safe to call once the
// screen unmounts; all other methods become no-ops.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.state == StatePlaying || s.state == StatePaused {
		s.recordLocked(ctx)
	}
	s.stopTickLocked()
	s.closed = true
	s.fetchGen++ // orphan any in-flight fetch
	s.mu.Unlock()

	s.tickWG.Wait()
}

// recordLocked writes through the current position to the history store.
// Persistence failures are logged and abandoned; playback never fails
// because a local write did.
func (s *Session) recordLocked(ctx context.Context) {
	if s.currentVideoID == "" {
		return
	}
	entry := &domain.HistoryEntry{
		Book:            s.book,
		Chapter:         s.currentChapter,
		VideoID:         s.currentVideoID,
		Verses:          s.currentVerses,
		LastPlayedAt:    time.Now(),
		PositionSeconds: s.elapsed,
		Thumbnail:       youtube.ThumbnailURL(s.currentVideoID),
	}
	if err := s.recorder.Upsert(ctx, entry); err != nil {
		s.logger.Warn("failed to persist playback history",
			"book", s.book, "chapter", s.currentChapter, "error", err)
	}
}
