package discovery

import (
	"context"
	"strings"
	"sync"
	"time"

	listingRepo "nearbuy/database/repository/listing"
	"nearbuy/models"

	"go.uber.org/zap"
)

// SearchState holds the free-text query and its debounced suggestion
// fetching. Text updates are visible immediately; suggestion fetches are
// deferred until the debounce interval elapses without another keystroke.
//
// A monotonically increasing generation counter invalidates stale async
// results: the winner is always the last fetch issued, never merely the last
// to resolve. SearchState has its own lock because the debounce timer and
// fetch completions fire on their own goroutines.
type SearchState struct {
	mu          sync.Mutex
	text        string
	suggestions []models.Suggestion

	gen      uint64
	timer    *time.Timer
	cancel   context.CancelFunc
	closed   bool
	kindScope func() models.ListingKind

	source listingRepo.ListingRepository
	cfg    Tunables
	log    *zap.Logger
}

// NewSearchState wires search state to its suggestion source. kindScope
// reports the session's current listing-kind so suggestions stay in scope.
func NewSearchState(source listingRepo.ListingRepository, kindScope func() models.ListingKind, cfg Tunables, log *zap.Logger) *SearchState {
	return &SearchState{
		source:    source,
		kindScope: kindScope,
		cfg:       cfg,
		log:       log,
	}
}

// Text returns the current query text.
func (s *SearchState) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Suggestions returns the current suggestion list.
func (s *SearchState) Suggestions() []models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestions
}

// SetQuery updates the text immediately and restarts the debounce timer.
// Every keystroke within the window cancels and restarts the timer.
func (s *SearchState) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.text = text
	s.gen++
	s.stopTimerLocked()

	if len(strings.TrimSpace(text)) < s.cfg.MinQueryLen {
		// Below the threshold no fetch happens; drop whatever was pending.
		s.cancelFetchLocked()
		s.suggestions = nil
		return
	}

	gen := s.gen
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.fire(gen)
	})
}

// fire runs when the debounce window closes. It issues a cancellable
// suggestion fetch unless a newer keystroke already superseded it.
func (s *SearchState) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}

	s.cancelFetchLocked()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	prefix := strings.TrimSpace(s.text)
	limit := s.cfg.SuggestionLimit
	s.mu.Unlock()

	// kindScope takes the session lock, so it must run with the search lock
	// released.
	kind := s.kindScope()

	go func() {
		suggestions, err := s.source.Suggest(ctx, prefix, kind, limit)

		s.mu.Lock()
		defer s.mu.Unlock()
		// Generation is checked at resolution time: a superseded fetch never
		// commits, even if network jitter resolves it first.
		if s.closed || gen != s.gen {
			return
		}
		if err != nil {
			// Degrades to an empty list; never surfaced as an error.
			s.log.Debug("suggestion fetch failed", zap.Error(err))
			s.suggestions = nil
			return
		}
		s.suggestions = suggestions
	}()
}

// Clear empties the text, cancels any pending timer and in-flight fetch, and
// clears suggestions synchronously.
func (s *SearchState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.stopTimerLocked()
	s.cancelFetchLocked()
	s.text = ""
	s.suggestions = nil
}

// Select sets text to the chosen suggestion and suppresses the suggestion
// fetch the text change would otherwise schedule.
func (s *SearchState) Select(item models.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.stopTimerLocked()
	s.cancelFetchLocked()
	s.text = item.Text
	s.suggestions = nil
}

// Close releases the debounce timer and any in-flight fetch so nothing fires
// against a disposed session. Idempotent.
func (s *SearchState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.stopTimerLocked()
	s.cancelFetchLocked()
}

func (s *SearchState) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SearchState) cancelFetchLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
