package discovery

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	listingRepo "nearbuy/database/repository/listing"
	"nearbuy/models"

	"go.uber.org/zap"
)

// Session is one discovery feed instance, owned by a single client screen.
// It holds filter state, search state, the current signature, the pagination
// cursor and the result buckets. All mutations go through the session mutex;
// async fetch completions re-acquire it and re-check the signature and fetch
// generation before committing, so a superseded fetch can never overwrite
// newer results regardless of resolution order.
type Session struct {
	ID string

	mu        sync.Mutex
	cfg       Tunables
	log       *zap.Logger
	repo      listingRepo.ListingRepository
	analytics AnalyticsSink

	filters  *FilterState
	search   *SearchState
	location *models.Coordinates
	viewer   Viewer

	sig     Signature
	cursor  Cursor
	state   LoadState
	lastErr error

	primary         []models.Listing
	nearby          []models.Listing
	expansionActive bool

	// Split parameters are latched per signature on the reset-fetch so
	// load-more pages keep being partitioned under the same rule.
	splitActive bool
	splitRadius float64

	fetchGen    uint64
	cancelFetch context.CancelFunc

	// Projection cache, invalidated by version compare rather than by any
	// framework-level memoization.
	version       uint64
	cachedVersion uint64
	cachedEntries []models.FeedEntry
	cachedMarkers []models.MapMarker

	closed     bool
	lastAccess time.Time
}

// NewSession creates a feed session with the given initial scope and kicks
// off the first load.
func NewSession(id string, repo listingRepo.ListingRepository, analytics AnalyticsSink, initial models.FilterCriteria, location *models.Coordinates, viewer Viewer, cfg Tunables, log *zap.Logger) *Session {
	s := &Session{
		ID:         id,
		cfg:        cfg,
		log:        log,
		repo:       repo,
		analytics:  analytics,
		filters:    NewFilterState(initial, cfg.DefaultRadiusMiles),
		location:   location,
		viewer:     viewer,
		state:      StateIdle,
		cursor:     newCursor(cfg.PageSize),
		lastAccess: time.Now(),
	}
	s.search = NewSearchState(repo, func() models.ListingKind {
		// Called from the debounce goroutine with no search lock held, so
		// taking the session lock here keeps the session→search lock order.
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.filters.Criteria().Kind
	}, cfg, log)

	s.mu.Lock()
	s.refreshLocked()
	s.mu.Unlock()
	return s
}

// SetFilter merges a partial filter update and refetches if the signature
// changed.
func (s *Session) SetFilter(patch models.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Set(patch)
	s.refreshLocked()
}

// ResetFilters restores the session's initial filter scope.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Reset()
	s.refreshLocked()
}

// SetQuery updates the search text; the feed refetches when the signature
// changes and suggestion fetching follows the debounce.
func (s *Session) SetQuery(text string) {
	s.search.SetQuery(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
}

// ClearQuery empties the search text and suggestions.
func (s *Session) ClearQuery() {
	s.search.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
}

// SelectSuggestion adopts a suggestion as the query text. A selection event
// is recorded only when a user identity is attached; without one the text
// still updates and nothing is recorded.
func (s *Session) SelectSuggestion(item models.Suggestion) {
	s.search.Select(item)

	s.mu.Lock()
	viewer := s.viewer
	sink := s.analytics
	s.refreshLocked()
	s.mu.Unlock()

	if sink != nil && viewer.UserID != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			sink.RecordSuggestionSelection(ctx, item.Text, viewer.UserID, viewer.Role)
		}()
	}
}

// UpdateLocation replaces the searcher's coordinates. A nil location is
// valid: distance filtering becomes inapplicable, not broken.
func (s *Session) UpdateLocation(location *models.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = location
	s.refreshLocked()
}

// LoadMore requests the next page. It is a no-op while a load is in
// progress, after completion, or in the error state; rapid scroll-triggered
// calls collapse to one fetch.
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateReady || !s.cursor.HasMore {
		return
	}
	s.state = StateLoadingMore
	s.version++
	s.issueFetchLocked(false)
}

// Retry re-issues the failed fetch. Retrying is an explicit user action; the
// controller never retries on its own.
func (s *Session) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateError {
		return
	}
	s.lastErr = nil
	s.version++
	if s.cursor.Token == "" {
		s.state = StateLoadingInitial
		s.issueFetchLocked(true)
		return
	}
	s.state = StateLoadingMore
	s.issueFetchLocked(false)
}

// ActiveFilterCount returns how many non-default filters are set.
func (s *Session) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.ActiveCount()
}

// Snapshot returns the presentation-ready view of the session. The flat feed
// and map markers are recomputed only when the underlying buckets changed.
func (s *Session) Snapshot() models.FeedView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()

	if s.cachedVersion != s.version || s.cachedEntries == nil {
		s.cachedEntries = projectFeed(s.primary, s.nearby, s.expansionActive)
		s.cachedMarkers = projectMarkers(s.primary, s.nearby)
		s.cachedVersion = s.version
	}

	active := s.filters.ActiveCount()
	query := s.search.Text()

	view := models.FeedView{
		PrimaryListings: s.primary,
		NearbyListings:  s.nearby,
		Entries:         s.cachedEntries,
		Markers:         s.cachedMarkers,
		Suggestions:     s.search.Suggestions(),
		ExpansionActive: s.expansionActive,
		HasMore:         s.cursor.HasMore,
		LoadingState:    string(s.state),
		ActiveFilters:   active,
		CarouselVisible: carouselVisible(active, query),
	}
	if s.state == StateError && s.lastErr != nil {
		view.Error = s.lastErr.Error()
	}
	return view
}

// LastAccess reports when the session was last read or mutated.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Close tears the session down: the in-flight fetch is cancelled and the
// debounce timer released so nothing fires against a disposed session.
// Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancelInFlightLocked()
	s.mu.Unlock()

	s.search.Close()
}

// refreshLocked is the signature guard. It recomputes the signature from
// filters, search text and location; an unchanged signature suppresses the
// fetch entirely, a changed one cancels the in-flight fetch, resets the
// cursor and clears the buckets before the new fetch is issued.
func (s *Session) refreshLocked() {
	if s.closed {
		return
	}
	next := ComputeSignature(s.filters.Criteria(), s.search.Text(), s.location)
	if next == s.sig && s.state != StateIdle {
		return
	}
	s.sig = next

	s.cancelInFlightLocked()
	s.cursor = newCursor(s.cfg.PageSize)
	s.primary, s.nearby = nil, nil
	s.expansionActive = false
	s.lastErr = nil

	criteria := s.filters.Criteria()
	s.splitActive = distanceSplitActive(criteria, s.location)
	if s.splitActive {
		s.splitRadius = *criteria.RadiusMiles
	}

	s.state = StateLoadingInitial
	s.version++
	s.issueFetchLocked(true)
}

// cancelInFlightLocked aborts the outstanding page fetch, if any. The
// executor sees the context cancellation and tears the query down; its
// resolution then lands as a silent no-op.
func (s *Session) cancelInFlightLocked() {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
}

// issueFetchLocked starts one page fetch for the current signature. The
// fetch generation ties the eventual completion back to this issue point.
func (s *Session) issueFetchLocked(reset bool) {
	s.fetchGen++
	gen := s.fetchGen
	sig := s.sig
	criteria := s.filters.Criteria()
	query := strings.TrimSpace(s.search.Text())
	location := s.location
	token := s.cursor.Token
	pageSize := s.cursor.PageSize

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFetch = cancel

	go func() {
		page, err := s.repo.FetchPage(ctx, criteria, query, location, token, pageSize)

		s.mu.Lock()
		defer s.mu.Unlock()
		// Visual commit gating: results land only when both the signature
		// and the fetch generation still match, checked at resolution time.
		if s.closed || gen != s.fetchGen || sig != s.sig {
			return
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// Cancellation is not an error; resolve to a silent no-op.
				return
			}
			s.state = StateError
			s.lastErr = err
			s.version++
			s.log.Warn("feed page fetch failed", zap.String("session", s.ID), zap.Error(err))
			return
		}
		s.commitPageLocked(page, reset)
	}()
}

// commitPageLocked folds one successful page into the buckets and advances
// the cursor.
func (s *Session) commitPageLocked(page *listingRepo.Page, reset bool) {
	rows := page.Rows
	hasMore := len(rows) == s.cursor.PageSize
	s.cursor.Token = page.NextToken
	s.cursor.HasMore = hasMore

	var primary, nearby []models.Listing
	if s.splitActive {
		primary, nearby = splitPage(rows, s.splitRadius, s.cfg.ExpansionCeilingMiles)
	} else {
		primary = rows
	}

	if reset {
		s.primary, s.nearby = primary, nearby
		// The sparsity rule runs on the reset-fetch only; load-more pages
		// keep the latched value.
		s.expansionActive = s.splitActive && sparseExpansion(len(primary), len(nearby), s.cfg.ExpansionThreshold)
	} else {
		s.primary = append(s.primary, primary...)
		s.nearby = append(s.nearby, nearby...)
	}

	if hasMore {
		s.state = StateReady
	} else {
		s.state = StateComplete
	}
	s.lastErr = nil
	s.version++
}
