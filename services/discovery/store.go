package discovery

import (
	"errors"
	"sync"
	"time"

	listingRepo "nearbuy/database/repository/listing"
	"nearbuy/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("feed session not found")

// SessionStore holds the live feed sessions, one per client screen. Idle
// sessions are closed and evicted after the TTL so their timers and fetches
// are released.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}

	repo      listingRepo.ListingRepository
	analytics AnalyticsSink
	cfg       Tunables
	log       *zap.Logger
}

// NewSessionStore creates the store and starts its eviction sweep.
func NewSessionStore(repo listingRepo.ListingRepository, analytics AnalyticsSink, cfg Tunables, ttl time.Duration, log *zap.Logger) *SessionStore {
	store := &SessionStore{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		done:      make(chan struct{}),
		repo:      repo,
		analytics: analytics,
		cfg:       cfg,
		log:       log,
	}
	go store.sweep()
	return store
}

// Create opens a new feed session with the given initial scope.
func (st *SessionStore) Create(initial models.FilterCriteria, location *models.Coordinates, viewer Viewer) *Session {
	id := uuid.NewString()
	session := NewSession(id, st.repo, st.analytics, initial, location, viewer, st.cfg, st.log)

	st.mu.Lock()
	st.sessions[id] = session
	st.mu.Unlock()

	st.log.Info("feed session created", zap.String("session", id), zap.String("kind", string(initial.Kind)))
	return session
}

// Get returns the session for an id.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove closes and drops a session.
func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	session, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		session.Close()
	}
}

// Shutdown stops the sweep and closes every session.
func (st *SessionStore) Shutdown() {
	close(st.done)

	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (st *SessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-st.ttl)

			st.mu.Lock()
			var expired []*Session
			for id, s := range st.sessions {
				if s.LastAccess().Before(cutoff) {
					expired = append(expired, s)
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()

			for _, s := range expired {
				s.Close()
				st.log.Debug("feed session expired", zap.String("session", s.ID))
			}
		}
	}
}
