package discovery

import (
	"testing"
	"time"

	"nearbuy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(repo *fakeRepo) *SessionStore {
	return NewSessionStore(repo, nil, testTunables(), time.Minute, zap.NewNop())
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := newTestStore(&fakeRepo{})
	defer store.Shutdown()

	session := store.Create(models.FilterCriteria{Kind: models.KindJob}, nil, Viewer{})
	require.NotEmpty(t, session.ID)

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestSessionStore_GetUnknownID(t *testing.T) {
	store := newTestStore(&fakeRepo{})
	defer store.Shutdown()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_RemoveClosesSession(t *testing.T) {
	repo := &fakeRepo{}
	store := newTestStore(repo)
	defer store.Shutdown()

	session := store.Create(models.FilterCriteria{}, nil, Viewer{})
	store.Remove(session.ID)

	_, err := store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Let the initial fetch goroutine from Create resolve before sampling,
	// so the baseline is not racy on a single-CPU scheduler.
	time.Sleep(30 * time.Millisecond)

	// A closed session ignores further input.
	calls := repo.fetchCount()
	session.SetFilter(models.FilterPatch{VerifiedOnly: boolPtr(true)})
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, repo.fetchCount())
}

func TestSessionStore_ShutdownIsIdempotentPerSession(t *testing.T) {
	store := newTestStore(&fakeRepo{})

	session := store.Create(models.FilterCriteria{}, nil, Viewer{})
	session.Close()

	// Shutdown closes it again; must not panic or deadlock.
	store.Shutdown()
}
