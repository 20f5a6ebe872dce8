package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	listingRepo "nearbuy/database/repository/listing"
	"nearbuy/models"
)

// fakeRepo is a controllable ListingRepository for engine tests.
type fakeRepo struct {
	mu           sync.Mutex
	fetchCalls   int
	suggestCalls int
	lastSearch   string
	lastToken    string

	fetchFn   func(ctx context.Context, criteria models.FilterCriteria, search string, location *models.Coordinates, token string, pageSize int) (*listingRepo.Page, error)
	suggestFn func(ctx context.Context, prefix string, kind models.ListingKind, limit int) ([]models.Suggestion, error)
}

func (f *fakeRepo) FetchPage(ctx context.Context, criteria models.FilterCriteria, search string, location *models.Coordinates, token string, pageSize int) (*listingRepo.Page, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.lastSearch = search
	f.lastToken = token
	fn := f.fetchFn
	f.mu.Unlock()

	if fn == nil {
		return &listingRepo.Page{}, nil
	}
	return fn(ctx, criteria, search, location, token, pageSize)
}

func (f *fakeRepo) Suggest(ctx context.Context, prefix string, kind models.ListingKind, limit int) ([]models.Suggestion, error) {
	f.mu.Lock()
	f.suggestCalls++
	f.lastSearch = prefix
	fn := f.suggestFn
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(ctx, prefix, kind, limit)
}

func (f *fakeRepo) Create(ctx context.Context, listing *models.Listing) error { return nil }

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	return nil, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeRepo) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

func (f *fakeRepo) suggestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggestCalls
}

func testTunables() Tunables {
	return Tunables{
		PageSize:              5,
		ExpansionCeilingMiles: 100,
		ExpansionThreshold:    30,
		DefaultRadiusMiles:    25,
		Debounce:              20 * time.Millisecond,
		MinQueryLen:           2,
		SuggestionLimit:       5,
	}
}

func fptr(v float64) *float64 { return &v }

// listingAt builds a listing with a known distance; pass nil for missing geodata.
func listingAt(id string, distanceMiles *float64) models.Listing {
	return models.Listing{
		ID:            id,
		Title:         id,
		Kind:          models.KindService,
		DistanceMiles: distanceMiles,
	}
}

func listingsAt(prefix string, distances []float64) []models.Listing {
	out := make([]models.Listing, 0, len(distances))
	for i, d := range distances {
		out = append(out, listingAt(fmt.Sprintf("%s-%d", prefix, i), fptr(d)))
	}
	return out
}
