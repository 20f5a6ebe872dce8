package discovery

import (
	"testing"

	"nearbuy/models"

	"github.com/stretchr/testify/assert"
)

func TestProjectFeed_NoExpansion(t *testing.T) {
	primary := listingsAt("p", []float64{1, 2})
	nearby := listingsAt("n", []float64{10})

	entries := projectFeed(primary, nearby, false)

	assert.Len(t, entries, 2, "nearby stays hidden without expansion")
	for _, e := range entries {
		assert.Equal(t, models.EntryListing, e.Type)
	}
}

func TestProjectFeed_ExpansionInjectsBoundary(t *testing.T) {
	primary := listingsAt("p", []float64{1, 2})
	nearby := listingsAt("n", []float64{10, 12})

	entries := projectFeed(primary, nearby, true)

	assert.Len(t, entries, 5)
	assert.Equal(t, models.EntrySectionBoundary, entries[2].Type, "boundary sits between the buckets")
	assert.Equal(t, "p-0", entries[0].Listing.ID)
	assert.Equal(t, "n-0", entries[3].Listing.ID)
	assert.Equal(t, "n-1", entries[4].Listing.ID)
}

func TestProjectMarkers_TiersAreDisjoint(t *testing.T) {
	primary := listingsAt("p", []float64{1, 2, 3})
	nearby := listingsAt("n", []float64{10})

	markers := projectMarkers(primary, nearby)

	assert.Len(t, markers, 4)
	tiers := map[string]models.MarkerTier{}
	for _, m := range markers {
		if prev, seen := tiers[m.ListingID]; seen {
			t.Fatalf("listing %s appears in both %s and %s", m.ListingID, prev, m.Tier)
		}
		tiers[m.ListingID] = m.Tier
	}
	assert.Equal(t, models.TierPrimary, tiers["p-0"])
	assert.Equal(t, models.TierNearby, tiers["n-0"])
}

func TestCarouselVisible(t *testing.T) {
	assert.True(t, carouselVisible(0, ""))
	assert.True(t, carouselVisible(0, "   "), "whitespace-only query is not a search")
	assert.False(t, carouselVisible(1, ""), "any active filter hides the carousel")
	assert.False(t, carouselVisible(0, "plumber"), "an active search hides the carousel")
	assert.False(t, carouselVisible(2, "plumber"))
}
