package discovery

import (
	"testing"

	"nearbuy/models"

	"github.com/stretchr/testify/assert"
)

func TestSplitPage_BoundaryDistances(t *testing.T) {
	const radius = 5.0
	rows := []models.Listing{
		listingAt("at-zero", fptr(0)),
		listingAt("at-radius", fptr(radius)),
		listingAt("just-outside", fptr(radius+1)),
		listingAt("at-ceiling", fptr(100)),
		listingAt("past-ceiling", fptr(100.1)),
		listingAt("no-geodata", nil),
	}

	primary, nearby := splitPage(rows, radius, 100)

	assert.Equal(t, []string{"at-zero", "at-radius", "no-geodata"}, ids(primary))
	assert.Equal(t, []string{"just-outside", "at-ceiling"}, ids(nearby))
}

func TestSplitPage_MissingGeodataIsPrimary(t *testing.T) {
	primary, nearby := splitPage([]models.Listing{listingAt("x", nil)}, 1, 100)
	assert.Len(t, primary, 1)
	assert.Empty(t, nearby)
}

func TestSparseExpansion(t *testing.T) {
	assert.True(t, sparseExpansion(29, 1, 30))
	assert.False(t, sparseExpansion(30, 5, 30))
	assert.False(t, sparseExpansion(10, 0, 30), "no nearby supplements, nothing to expand into")
	assert.False(t, sparseExpansion(30, 0, 30))
}

func TestDistanceSplitActive(t *testing.T) {
	loc := &models.Coordinates{Lat: 1, Lon: 1}

	withRadius := models.FilterCriteria{RadiusMiles: fptr(5)}
	noRadius := models.FilterCriteria{}

	assert.True(t, distanceSplitActive(withRadius, loc))
	assert.False(t, distanceSplitActive(withRadius, nil), "unknown searcher location disables splitting")
	assert.False(t, distanceSplitActive(noRadius, loc))
	assert.False(t, distanceSplitActive(noRadius, nil))
}

func ids(rows []models.Listing) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
