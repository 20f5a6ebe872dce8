package discovery

import (
	"testing"

	"nearbuy/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterState_SetMergesPatch(t *testing.T) {
	f := NewFilterState(models.FilterCriteria{Kind: models.KindJob}, 25)

	f.Set(models.FilterPatch{MinRating: fptr(4)})
	f.Set(models.FilterPatch{VerifiedOnly: boolPtr(true)})

	got := f.Criteria()
	assert.Equal(t, models.KindJob, got.Kind, "unpatched fields stay put")
	assert.Equal(t, 4.0, *got.MinRating)
	assert.True(t, got.VerifiedOnly)
}

func TestFilterState_ResetPreservesInitialScope(t *testing.T) {
	f := NewFilterState(models.FilterCriteria{Kind: models.KindJob}, 25)

	kind := models.KindAll
	f.Set(models.FilterPatch{Kind: &kind, MinRating: fptr(4.5), RadiusMiles: fptr(3)})
	f.Reset()

	got := f.Criteria()
	assert.Equal(t, models.KindJob, got.Kind, "a jobs entry point resets to jobs, not to all")
	assert.Nil(t, got.MinRating)
	assert.Nil(t, got.RadiusMiles)
}

func TestFilterState_ResetIdempotent(t *testing.T) {
	f := NewFilterState(models.FilterCriteria{Kind: models.KindService}, 25)

	f.Set(models.FilterPatch{Sort: sortPtr(models.SortPriceAsc), PriceMin: fptr(5)})
	f.Reset()
	first := f.Criteria()
	f.Reset()
	second := f.Criteria()

	assert.Equal(t, first, second)
	assert.Equal(t, 0, f.ActiveCount())
}

func TestFilterState_ActiveCountDefaultAware(t *testing.T) {
	f := NewFilterState(models.FilterCriteria{Kind: models.KindAll}, 25)
	assert.Equal(t, 0, f.ActiveCount())

	// The system default radius does not count as an active filter.
	f.Set(models.FilterPatch{RadiusMiles: fptr(25)})
	assert.Equal(t, 0, f.ActiveCount())

	f.Set(models.FilterPatch{RadiusMiles: fptr(5)})
	assert.Equal(t, 1, f.ActiveCount())

	// Relevance is the default sort.
	f.Set(models.FilterPatch{Sort: sortPtr(models.SortRelevance)})
	assert.Equal(t, 1, f.ActiveCount())

	f.Set(models.FilterPatch{Sort: sortPtr(models.SortRating)})
	assert.Equal(t, 2, f.ActiveCount())

	f.Set(models.FilterPatch{MinRating: fptr(4), VerifiedOnly: boolPtr(true)})
	assert.Equal(t, 4, f.ActiveCount())
}

func TestFilterState_ClearFlagsDropConstraints(t *testing.T) {
	f := NewFilterState(models.FilterCriteria{Kind: models.KindProduct}, 25)

	f.Set(models.FilterPatch{PriceMin: fptr(10), PriceMax: fptr(90), RadiusMiles: fptr(2), MinRating: fptr(3)})
	f.Set(models.FilterPatch{ClearPriceRange: true, ClearRadius: true, ClearMinRating: true})

	got := f.Criteria()
	assert.Nil(t, got.PriceMin)
	assert.Nil(t, got.PriceMax)
	assert.Nil(t, got.RadiusMiles)
	assert.Nil(t, got.MinRating)
	assert.Equal(t, 0, f.ActiveCount())
}

func boolPtr(v bool) *bool                    { return &v }
func sortPtr(v models.SortMode) *models.SortMode { return &v }
