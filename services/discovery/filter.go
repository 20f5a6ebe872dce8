package discovery

import "nearbuy/models"

// FilterState holds the current filter criteria for one feed session, plus
// the initial scope the session was opened with. Not safe for concurrent use;
// the owning session serializes access.
type FilterState struct {
	initial models.FilterCriteria
	current models.FilterCriteria

	// defaultRadius is the system default used by ActiveCount: a radius equal
	// to it does not count as an active filter.
	defaultRadius float64
}

// NewFilterState seeds filter state with the screen's initial scope. A "jobs
// near me" entry point keeps its jobs constraint across resets.
func NewFilterState(initial models.FilterCriteria, defaultRadius float64) *FilterState {
	if initial.Sort == "" {
		initial.Sort = models.SortRelevance
	}
	if initial.Kind == "" {
		initial.Kind = models.KindAll
	}
	return &FilterState{
		initial:       initial,
		current:       initial,
		defaultRadius: defaultRadius,
	}
}

// Criteria returns a copy of the current criteria.
func (f *FilterState) Criteria() models.FilterCriteria {
	return f.current
}

// Set merges a partial update into the current criteria. Nil patch fields
// leave the corresponding criteria untouched.
func (f *FilterState) Set(patch models.FilterPatch) {
	if patch.Kind != nil {
		f.current.Kind = *patch.Kind
	}
	if patch.CategoryID != nil {
		f.current.CategoryID = *patch.CategoryID
	}
	if patch.PriceMin != nil {
		f.current.PriceMin = patch.PriceMin
	}
	if patch.PriceMax != nil {
		f.current.PriceMax = patch.PriceMax
	}
	if patch.RadiusMiles != nil {
		f.current.RadiusMiles = patch.RadiusMiles
	}
	if patch.MinRating != nil {
		f.current.MinRating = patch.MinRating
	}
	if patch.Sort != nil {
		f.current.Sort = *patch.Sort
	}
	if patch.VerifiedOnly != nil {
		f.current.VerifiedOnly = *patch.VerifiedOnly
	}
	if patch.WithImages != nil {
		f.current.WithImages = *patch.WithImages
	}
	if patch.ClearPriceRange {
		f.current.PriceMin = nil
		f.current.PriceMax = nil
	}
	if patch.ClearRadius {
		f.current.RadiusMiles = nil
	}
	if patch.ClearMinRating {
		f.current.MinRating = nil
	}
}

// Reset restores the criteria to the session's initial scope.
func (f *FilterState) Reset() {
	f.current = f.initial
}

// ActiveCount returns how many non-default criteria are currently set, using
// default-aware rules per field.
func (f *FilterState) ActiveCount() int {
	count := 0
	if f.current.Kind != f.initial.Kind {
		count++
	}
	if f.current.CategoryID != f.initial.CategoryID {
		count++
	}
	if !floatPtrEqual(f.current.PriceMin, f.initial.PriceMin) || !floatPtrEqual(f.current.PriceMax, f.initial.PriceMax) {
		count++
	}
	// The distance filter counts only when it differs from the system default.
	if f.current.RadiusMiles != nil && *f.current.RadiusMiles != f.defaultRadius {
		count++
	}
	if !floatPtrEqual(f.current.MinRating, f.initial.MinRating) {
		count++
	}
	if f.current.Sort != models.SortRelevance {
		count++
	}
	if f.current.VerifiedOnly != f.initial.VerifiedOnly {
		count++
	}
	if f.current.WithImages != f.initial.WithImages {
		count++
	}
	return count
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
