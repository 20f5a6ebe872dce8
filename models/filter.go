package models

// SortMode selects the result ordering for a feed fetch.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortRating    SortMode = "rating"
	SortDistance  SortMode = "distance"
	SortNewest    SortMode = "newest"
)

// FilterCriteria holds the current filter set for a feed session.
// Radius and rating absent (nil) mean "unconstrained", never zero.
type FilterCriteria struct {
	Kind        ListingKind `json:"kind"`
	CategoryID  string      `json:"categoryId,omitempty"`
	PriceMin    *float64    `json:"priceMin,omitempty"`
	PriceMax    *float64    `json:"priceMax,omitempty"`
	RadiusMiles *float64    `json:"radiusMiles,omitempty"`
	MinRating   *float64    `json:"minRating,omitempty"`
	Sort        SortMode    `json:"sort"`

	// Boolean toggles.
	VerifiedOnly bool `json:"verifiedOnly,omitempty"`
	WithImages   bool `json:"withImages,omitempty"`
}

// FilterPatch is a partial update merged into FilterCriteria. Nil fields are
// left untouched; a patch never replaces criteria wholesale.
type FilterPatch struct {
	Kind        *ListingKind `json:"kind,omitempty"`
	CategoryID  *string      `json:"categoryId,omitempty"`
	PriceMin    *float64     `json:"priceMin,omitempty"`
	PriceMax    *float64     `json:"priceMax,omitempty"`
	RadiusMiles *float64     `json:"radiusMiles,omitempty"`
	MinRating   *float64     `json:"minRating,omitempty"`
	Sort        *SortMode    `json:"sort,omitempty"`

	VerifiedOnly *bool `json:"verifiedOnly,omitempty"`
	WithImages   *bool `json:"withImages,omitempty"`

	// ClearPriceRange, ClearRadius and ClearMinRating drop the respective
	// optional constraints back to "unconstrained".
	ClearPriceRange bool `json:"clearPriceRange,omitempty"`
	ClearRadius     bool `json:"clearRadius,omitempty"`
	ClearMinRating  bool `json:"clearMinRating,omitempty"`
}
