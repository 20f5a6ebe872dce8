package models

// MarkerTier records which distance bucket a map marker belongs to.
type MarkerTier string

const (
	TierPrimary MarkerTier = "primary"
	TierNearby  MarkerTier = "nearby"
)

// MapMarker is a presentation projection of a Listing for map rendering.
// It is derived from bucket membership, never stored independently.
type MapMarker struct {
	ListingID     string     `json:"listingId"`
	Title         string     `json:"title"`
	Tier          MarkerTier `json:"tier"`
	LocationGeo   GeoPoint   `json:"locationGeo"`
	Price         float64    `json:"price"`
	Rating        float64    `json:"rating,omitempty"`
	DistanceMiles *float64   `json:"distanceMiles,omitempty"`
}

// FeedEntryType discriminates rows in the flat list/grid feed.
type FeedEntryType string

const (
	EntryListing         FeedEntryType = "listing"
	EntrySectionBoundary FeedEntryType = "sectionBoundary"
)

// FeedEntry is one row of the flat feed: either a listing or the boundary
// separating in-radius results from nearby expansion results.
type FeedEntry struct {
	Type    FeedEntryType `json:"type"`
	Listing *Listing      `json:"listing,omitempty"`
}

// FeedView is the presentation-ready snapshot of a feed session. List, grid
// and map consumers all read from the same view.
type FeedView struct {
	PrimaryListings []Listing    `json:"primaryListings"`
	NearbyListings  []Listing    `json:"nearbyListings"`
	Entries         []FeedEntry  `json:"entries"`
	Markers         []MapMarker  `json:"markers"`
	Suggestions     []Suggestion `json:"suggestions"`
	ExpansionActive bool         `json:"expansionActive"`
	HasMore         bool         `json:"hasMore"`
	LoadingState    string       `json:"loadingState"`
	ActiveFilters   int          `json:"activeFilters"`
	CarouselVisible bool         `json:"carouselVisible"`
	Error           string       `json:"error,omitempty"`
}
