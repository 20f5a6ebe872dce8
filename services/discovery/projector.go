package discovery

import (
	"strings"

	"nearbuy/models"
)

// projectFeed derives the flat list/grid feed from the two buckets. When
// expansion is active the nearby bucket follows primary behind a section
// boundary row; otherwise primary stands alone.
func projectFeed(primary, nearby []models.Listing, expansionActive bool) []models.FeedEntry {
	entries := make([]models.FeedEntry, 0, len(primary)+len(nearby)+1)
	for i := range primary {
		entries = append(entries, models.FeedEntry{Type: models.EntryListing, Listing: &primary[i]})
	}
	if expansionActive {
		entries = append(entries, models.FeedEntry{Type: models.EntrySectionBoundary})
		for i := range nearby {
			entries = append(entries, models.FeedEntry{Type: models.EntryListing, Listing: &nearby[i]})
		}
	}
	return entries
}

// projectMarkers derives tier-tagged map markers from the buckets. Every
// primary listing maps to the primary tier and every nearby listing to the
// nearby tier; no listing appears in both.
func projectMarkers(primary, nearby []models.Listing) []models.MapMarker {
	markers := make([]models.MapMarker, 0, len(primary)+len(nearby))
	for _, l := range primary {
		markers = append(markers, markerFor(l, models.TierPrimary))
	}
	for _, l := range nearby {
		markers = append(markers, markerFor(l, models.TierNearby))
	}
	return markers
}

func markerFor(l models.Listing, tier models.MarkerTier) models.MapMarker {
	return models.MapMarker{
		ListingID:     l.ID,
		Title:         l.Title,
		Tier:          tier,
		LocationGeo:   l.LocationGeo,
		Price:         l.Price,
		Rating:        l.Rating,
		DistanceMiles: l.DistanceMiles,
	}
}

// carouselVisible decides whether the promotional carousel may be shown: it
// is hidden whenever a non-default filter or a non-empty search query is
// active. Pure function of filter and search state, independent of fetch
// status.
func carouselVisible(activeFilters int, query string) bool {
	return activeFilters == 0 && strings.TrimSpace(query) == ""
}
