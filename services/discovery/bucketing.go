package discovery

import "nearbuy/models"

// distanceSplitActive reports whether distance-based bucketing applies at
// all: the radius must be set and the searcher's coordinates known. Checked
// explicitly, never inferred from bucket sizes.
func distanceSplitActive(c models.FilterCriteria, location *models.Coordinates) bool {
	return c.RadiusMiles != nil && location != nil
}

// splitPage partitions one fetched page by distance. A listing with
// distanceMiles <= radius goes to primary; within (radius, ceiling] to
// nearby; beyond the ceiling it is dropped. A listing without distanceMiles
// always goes to primary: missing geodata is not evidence of irrelevance.
func splitPage(rows []models.Listing, radiusMiles, ceilingMiles float64) (primary, nearby []models.Listing) {
	for _, row := range rows {
		switch {
		case row.DistanceMiles == nil:
			primary = append(primary, row)
		case *row.DistanceMiles <= radiusMiles:
			primary = append(primary, row)
		case *row.DistanceMiles <= ceilingMiles:
			nearby = append(nearby, row)
		}
	}
	return primary, nearby
}

// sparseExpansion is the sparsity rule: expansion turns on when in-radius
// results are thin but nearby supplements exist. Evaluated only on a
// reset-fetch; load-more pages for the same signature keep the latched value
// so the section boundary does not flicker as pages arrive.
func sparseExpansion(primaryCount, nearbyCount, threshold int) bool {
	return primaryCount < threshold && nearbyCount > 0
}
