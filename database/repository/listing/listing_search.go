package listingRepo

import (
	"context"
	"fmt"

	"nearbuy/models"
	"nearbuy/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FetchPage performs a filtered, paginated lookup and computes distanceMiles
// for rows with known coordinates when a searcher location is supplied.
func (r *MongoListingRepo) FetchPage(ctx context.Context, criteria models.FilterCriteria, search string, location *models.Coordinates, pageToken string, pageSize int) (*Page, error) {
	offset, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, err
	}

	var pipeline mongo.Pipeline

	// $geoNear must come first; it both sorts by and computes distance.
	// Only the distance sort uses it — other sort modes keep rows without
	// coordinates in the result set.
	geoSorted := criteria.Sort == models.SortDistance && location != nil
	if geoSorted {
		pipeline = append(pipeline, bson.D{
			{Key: "$geoNear", Value: bson.D{
				{Key: "near", Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: []float64{location.Lon, location.Lat}},
				}},
				{Key: "distanceField", Value: "distanceMeters"},
				{Key: "spherical", Value: true},
			}},
		})
	}

	pipeline = append(pipeline, bson.D{{Key: "$match", Value: buildMatchFilter(criteria, search)}})

	if !geoSorted {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sortStage(criteria.Sort)}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$skip", Value: int64(offset)}},
		bson.D{{Key: "$limit", Value: int64(pageSize)}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("listing page query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		models.Listing `bson:",inline"`
		DistanceMeters *float64 `bson:"distanceMeters,omitempty"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		l := row.Listing
		switch {
		case row.DistanceMeters != nil:
			mi := utils.MetersToMiles(*row.DistanceMeters)
			l.DistanceMiles = &mi
		case location != nil && len(l.LocationGeo.Coordinates) == 2:
			mi := utils.HaversineMiles(location.Lat, location.Lon, l.LocationGeo.Coordinates[1], l.LocationGeo.Coordinates[0])
			l.DistanceMiles = &mi
		}
		listings = append(listings, l)
	}

	return &Page{
		Rows:      listings,
		NextToken: EncodePageToken(offset + len(listings)),
	}, nil
}

// buildMatchFilter translates FilterCriteria plus free text into a $match document.
func buildMatchFilter(criteria models.FilterCriteria, search string) bson.M {
	match := bson.M{}

	if criteria.Kind != "" && criteria.Kind != models.KindAll {
		match["kind"] = criteria.Kind
	}
	if criteria.CategoryID != "" {
		match["category"] = criteria.CategoryID
	}

	price := bson.M{}
	if criteria.PriceMin != nil {
		price["$gte"] = *criteria.PriceMin
	}
	if criteria.PriceMax != nil {
		price["$lte"] = *criteria.PriceMax
	}
	if len(price) > 0 {
		match["price"] = price
	}

	if criteria.MinRating != nil {
		match["rating"] = bson.M{"$gte": *criteria.MinRating}
	}
	if criteria.VerifiedOnly {
		match["verified"] = true
	}
	if criteria.WithImages {
		match["image"] = bson.M{"$exists": true, "$ne": ""}
	}
	if search != "" {
		match["title"] = bson.M{"$regex": search, "$options": "i"}
	}
	return match
}

func sortStage(mode models.SortMode) bson.D {
	switch mode {
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "id", Value: 1}}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "id", Value: 1}}
	case models.SortRating:
		return bson.D{{Key: "rating", Value: -1}, {Key: "id", Value: 1}}
	case models.SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}
	default:
		// Relevance: verified first, then rating. The id tiebreak keeps
		// pagination stable across pages.
		return bson.D{{Key: "verified", Value: -1}, {Key: "rating", Value: -1}, {Key: "id", Value: 1}}
	}
}
