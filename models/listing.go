package models

import "time"

// ListingKind distinguishes the three marketplace verticals.
type ListingKind string

const (
	KindAll     ListingKind = "all"
	KindJob     ListingKind = "job"
	KindService ListingKind = "service"
	KindProduct ListingKind = "product"
)

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// Coordinates is a plain lat/lon pair for a searcher's position.
// A nil *Coordinates means the searcher's location is unknown; that is a
// valid state, not an error.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Listing is a marketplace item returned by a search. Instances are transient
// per fetch; there is no client-side identity across fetches beyond ID.
type Listing struct {
	ID          string      `bson:"id" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Kind        ListingKind `bson:"kind" json:"kind"`
	Category    string      `bson:"category" json:"category"`
	Price       float64     `bson:"price" json:"price"`
	Currency    string      `bson:"currency,omitempty" json:"currency,omitempty"`
	Rating      float64     `bson:"rating,omitempty" json:"rating,omitempty"`
	Verified    bool        `bson:"verified,omitempty" json:"verified,omitempty"`
	Image       string      `bson:"image,omitempty" json:"image,omitempty"`
	LocationGeo GeoPoint    `bson:"locationGeo" json:"locationGeo"`
	CreatedAt   time.Time   `bson:"createdAt,omitempty" json:"createdAt,omitempty"`

	// DistanceMiles is computed by the query executor relative to the
	// searcher's location. Nil when either party lacks coordinates.
	DistanceMiles *float64 `bson:"distanceMiles,omitempty" json:"distanceMiles,omitempty"`
}
