package models

// Suggestion is a single search-suggestion entry.
type Suggestion struct {
	Text     string      `bson:"text" json:"text"`
	Kind     ListingKind `bson:"kind,omitempty" json:"kind,omitempty"`
	Category string      `bson:"category,omitempty" json:"category,omitempty"`
}
