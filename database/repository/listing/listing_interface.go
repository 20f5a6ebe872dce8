package listingRepo

import (
	"context"

	"nearbuy/models"
)

// Page is one fetched page of listings plus the continuation token for the
// next page. NextToken is opaque to callers.
type Page struct {
	Rows      []models.Listing
	NextToken string
}

// ListingRepository defines data access for marketplace listings.
type ListingRepository interface {
	// FetchPage performs a filtered, paginated lookup. When location is
	// non-nil, rows carry a computed distanceMiles; rows without known
	// coordinates omit it. The passed context must be honored so a
	// superseded request can be torn down rather than merely ignored.
	FetchPage(ctx context.Context, criteria models.FilterCriteria, search string, location *models.Coordinates, pageToken string, pageSize int) (*Page, error)

	// Suggest returns search suggestions for a text prefix.
	Suggest(ctx context.Context, prefix string, kind models.ListingKind, limit int) ([]models.Suggestion, error)

	// Create inserts a new listing document.
	Create(ctx context.Context, listing *models.Listing) error
	// GetByID retrieves a listing by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	// Delete removes a listing document by its ID.
	Delete(ctx context.Context, id string) error
}
