package listingRepo

import (
	"context"
	"fmt"
	"time"

	"nearbuy/database"
	"nearbuy/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepo is the MongoDB implementation of ListingRepository.
type MongoListingRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

// NewMongoListingRepo returns a repository bound to the listings collection.
// The redis client fronts suggestion lookups; pass nil to disable caching.
func NewMongoListingRepo(cache *redis.Client) *MongoListingRepo {
	coll := database.MongoClient.Database("nearbuy").Collection("listings")
	repo := &MongoListingRepo{coll: coll, cache: cache}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("listing repo: %v", err))
	}
	return repo
}

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoListingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new listing document.
func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetByID retrieves a listing by its unique ID.
func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		return nil, fmt.Errorf("listing with id %s not found: %w", id, err)
	}
	return &listing, nil
}

// Delete removes a listing document by its ID.
func (r *MongoListingRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("listing with id %s not found", id)
	}
	return nil
}
