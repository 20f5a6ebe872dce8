package listingRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"nearbuy/models"
	"nearbuy/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Suggest returns distinct listing titles matching a text prefix, cached in
// Redis for a short TTL. Cache failures fall through to Mongo.
func (r *MongoListingRepo) Suggest(ctx context.Context, prefix string, kind models.ListingKind, limit int) ([]models.Suggestion, error) {
	cacheKey := fmt.Sprintf("%s%s:%s", utils.SuggestionCachePrefix, kind, strings.ToLower(prefix))

	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.Suggestion
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	filter := bson.M{
		"title": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix), "$options": "i"},
	}
	if kind != "" && kind != models.KindAll {
		filter["kind"] = kind
	}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "kind": 1, "category": 1}).
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(limit * 3))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("suggestion query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Listing
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	seen := make(map[string]bool, len(docs))
	suggestions := make([]models.Suggestion, 0, limit)
	for _, doc := range docs {
		key := strings.ToLower(doc.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, models.Suggestion{
			Text:     doc.Title,
			Kind:     doc.Kind,
			Category: doc.Category,
		})
		if len(suggestions) == limit {
			break
		}
	}

	if r.cache != nil {
		if bytes, err := json.Marshal(suggestions); err == nil {
			if err := r.cache.Set(ctx, cacheKey, bytes, utils.SuggestionCacheTTL).Err(); err != nil {
				zap.L().Debug("suggestion cache write failed", zap.Error(err))
			}
		}
	}

	return suggestions, nil
}
