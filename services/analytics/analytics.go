package analytics

import (
	"context"
	"time"

	"nearbuy/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisSink publishes search analytics events onto a Redis stream. Events
// are fire-and-forget: failures are logged and swallowed, never propagated.
type RedisSink struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisSink(client *redis.Client, log *zap.Logger) *RedisSink {
	return &RedisSink{client: client, log: log}
}

// RecordSuggestionSelection emits one suggestion-selection event.
func (s *RedisSink) RecordSuggestionSelection(ctx context.Context, query, userID, viewerRole string) {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: utils.AnalyticsStreamKey,
		Values: map[string]interface{}{
			"event":      "suggestion_selected",
			"query":      query,
			"userId":     userID,
			"viewerRole": viewerRole,
			"at":         time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		s.log.Debug("analytics event dropped", zap.String("event", "suggestion_selected"), zap.Error(err))
	}
}
