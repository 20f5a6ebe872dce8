// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"nearbuy/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (suggestion cache, feed lookups).
	CacheClient *redis.Client
	// AnalyticsClient is the dedicated client for the analytics event stream.
	AnalyticsClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAnalyticsCache initializes the Redis client for the analytics stream.
func InitAnalyticsCache() {
	AnalyticsClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAnalyticsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AnalyticsClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Analytics): %v", err)
	}
}

// GetAnalyticsClient returns the Redis client for analytics events.
func GetAnalyticsClient() *redis.Client {
	if AnalyticsClient == nil {
		InitAnalyticsCache()
	}
	return AnalyticsClient
}

// InitRedis initializes all Redis clients used by the application.
func InitRedis() {
	InitCache()
	InitAnalyticsCache()
}
