// File: utils/constants.go
package utils

import "time"

// SuggestionCachePrefix is the prefix used for Redis suggestion cache keys.
const SuggestionCachePrefix = "suggest:"

// SuggestionCacheTTL is the time-to-live for suggestion cache entries.
const SuggestionCacheTTL = 5 * time.Minute

// AnalyticsStreamKey is the Redis stream that receives search analytics events.
const AnalyticsStreamKey = "analytics:search"
