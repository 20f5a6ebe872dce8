// File: middleware/geo_location.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"nearbuy/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeoContextKey is the gin context key holding the client's *models.Coordinates.
const GeoContextKey = "clientCoordinates"

// geoResult caches a lookup outcome; ok=false means the IP could not be
// located, which is a valid non-error state.
type geoResult struct {
	coords models.Coordinates
	ok     bool
}

type ipGeoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
}

// geoCache caches geolocation results keyed by IP address.
var geoCache = make(map[string]geoResult)
var geoCacheMu sync.RWMutex

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	if parsedIP.IsLoopback() {
		return true
	}
	privateIPBlocks := []*net.IPNet{
		{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
		{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},
		{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)},
	}
	for _, block := range privateIPBlocks {
		if block.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// lookupGeolocation resolves an IP to coordinates via ipapi.co, caching the
// outcome. Private IPs and lookup failures resolve to "no location".
func lookupGeolocation(ip string, logger *zap.Logger) geoResult {
	geoCacheMu.RLock()
	if cached, exists := geoCache[ip]; exists {
		geoCacheMu.RUnlock()
		return cached
	}
	geoCacheMu.RUnlock()

	result := geoResult{}
	defer func() {
		geoCacheMu.Lock()
		geoCache[ip] = result
		geoCacheMu.Unlock()
	}()

	if ip == "" || isPrivateIP(ip) {
		return result
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		logger.Warn("Failed to query external geolocation API", zap.String("ip", ip), zap.Error(err))
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("External geolocation API returned non-OK status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return result
	}

	var payload ipGeoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error {
		logger.Warn("Failed to decode geolocation response", zap.String("ip", ip), zap.Error(err))
		return result
	}

	result = geoResult{coords: models.Coordinates{Lat: payload.Latitude, Lon: payload.Longitude}, ok: true}
	return result
}

// GeolocationMiddleware resolves the client's approximate coordinates from
// its IP and stores them in the request context. A request without a
// resolvable location proceeds normally; distance filtering is simply
// inapplicable for it.
func GeolocationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		result := lookupGeolocation(getClientIP(c), logger)
		if result.ok {
			coords := result.coords
			c.Set(GeoContextKey, &coords)
		}
		c.Next()
	}
}

// CoordinatesFromContext returns the coordinates the middleware resolved, or
// nil when the client's location is unknown.
func CoordinatesFromContext(c *gin.Context) *models.Coordinates {
	val, exists := c.Get(GeoContextKey)
	if !exists {
		return nil
	}
	coords, ok := val.(*models.Coordinates)
	if !ok {
		return nil
	}
	return coords
}
