// File: utils/geo.go
package utils

import "math"

const (
	earthRadiusKm = 6371.0
	milesPerKm    = 0.621371
	metersPerMile = 1609.344
)

// HaversineMiles computes the great-circle distance between two points in miles.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	rLat1 := lat1 * math.Pi / 180.0
	rLat2 := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * milesPerKm
}

// MetersToMiles converts a distance in meters to miles.
func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}

// MilesToMeters converts a distance in miles to meters.
func MilesToMeters(miles float64) float64 {
	return miles * metersPerMile
}
