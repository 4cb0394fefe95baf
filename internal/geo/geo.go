// Package geo holds the distance and ETA primitives the dispatch engine is
// built on. Everything here is pure: decimal-degree inputs, no validation,
// no side effects.
package geo

import "math"

const (
	earthRadiusKm = 6371.0

	// AverageSpeedKmh models city traffic for the ETA estimate.
	AverageSpeedKmh = 25.0
)

// DistanceKm returns the great-circle (haversine) distance in kilometers
// between two latitude/longitude points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ETAMinutes converts a distance to whole minutes of travel at the assumed
// average city speed, rounding up. Zero distance is zero minutes.
func ETAMinutes(distanceKm float64) int {
	return int(math.Ceil(distanceKm / AverageSpeedKmh * 60))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
