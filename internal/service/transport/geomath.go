// internal/service/transport/geomath.go

package transport

import (
	"math"

	"chezvous/internal/domain/geo"
)

const (
	// earthRadiusMeters is the mean Earth radius used by the Haversine formula.
	earthRadiusMeters = 6371000.0

	// walkPaceMetersPerMinute corresponds to an average pace of 5 km/h.
	walkPaceMetersPerMinute = 83.3
)

// DistanceMeters returns the great-circle distance between two coordinates
// in meters, using the Haversine formula. Non-finite inputs propagate as NaN.
func DistanceMeters(a, b geo.Coordinate) float64 {
	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	deltaPhi := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// WalkMinutes converts a distance to walking minutes at 5 km/h. The result
// is never below one minute.
func WalkMinutes(distanceMeters float64) int {
	minutes := int(math.Round(distanceMeters / walkPaceMetersPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
