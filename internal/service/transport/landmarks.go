// internal/service/transport/landmarks.go

package transport

import (
	"fmt"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/transport"
)

const (
	// walkCutoffMeters is the distance below which a landmark is reached on
	// foot rather than by metro.
	walkCutoffMeters = 1500

	// metroAccessMinutes is the fixed access/egress penalty of a metro trip.
	metroAccessMinutes = 10

	// metroMetersPerMinute is the heuristic in-tunnel travel speed.
	metroMetersPerMinute = 600
)

// DefaultLandmarks returns the reference set of major Paris landmarks used
// for travel-time estimates.
func DefaultLandmarks() []transport.Landmark {
	return []transport.Landmark{
		{Name: "Eiffel Tower", Coordinate: geo.Coordinate{Latitude: 48.8584, Longitude: 2.2945}},
		{Name: "Louvre", Coordinate: geo.Coordinate{Latitude: 48.8606, Longitude: 2.3376}},
		{Name: "Sacré-Cœur", Coordinate: geo.Coordinate{Latitude: 48.8867, Longitude: 2.3431}},
		{Name: "Arc de Triomphe", Coordinate: geo.Coordinate{Latitude: 48.8738, Longitude: 2.2950}},
		{Name: "Notre-Dame", Coordinate: geo.Coordinate{Latitude: 48.8530, Longitude: 2.3499}},
		{Name: "Champs-Élysées", Coordinate: geo.Coordinate{Latitude: 48.8698, Longitude: 2.3078}},
	}
}

// DefaultLateNightLines returns the metro lines known to run past midnight
// on weekends.
func DefaultLateNightLines() []string {
	return []string{"1", "2", "4", "6", "14"}
}

// EstimateLandmarkTimes produces one travel-time estimate per landmark, in
// the order the landmark set defines. Points within walking range get a walk
// estimate; everything else gets the metro heuristic: a fixed access penalty
// plus one minute per 600 m.
func EstimateLandmarkTimes(point geo.Coordinate, landmarks []transport.Landmark) []transport.LandmarkEstimate {
	estimates := make([]transport.LandmarkEstimate, 0, len(landmarks))

	for _, landmark := range landmarks {
		distance := DistanceMeters(point, landmark.Coordinate)

		if distance < walkCutoffMeters {
			minutes := WalkMinutes(distance)
			estimates = append(estimates, transport.LandmarkEstimate{
				Landmark:         landmark.Name,
				Time:             fmt.Sprintf("%d min walk", minutes),
				EstimatedMinutes: minutes,
			})
			continue
		}

		minutes := metroAccessMinutes + int(distance/metroMetersPerMinute)
		estimates = append(estimates, transport.LandmarkEstimate{
			Landmark:         landmark.Name,
			Time:             fmt.Sprintf("%d min metro", minutes),
			EstimatedMinutes: minutes,
		})
	}

	return estimates
}
