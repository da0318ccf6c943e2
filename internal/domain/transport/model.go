// internal/domain/transport/model.go

package transport

import (
	"context"

	"chezvous/internal/domain/geo"
)

// TransportType classifies a station by the kind of service it carries.
type TransportType string

const (
	TypeMetro TransportType = "Metro"
	TypeTram  TransportType = "Tram"
	TypeRER   TransportType = "RER"
)

// Station is a public-transport stop near a query point. Stations are
// built fresh per query from external data and never mutated afterwards.
type Station struct {
	Name            string        `json:"name"`
	Lines           []string      `json:"lines"`
	DistanceMeters  int           `json:"distance_meters"`
	WalkTimeMinutes int           `json:"walk_time_minutes"`
	TransportType   TransportType `json:"transport_type"`
}

// Landmark is a fixed, named point of interest.
type Landmark struct {
	Name       string         `json:"name"`
	Coordinate geo.Coordinate `json:"coordinate"`
}

// LandmarkEstimate is a heuristic travel-time estimate from a query point
// to a landmark.
type LandmarkEstimate struct {
	Landmark         string `json:"landmark"`
	Time             string `json:"time"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// ConnectivityReport summarizes public-transport accessibility for a point.
type ConnectivityReport struct {
	NearbyStations      []Station          `json:"nearby_stations"`
	LandmarkTravelTimes []LandmarkEstimate `json:"landmark_travel_times"`
	ConnectivityScore   int                `json:"connectivity_score"`
	HasLateNightService bool               `json:"has_late_night_service"`
}

// StationLocator finds transit stations around a point.
type StationLocator interface {
	// FindNearbyStations returns up to 10 stations within radiusMeters of
	// point, nearest first. Any failure of the external data source yields
	// an empty list, never an error.
	FindNearbyStations(ctx context.Context, point geo.Coordinate, radiusMeters int) []Station
}

// Analyzer produces connectivity reports.
type Analyzer interface {
	// AnalyzeConnectivity runs the full station/landmark/score pipeline for
	// a point. It fails only on an invalid coordinate.
	AnalyzeConnectivity(ctx context.Context, point geo.Coordinate) (*ConnectivityReport, error)
}
