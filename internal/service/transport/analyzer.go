// internal/service/transport/analyzer.go

package transport

import (
	"context"
	"fmt"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/transport"
)

// AnalyzerConfig contains configuration for the connectivity analyzer
type AnalyzerConfig struct {
	SearchRadius   int
	Landmarks      []transport.Landmark
	LateNightLines []string
}

// ConnectivityAnalyzer implements the transport.Analyzer interface by
// composing the station locator, the landmark estimator, and the scorer.
type ConnectivityAnalyzer struct {
	locator transport.StationLocator
	config  AnalyzerConfig
}

// NewConnectivityAnalyzer creates a new connectivity analyzer. Zero-value
// config fields fall back to the package defaults.
func NewConnectivityAnalyzer(locator transport.StationLocator, config AnalyzerConfig) *ConnectivityAnalyzer {
	if config.SearchRadius <= 0 {
		config.SearchRadius = DefaultSearchRadius
	}
	if config.Landmarks == nil {
		config.Landmarks = DefaultLandmarks()
	}
	if config.LateNightLines == nil {
		config.LateNightLines = DefaultLateNightLines()
	}

	return &ConnectivityAnalyzer{
		locator: locator,
		config:  config,
	}
}

// AnalyzeConnectivity runs the full transport analysis for a point. The
// coordinate is validated here so NaN never propagates into the geometry;
// everything downstream is total.
func (a *ConnectivityAnalyzer) AnalyzeConnectivity(ctx context.Context, point geo.Coordinate) (*transport.ConnectivityReport, error) {
	if !point.Valid() {
		return nil, fmt.Errorf("invalid coordinate (%v, %v)", point.Latitude, point.Longitude)
	}

	stations := a.locator.FindNearbyStations(ctx, point, a.config.SearchRadius)
	estimates := EstimateLandmarkTimes(point, a.config.Landmarks)

	return &transport.ConnectivityReport{
		NearbyStations:      stations,
		LandmarkTravelTimes: estimates,
		ConnectivityScore:   ConnectivityScore(stations, estimates),
		HasLateNightService: HasLateNightService(stations, a.config.LateNightLines),
	}, nil
}
