// internal/service/transport/locator.go

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/transport"
)

// DefaultSearchRadius is the station search radius in meters when the
// caller does not override it.
const DefaultSearchRadius = 500

// overpassElement is one node from an Overpass response. Tag presence is
// never guaranteed, so every field is read permissively.
type overpassElement struct {
	ID   int64             `json:"id"`
	Type string            `json:"type"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// overpassResponse is the envelope returned by the Overpass interpreter.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// OverpassLocatorConfig contains configuration for the Overpass station locator
type OverpassLocatorConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

// OverpassLocator finds transit stations via the OpenStreetMap Overpass API.
type OverpassLocator struct {
	httpClient *http.Client
	config     OverpassLocatorConfig
}

// NewOverpassLocator creates a new Overpass-backed station locator
func NewOverpassLocator(config OverpassLocatorConfig) *OverpassLocator {
	if config.BaseURL == "" {
		config.BaseURL = "https://overpass-api.de/api/interpreter"
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 15 * time.Second
	}

	return &OverpassLocator{
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config: config,
	}
}

// FindNearbyStations returns up to 10 metro, RER, and tram stations within
// radiusMeters of point, nearest first. Any failure of the Overpass query is
// logged and yields an empty list; this method never fails the analysis.
func (l *OverpassLocator) FindNearbyStations(ctx context.Context, point geo.Coordinate, radiusMeters int) []transport.Station {
	if radiusMeters <= 0 {
		radiusMeters = DefaultSearchRadius
	}

	query := buildStationQuery(point, radiusMeters)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.config.BaseURL, strings.NewReader(query))
	if err != nil {
		zap.L().Warn("overpass: failed to create request", zap.Error(err))
		return nil
	}
	if l.config.UserAgent != "" {
		req.Header.Set("User-Agent", l.config.UserAgent)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		zap.L().Warn("overpass: request failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("overpass: unexpected status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var overpassResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		zap.L().Warn("overpass: failed to decode response", zap.Error(err))
		return nil
	}

	stations := make([]transport.Station, 0, len(overpassResp.Elements))
	for _, element := range overpassResp.Elements {
		if element.Lat == 0 && element.Lon == 0 {
			continue
		}

		distance := DistanceMeters(point, geo.Coordinate{
			Latitude:  element.Lat,
			Longitude: element.Lon,
		})

		name := element.Tags["name"]
		if name == "" {
			name = "Unknown Station"
		}

		stations = append(stations, transport.Station{
			Name:            name,
			Lines:           extractLines(element.Tags),
			DistanceMeters:  int(math.Round(distance)),
			WalkTimeMinutes: WalkMinutes(distance),
			TransportType:   classifyStation(element.Tags),
		})
	}

	stations = dedupeStations(stations)
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].DistanceMeters < stations[j].DistanceMeters
	})

	if len(stations) > 10 {
		stations = stations[:10]
	}

	return stations
}

// buildStationQuery assembles the Overpass QL query for subway and
// light-rail stations plus generic stop positions around a point.
func buildStationQuery(point geo.Coordinate, radiusMeters int) string {
	return fmt.Sprintf(`
	[out:json];
	(
	  node["railway"="station"]["station"="subway"](around:%d,%f,%f);
	  node["railway"="station"]["station"="light_rail"](around:%d,%f,%f);
	  node["railway"="stop"]["public_transport"="stop_position"](around:%d,%f,%f);
	);
	out body;
	`,
		radiusMeters, point.Latitude, point.Longitude,
		radiusMeters, point.Latitude, point.Longitude,
		radiusMeters, point.Latitude, point.Longitude,
	)
}

// extractLines pulls line identifiers out of station tags. OSM data uses
// several conventions: a single "ref" or "line" tag, or a ";"-delimited
// "lines" tag. The result is deduplicated.
func extractLines(tags map[string]string) []string {
	var raw []string

	if ref := tags["ref"]; ref != "" {
		raw = append(raw, ref)
	}
	if line := tags["line"]; line != "" {
		raw = append(raw, line)
	}
	if lines := tags["lines"]; lines != "" {
		raw = append(raw, strings.Split(lines, ";")...)
	}

	seen := make(map[string]bool, len(raw))
	result := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		result = append(result, line)
	}

	return result
}

// classifyStation determines the transport type from station tags.
func classifyStation(tags map[string]string) transport.TransportType {
	switch {
	case tags["station"] == "subway":
		return transport.TypeMetro
	case tags["station"] == "light_rail":
		return transport.TypeTram
	case strings.Contains(tags["name"], "RER"):
		return transport.TypeRER
	default:
		return transport.TypeMetro
	}
}

// dedupeStations collapses stations sharing a name, keeping the nearest
// occurrence. Overpass frequently returns one node per platform.
func dedupeStations(stations []transport.Station) []transport.Station {
	nearest := make(map[string]transport.Station, len(stations))
	order := make([]string, 0, len(stations))

	for _, station := range stations {
		existing, ok := nearest[station.Name]
		if !ok {
			order = append(order, station.Name)
			nearest[station.Name] = station
			continue
		}
		if station.DistanceMeters < existing.DistanceMeters {
			nearest[station.Name] = station
		}
	}

	result := make([]transport.Station, 0, len(nearest))
	for _, name := range order {
		result = append(result, nearest[name])
	}

	return result
}
