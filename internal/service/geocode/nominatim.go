// internal/service/geocode/nominatim.go

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"chezvous/internal/domain/geo"
)

// nominatimResult is one entry from the Nominatim search response.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Postcode      string `json:"postcode"`
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		CityDistrict  string `json:"city_district"`
	} `json:"address"`
}

// NominatimConfig contains configuration for the Nominatim geocoder
type NominatimConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	RatePerSecond  float64
}

// NominatimGeocoder resolves Paris addresses through the public Nominatim
// search endpoint. Requests are rate limited to honor the usage policy
// (one request per second by default).
type NominatimGeocoder struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	config     NominatimConfig
}

// NewNominatimGeocoder creates a new Nominatim geocoder
func NewNominatimGeocoder(config NominatimConfig) *NominatimGeocoder {
	if config.BaseURL == "" {
		config.BaseURL = "https://nominatim.openstreetmap.org/search"
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 10 * time.Second
	}
	if config.RatePerSecond <= 0 {
		config.RatePerSecond = 1
	}

	return &NominatimGeocoder{
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSecond), 1),
		config:  config,
	}
}

// Geocode resolves a street address to a Paris location. The query is
// suffixed with "Paris, France" so results stay inside the city. Returns
// geo.ErrAddressNotFound when Nominatim has no match.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*geo.Address, error) {
	if strings.TrimSpace(address) == "" {
		return nil, geo.ErrAddressNotFound
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limiter")
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s, Paris, France", address))
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: create request")
	}
	if g.config.UserAgent != "" {
		req.Header.Set("User-Agent", g.config.UserAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, eris.Wrap(err, "geocode: decode response")
	}

	if len(results) == 0 {
		return nil, geo.ErrAddressNotFound
	}

	result := results[0]

	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: parse latitude")
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: parse longitude")
	}

	neighborhood := result.Address.Suburb
	if neighborhood == "" {
		neighborhood = result.Address.Neighbourhood
	}

	resolved := &geo.Address{
		Coordinate:     geo.Coordinate{Latitude: lat, Longitude: lon},
		Postcode:       result.Address.Postcode,
		Arrondissement: ExtractArrondissement(result.Address.Postcode),
		FullAddress:    result.DisplayName,
		Neighborhood:   neighborhood,
		District:       result.Address.CityDistrict,
	}

	zap.L().Debug("geocoded address",
		zap.String("query", address),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.String("postcode", resolved.Postcode),
	)

	return resolved, nil
}

// ExtractArrondissement derives the arrondissement number from a Paris
// postcode: 75001 -> 1, 75020 -> 20. Returns nil for non-Paris or malformed
// postcodes.
func ExtractArrondissement(postcode string) *int {
	if len(postcode) != 5 || !strings.HasPrefix(postcode, "75") {
		return nil
	}

	num, err := strconv.Atoi(postcode[3:])
	if err != nil || num < 1 || num > 20 {
		return nil
	}

	return &num
}
