package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chezvous/internal/domain/geo"
)

func TestExtractArrondissement(t *testing.T) {
	tests := []struct {
		name     string
		postcode string
		expected *int
	}{
		{name: "First arrondissement", postcode: "75001", expected: intPtr(1)},
		{name: "Twentieth arrondissement", postcode: "75020", expected: intPtr(20)},
		{name: "Eleventh arrondissement", postcode: "75011", expected: intPtr(11)},
		{name: "Not Paris", postcode: "69001", expected: nil},
		{name: "Out of range", postcode: "75025", expected: nil},
		{name: "Zero", postcode: "75000", expected: nil},
		{name: "Empty", postcode: "", expected: nil},
		{name: "Malformed", postcode: "75abc", expected: nil},
		{name: "Too short", postcode: "75", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractArrondissement(tt.postcode)
			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, *tt.expected, *result)
			}
		})
	}
}

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "Paris, France")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"lat": "48.8668",
			"lon": "2.3653",
			"display_name": "12, Rue Oberkampf, 75011 Paris, France",
			"address": {
				"postcode": "75011",
				"suburb": "Oberkampf",
				"city_district": "11th Arrondissement"
			}
		}]`))
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(NominatimConfig{
		BaseURL:       server.URL,
		RatePerSecond: 1000, // keep the test fast
	})

	addr, err := geocoder.Geocode(context.Background(), "12 Rue Oberkampf")
	require.NoError(t, err)

	assert.InDelta(t, 48.8668, addr.Coordinate.Latitude, 0.0001)
	assert.InDelta(t, 2.3653, addr.Coordinate.Longitude, 0.0001)
	assert.Equal(t, "75011", addr.Postcode)
	require.NotNil(t, addr.Arrondissement)
	assert.Equal(t, 11, *addr.Arrondissement)
	assert.Equal(t, "Oberkampf", addr.Neighborhood)
	assert.Equal(t, "11th Arrondissement", addr.District)
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(NominatimConfig{BaseURL: server.URL, RatePerSecond: 1000})

	_, err := geocoder.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, geo.ErrAddressNotFound)
}

func TestGeocode_EmptyAddress(t *testing.T) {
	geocoder := NewNominatimGeocoder(NominatimConfig{RatePerSecond: 1000})

	_, err := geocoder.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, geo.ErrAddressNotFound)
}

func TestGeocode_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(NominatimConfig{BaseURL: server.URL, RatePerSecond: 1000})

	_, err := geocoder.Geocode(context.Background(), "12 Rue Oberkampf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, geo.ErrAddressNotFound)
}

func intPtr(v int) *int {
	return &v
}
