// internal/domain/geo/model.go

package geo

import (
	"context"
	"errors"
	"math"
)

// ErrAddressNotFound is returned when the geocoding provider has no match
// for the requested address.
var ErrAddressNotFound = errors.New("address not found")

// Coordinate represents a geographic point in floating-point degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is finite and within the
// latitude [-90, 90] and longitude [-180, 180] ranges.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Address is a geocoded Paris address with district metadata.
type Address struct {
	Coordinate     Coordinate `json:"coordinate"`
	Postcode       string     `json:"postcode"`
	Arrondissement *int       `json:"arrondissement"`
	FullAddress    string     `json:"full_address"`
	Neighborhood   string     `json:"neighborhood,omitempty"`
	District       string     `json:"district,omitempty"`
}

// Geocoder resolves a free-form street address to a Paris location.
type Geocoder interface {
	// Geocode resolves an address. Returns ErrAddressNotFound when the
	// provider has no result for it.
	Geocode(ctx context.Context, address string) (*Address, error)
}
