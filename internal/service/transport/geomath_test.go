package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chezvous/internal/domain/geo"
)

func TestDistanceMeters(t *testing.T) {
	paris := geo.Coordinate{Latitude: 48.8584, Longitude: 2.2945}

	tests := []struct {
		name     string
		a        geo.Coordinate
		b        geo.Coordinate
		expected float64
		delta    float64
	}{
		{
			name:     "Zero distance",
			a:        paris,
			b:        paris,
			expected: 0,
			delta:    0.001,
		},
		{
			// 0.0089932 degrees of latitude is a 1000 m meridian arc at
			// Earth radius 6371 km.
			name:     "One kilometer due north",
			a:        paris,
			b:        geo.Coordinate{Latitude: 48.8584 + 0.0089932, Longitude: 2.2945},
			expected: 1000,
			delta:    1,
		},
		{
			name:     "Eiffel Tower to Louvre",
			a:        paris,
			b:        geo.Coordinate{Latitude: 48.8606, Longitude: 2.3376},
			expected: 3160,
			delta:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DistanceMeters(tt.a, tt.b)
			assert.InDelta(t, tt.expected, result, tt.delta)
		})
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := geo.Coordinate{Latitude: 48.8867, Longitude: 2.3431}
	b := geo.Coordinate{Latitude: 48.8530, Longitude: 2.3499}

	assert.Equal(t, DistanceMeters(a, b), DistanceMeters(b, a))
}

func TestWalkMinutes(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected int
	}{
		{
			name:     "Zero distance floors at one minute",
			distance: 0,
			expected: 1,
		},
		{
			name:     "Short distance floors at one minute",
			distance: 30,
			expected: 1,
		},
		{
			name:     "Ten minute walk",
			distance: 833,
			expected: 10,
		},
		{
			name:     "Five minute walk",
			distance: 416,
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WalkMinutes(tt.distance))
		})
	}
}

func TestWalkMinutes_AlwaysAtLeastOne(t *testing.T) {
	for _, distance := range []float64{0, 1, 10, 41, 42, 83.3, 1000, 100000} {
		assert.GreaterOrEqual(t, WalkMinutes(distance), 1, "distance %f", distance)
	}
}
