package transport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/transport"
)

// northOf returns a coordinate a given number of meters due north of base.
func northOf(base geo.Coordinate, meters float64) geo.Coordinate {
	return geo.Coordinate{
		Latitude:  base.Latitude + meters/earthRadiusMeters*180/3.141592653589793,
		Longitude: base.Longitude,
	}
}

func TestEstimateLandmarkTimes_ModeSwitch(t *testing.T) {
	point := geo.Coordinate{Latitude: 48.8584, Longitude: 2.2945}

	landmarks := []transport.Landmark{
		{Name: "Near", Coordinate: northOf(point, 1000)},
		{Name: "Far", Coordinate: northOf(point, 5000)},
	}

	estimates := EstimateLandmarkTimes(point, landmarks)
	require.Len(t, estimates, 2)

	near := estimates[0]
	assert.Equal(t, "Near", near.Landmark)
	assert.Equal(t, 12, near.EstimatedMinutes) // 1000 m at 83.3 m/min
	assert.Equal(t, "12 min walk", near.Time)

	far := estimates[1]
	assert.Equal(t, "Far", far.Landmark)
	assert.Equal(t, 18, far.EstimatedMinutes) // 10 + 5000/600
	assert.Equal(t, "18 min metro", far.Time)
}

func TestEstimateLandmarkTimes_PreservesOrder(t *testing.T) {
	point := geo.Coordinate{Latitude: 48.8584, Longitude: 2.2945}

	estimates := EstimateLandmarkTimes(point, DefaultLandmarks())
	require.Len(t, estimates, 6)

	for i, landmark := range DefaultLandmarks() {
		assert.Equal(t, landmark.Name, estimates[i].Landmark)
	}
}

func TestEstimateLandmarkTimes_WalkCutoff(t *testing.T) {
	point := geo.Coordinate{Latitude: 48.8584, Longitude: 2.2945}

	tests := []struct {
		meters   float64
		wantMode string
	}{
		{meters: 500, wantMode: "walk"},
		{meters: 1499, wantMode: "walk"},
		{meters: 1501, wantMode: "metro"},
		{meters: 8000, wantMode: "metro"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.0fm", tt.meters), func(t *testing.T) {
			landmarks := []transport.Landmark{{Name: "L", Coordinate: northOf(point, tt.meters)}}
			estimates := EstimateLandmarkTimes(point, landmarks)
			require.Len(t, estimates, 1)
			assert.Contains(t, estimates[0].Time, tt.wantMode)
		})
	}
}
