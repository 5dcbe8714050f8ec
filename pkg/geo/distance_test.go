package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// monas -> bundaran HI
	dist := CalculateHaversineDistance(-6.175392, 106.827153, -6.194935, 106.823036)
	assert.InDelta(t, 2.22, dist, 0.05)
	assert.InDelta(t, dist, S2Distance(-6.175392, 106.827153, -6.194935, 106.823036), 1e-6)
	assert.Equal(t, 0.0, CalculateHaversineDistance(-6.2, 106.8, -6.2, 106.8))
}

func TestGetDestinationPoint(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 225, 300} {
		lat, lon := GetDestinationPoint(-6.2, 106.8, bearing, 3)
		assert.InDelta(t, 3.0, CalculateHaversineDistance(-6.2, 106.8, lat, lon), 1e-6, "bearing %v", bearing)
	}

	_, lon := GetDestinationPoint(0, 179.99, 90, 10)
	assert.Less(t, lon, -179.0)
}

func TestBoundingRect(t *testing.T) {
	rect := BoundingRect(-6.2, 106.8, 2)
	assert.Less(t, rect.Lo().Lat.Degrees(), -6.2)
	assert.Greater(t, rect.Hi().Lat.Degrees(), -6.2)
	assert.Less(t, rect.Lo().Lng.Degrees(), 106.8)
	assert.Greater(t, rect.Hi().Lng.Degrees(), 106.8)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-6.175392, 106.827153),
		NewCoordinate(-6.194935, 106.823036),
		NewCoordinate(-6.2088, 106.8456),
	}
	encoded := EncodePolyline(coords)
	assert.NotEmpty(t, encoded)

	decoded, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].GetLat(), decoded[i][0], 1e-5)
		assert.InDelta(t, coords[i].GetLon(), decoded[i][1], 1e-5)
	}

	assert.Empty(t, EncodePolyline(nil))
}
