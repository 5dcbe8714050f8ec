package geo

import (
	"github.com/twpayne/go-polyline"
)

// EncodePolyline google encoded polyline (precision 5) of the coordinates.
func EncodePolyline(coords []Coordinate) string {
	raw := make([][]float64, len(coords))
	for i, c := range coords {
		raw[i] = []float64{c.GetLat(), c.GetLon()}
	}
	return string(polyline.EncodeCoords(raw))
}
