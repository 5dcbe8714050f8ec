package geo

import (
	"github.com/golang/geo/s2"
)

// S2Distance great circle distance in km between two coordinates, computed on the s2 unit sphere.
func S2Distance(latOne, lonOne, latTwo, lonTwo float64) float64 {
	a := s2.LatLngFromDegrees(latOne, lonOne)
	b := s2.LatLngFromDegrees(latTwo, lonTwo)
	return a.Distance(b).Radians() * earthRadiusKM
}

// BoundingRect lat/lng rectangle around (lat, lon) with the given radius in km.
func BoundingRect(lat, lon, radius float64) s2.Rect {
	lowerLat, lowerLon := GetDestinationPoint(lat, lon, 225, radius)
	upperLat, upperLon := GetDestinationPoint(lat, lon, 45, radius)
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(lowerLat, lowerLon))
	return rect.AddPoint(s2.LatLngFromDegrees(upperLat, upperLon))
}
