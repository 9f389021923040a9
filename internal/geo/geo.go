package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371

// Location is a point on the map with optional locality labels.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	City  string  `json:"city,omitempty"`
	State string  `json:"state,omitempty"`
}

// DistanceKm returns the great-circle distance between two points using the
// Haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBox returns the lat/lng window that contains a circle of radiusKm
// around the point. Used as a cheap prefilter before exact distances.
func BoundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 111.0
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := radiusKm / (111.0 * cosLat)
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}

// Valid reports whether the coordinates are within WGS84 bounds.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// ParsePoint reads a "lat,lng" pair.
func ParsePoint(s string) (Location, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return Location{}, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Location{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Location{}, fmt.Errorf("invalid longitude: %w", err)
	}
	loc := Location{Lat: lat, Lng: lng}
	if !loc.Valid() {
		return Location{}, fmt.Errorf("point %q is out of range", s)
	}
	return loc, nil
}
