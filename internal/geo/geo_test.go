package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	// San Francisco to Los Angeles, roughly 559 km.
	d := DistanceKm(37.7749, -122.4194, 34.0522, -118.2437)
	assert.InDelta(t, 559, d, 5)

	assert.InDelta(t, 0, DistanceKm(10, 10, 10, 10), 1e-9)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	center := Location{Lat: 40.7128, Lng: -74.0060}
	minLat, maxLat, minLng, maxLng := BoundingBox(center.Lat, center.Lng, 5)

	north := Location{Lat: center.Lat + 0.04, Lng: center.Lng}
	assert.Less(t, DistanceKm(center.Lat, center.Lng, north.Lat, north.Lng), 5.0)
	assert.True(t, north.Lat < maxLat && north.Lat > minLat)

	east := Location{Lat: center.Lat, Lng: center.Lng + 0.05}
	assert.Less(t, DistanceKm(center.Lat, center.Lng, east.Lat, east.Lng), 5.0)
	assert.True(t, east.Lng < maxLng && east.Lng > minLng)
}

func TestValid(t *testing.T) {
	assert.True(t, Location{Lat: 0, Lng: 0}.Valid())
	assert.False(t, Location{Lat: 91, Lng: 0}.Valid())
	assert.False(t, Location{Lat: 0, Lng: -181}.Valid())
}

func TestParsePoint(t *testing.T) {
	loc, err := ParsePoint(" 40.7128, -74.0060 ")
	require.NoError(t, err)
	assert.InDelta(t, 40.7128, loc.Lat, 1e-9)
	assert.InDelta(t, -74.0060, loc.Lng, 1e-9)

	for _, bad := range []string{"", "40.7", "north,-74", "40,west", "95,0"} {
		_, err := ParsePoint(bad)
		assert.Error(t, err, bad)
	}
}
