package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// Berlin -> Munich, roughly 504 km.
	d := DistanceKm(52.5200, 13.4050, 48.1351, 11.5820)
	assert.InDelta(t, 504, d, 5)
}

func TestDistanceKmSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(40.0, -74.0, 40.0, -74.0))
}

func TestDistanceKmShortRange(t *testing.T) {
	// Two points ~1.11 km apart along a meridian (0.01 degrees latitude).
	d := DistanceKm(51.50, 0, 51.51, 0)
	assert.InDelta(t, 1.11, d, 0.02)
}
