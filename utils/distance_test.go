package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKmParisLondon(t *testing.T) {
	d := HaversineKm(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 344, d, 5)
}

func TestHaversineKmSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(10, 20, 10, 20))
}

func TestHaversineKmSymmetric(t *testing.T) {
	d1 := HaversineKm(-33.8688, 151.2093, 35.6762, 139.6503)
	d2 := HaversineKm(35.6762, 139.6503, -33.8688, 151.2093)
	assert.InDelta(t, d1, d2, 1e-9)
}
