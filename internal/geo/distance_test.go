package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmIdentity(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(19.0760, 72.8777, 19.0760, 72.8777))
	assert.Equal(t, 0.0, DistanceKm(0, 0, 0, 0))
	assert.Equal(t, 0.0, DistanceKm(-90, 180, -90, 180))
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{19.0760, 72.8777, 28.6139, 77.2090},
		{51.5074, -0.1278, 40.7128, -74.0060},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}
	for _, p := range pairs {
		assert.Equal(t,
			DistanceKm(p[0], p[1], p[2], p[3]),
			DistanceKm(p[2], p[3], p[0], p[1]))
	}
}

func TestDistanceKmMumbaiDelhi(t *testing.T) {
	// great-circle with R = 6371 gives 1148.09 km for these coordinates
	d := DistanceKm(19.0760, 72.8777, 28.6139, 77.2090)
	assert.InDelta(t, 1148.1, d, 0.1)
}

func TestDistanceKmAntipodal(t *testing.T) {
	d := DistanceKm(0, 0, 0, 180)
	assert.InDelta(t, 20015.1, d, 0.1)
}

func TestDistanceKmRangeBound(t *testing.T) {
	pts := [][2]float64{
		{0, 0}, {90, 0}, {-90, 0}, {45.5, -122.6}, {-33.9, 151.2}, {19.1, 72.9},
	}
	for _, a := range pts {
		for _, b := range pts {
			d := DistanceKm(a[0], a[1], b[0], b[1])
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 20015.2)
		}
	}
}

func TestDistanceKmOneDecimal(t *testing.T) {
	d := DistanceKm(19.0760, 72.8777, 19.1, 72.9)
	assert.Equal(t, math.Round(d*10)/10, d)
}
