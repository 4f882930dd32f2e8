package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	lat, lon float64
	has      bool
}

func (p point) Location() (float64, float64, bool) {
	return p.lat, p.lon, p.has
}

func located(lat, lon float64) point {
	return point{lat: lat, lon: lon, has: true}
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{60.1699, 24.9384},
		{-33.8688, 151.2093},
		{90, 0},
	}
	for _, p := range points {
		assert.Zero(t, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := [2]float64{60.1699, 24.9384}  // Helsinki
	b := [2]float64{59.4370, 24.7536}  // Tallinn
	assert.Equal(t, Distance(a[0], a[1], b[0], b[1]), Distance(b[0], b[1], a[0], a[1]))
}

func TestDistance_KnownValues(t *testing.T) {
	// One degree of longitude on the equator is about 111 km.
	km := Distance(0, 0, 0, 1)
	assert.InDelta(t, 111.19, km, 0.5)

	// Helsinki to Tampere is about 160 km.
	km = Distance(60.1699, 24.9384, 61.4991, 23.7871)
	assert.InDelta(t, 160, km, 10)
}

func TestWithinRadius_StrictBoundary(t *testing.T) {
	candidates := []point{located(0, 1)} // ~111 km from origin

	assert.Len(t, WithinRadius(candidates, 0, 0, 200, nil), 1)
	assert.Empty(t, WithinRadius(candidates, 0, 0, 50, nil))

	// Strict inequality: a candidate exactly on the radius is excluded.
	km := Distance(0, 0, 0, 1)
	assert.Empty(t, WithinRadius(candidates, 0, 0, km, nil))
}

func TestWithinRadius_ExcludesUnlocatedAndPreservesOrder(t *testing.T) {
	candidates := []point{
		located(0, 0.5),
		{has: false},
		located(0, 0.1),
		located(0, 5), // ~556 km, outside
		located(0, 0.9),
	}

	got := WithinRadius(candidates, 0, 0, 200, nil)

	want := []point{located(0, 0.5), located(0, 0.1), located(0, 0.9)}
	assert.Equal(t, want, got)
}

func TestWithinRadius_EmptyInput(t *testing.T) {
	assert.Empty(t, WithinRadius([]point{}, 0, 0, 100, nil))
}
