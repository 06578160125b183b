package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var bengaluru = Point{Latitude: 12.9716, Longitude: 77.5946}

// north returns a point the given number of meters north of p.
func north(g GeoFence, p Point, meters float64) Point {
	return Point{Latitude: p.Latitude + meters/g.earthRadius*180/math.Pi, Longitude: p.Longitude}
}

func TestGeoFence_Distance_IdenticalPoints(t *testing.T) {
	g := NewGeoFence(0)
	assert.Equal(t, 0.0, g.Distance(bengaluru, bengaluru))
}

func TestGeoFence_Distance_KnownPair(t *testing.T) {
	g := NewGeoFence(0)
	// Bengaluru to Chennai is roughly 290 km as the crow flies.
	chennai := Point{Latitude: 13.0827, Longitude: 80.2707}
	d := g.Distance(bengaluru, chennai)
	assert.InDelta(t, 290000, d, 5000)
}

func TestGeoFence_IsWithinRadius(t *testing.T) {
	g := NewGeoFence(0)
	fence := Fence{Center: bengaluru, RadiusMeters: 100}

	cases := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center", bengaluru, true},
		{"50m away", north(g, bengaluru, 50), true},
		{"99m away", north(g, bengaluru, 99), true},
		{"150m away", north(g, bengaluru, 150), false},
		{"1km away", north(g, bengaluru, 1000), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, g.IsWithinRadius(fence, c.point))
		})
	}
}

func TestGeoFence_IsWithinRadius_BoundaryInclusive(t *testing.T) {
	g := NewGeoFence(0)
	p := north(g, bengaluru, 100)
	fence := Fence{Center: bengaluru, RadiusMeters: g.Distance(bengaluru, p)}

	assert.True(t, g.IsWithinRadius(fence, p))
}

func TestGeoFence_ZeroRadiusOnlyMatchesCenter(t *testing.T) {
	g := NewGeoFence(0)
	fence := Fence{Center: bengaluru, RadiusMeters: 0}

	assert.True(t, g.IsWithinRadius(fence, bengaluru))
	assert.False(t, g.IsWithinRadius(fence, north(g, bengaluru, 1)))
}

func TestNewGeoFence_CustomRadius(t *testing.T) {
	small := NewGeoFence(DefaultEarthRadiusMeters / 2)
	def := NewGeoFence(-1)
	other := Point{Latitude: 13, Longitude: 77.6}

	assert.InDelta(t, def.Distance(bengaluru, other)/2, small.Distance(bengaluru, other), 0.001)
}
