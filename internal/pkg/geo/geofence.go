package geo

import "math"

// DefaultEarthRadiusMeters is the mean Earth radius used when none is configured.
const DefaultEarthRadiusMeters = 6371000.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Fence is a circular area around Center.
type Fence struct {
	Center       Point
	RadiusMeters float64
}

// GeoFence checks coordinates against a circular office area.
type GeoFence struct {
	earthRadius float64
}

// NewGeoFence returns a GeoFence using earthRadiusMeters as the sphere radius.
// A non-positive value falls back to DefaultEarthRadiusMeters.
func NewGeoFence(earthRadiusMeters float64) GeoFence {
	if earthRadiusMeters <= 0 {
		earthRadiusMeters = DefaultEarthRadiusMeters
	}
	return GeoFence{earthRadius: earthRadiusMeters}
}

// Distance returns the haversine distance between a and b in meters.
func (g GeoFence) Distance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1Rad := toRadians(a.Latitude)
	lat2Rad := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return g.earthRadius * c
}

// IsWithinRadius reports whether point lies inside the fence. The boundary is inclusive.
func (g GeoFence) IsWithinRadius(fence Fence, point Point) bool {
	return g.Distance(fence.Center, point) <= fence.RadiusMeters
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
