// Package geo provides great-circle distance math and radius filtering
// for profile listings.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceFunc computes the distance in kilometers between two
// decimal-degree coordinates.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// Distance returns the haversine distance in kilometers between two points
// given as decimal degrees. Coordinates are evaluated as given; callers are
// responsible for validating latitude [-90,90] and longitude [-180,180].
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1 = lat1 * (math.Pi / 180)
	lat2 = lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Located is anything that may carry a geolocation. ok is false when no
// coordinates are set.
type Located interface {
	Location() (lat, lon float64, ok bool)
}

// WithinRadius returns the order-preserving subsequence of candidates whose
// distance from the origin is strictly less than radiusKm. Candidates
// without a location are excluded. dist may be nil, in which case Distance
// is used.
func WithinRadius[T Located](candidates []T, originLat, originLon, radiusKm float64, dist DistanceFunc) []T {
	if dist == nil {
		dist = Distance
	}
	result := make([]T, 0, len(candidates))
	for _, c := range candidates {
		lat, lon, ok := c.Location()
		if !ok {
			continue
		}
		if dist(originLat, originLon, lat, lon) < radiusKm {
			result = append(result, c)
		}
	}
	return result
}
