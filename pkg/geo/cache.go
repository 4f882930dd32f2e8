package geo

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type pairKey struct {
	lat1, lon1, lat2, lon2 float64
}

// DistanceCache memoizes haversine results for recurring coordinate pairs.
// The same pair tends to recur across repeated listing calls within a short
// window, so a small bounded cache saves most of the trig work. Safe for
// concurrent use; bypassing it never changes results.
type DistanceCache struct {
	entries *lru.Cache[pairKey, float64]
}

func NewDistanceCache(size int) (*DistanceCache, error) {
	entries, err := lru.New[pairKey, float64](size)
	if err != nil {
		return nil, fmt.Errorf("cannot create distance cache: %w", err)
	}
	return &DistanceCache{entries: entries}, nil
}

// Distance is a caching DistanceFunc. The key is normalized so both
// orientations of a pair share one entry.
func (c *DistanceCache) Distance(lat1, lon1, lat2, lon2 float64) float64 {
	key := pairKey{lat1, lon1, lat2, lon2}
	if lat2 < lat1 || (lat2 == lat1 && lon2 < lon1) {
		key = pairKey{lat2, lon2, lat1, lon1}
	}
	if km, ok := c.entries.Get(key); ok {
		return km
	}
	km := Distance(lat1, lon1, lat2, lon2)
	c.entries.Add(key, km)
	return km
}

// Len reports the number of cached pairs.
func (c *DistanceCache) Len() int {
	return c.entries.Len()
}
