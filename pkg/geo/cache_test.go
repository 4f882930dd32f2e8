package geo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceCache_MatchesPlainDistance(t *testing.T) {
	cache, err := NewDistanceCache(10)
	require.NoError(t, err)

	want := Distance(60.1699, 24.9384, 59.4370, 24.7536)
	assert.Equal(t, want, cache.Distance(60.1699, 24.9384, 59.4370, 24.7536))
	// Second call hits the cache and must return the same value.
	assert.Equal(t, want, cache.Distance(60.1699, 24.9384, 59.4370, 24.7536))
}

func TestDistanceCache_SymmetricPairsShareOneEntry(t *testing.T) {
	cache, err := NewDistanceCache(10)
	require.NoError(t, err)

	a := cache.Distance(60.1699, 24.9384, 59.4370, 24.7536)
	b := cache.Distance(59.4370, 24.7536, 60.1699, 24.9384)

	assert.Equal(t, a, b)
	assert.Equal(t, 1, cache.Len())
}

func TestDistanceCache_Bounded(t *testing.T) {
	cache, err := NewDistanceCache(5)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		cache.Distance(0, 0, float64(i), float64(i))
	}
	assert.LessOrEqual(t, cache.Len(), 5)
}

func TestDistanceCache_ConcurrentAccess(t *testing.T) {
	cache, err := NewDistanceCache(100)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				lat := float64(j % 20)
				km := cache.Distance(0, 0, lat, 1)
				assert.Equal(t, Distance(0, 0, lat, 1), km)
			}
		}()
	}
	wg.Wait()
}
