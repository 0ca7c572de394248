package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"media-catalog/core/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int32, vols ...*tree.Volume) LoadFunc {
	return func(context.Context) ([]*tree.Volume, error) {
		atomic.AddInt32(calls, 1)
		return vols, nil
	}
}

func TestSnapshotCache_ReusesUntilExpired(t *testing.T) {
	var calls int32
	cache := NewSnapshotCache(countingLoader(&calls, tree.NewVolume("/media/movies")), time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.NotNil(t, first.Volume("/media/movies"))
	assert.Nil(t, first.Volume("/media/shows"))

	now = now.Add(2 * time.Minute)
	third, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSnapshotCache_ZeroTTLAlwaysLoads(t *testing.T) {
	var calls int32
	cache := NewSnapshotCache(countingLoader(&calls), 0)

	for i := 0; i < 3; i++ {
		_, err := cache.Get(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	var calls int32
	cache := NewSnapshotCache(countingLoader(&calls), time.Hour)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSnapshotCache_LoadErrorIsNotCached(t *testing.T) {
	fail := true
	cache := NewSnapshotCache(func(context.Context) ([]*tree.Volume, error) {
		if fail {
			return nil, errors.New("database is locked")
		}
		return nil, nil
	}, time.Hour)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)

	fail = false
	snap, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap)
}

func TestSnapshotCache_CollapsesConcurrentLoads(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	cache := NewSnapshotCache(func(context.Context) ([]*tree.Volume, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return nil, nil
	}, time.Hour)

	var wg sync.WaitGroup
	var started sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		started.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			_, err := cache.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	started.Wait()
	// Give the goroutines time to join the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}
