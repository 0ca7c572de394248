package catalog

import (
	"context"
	"sync"
	"time"

	"media-catalog/core/tree"

	"golang.org/x/sync/singleflight"
)

// Snapshot is a loaded copy of the catalog used to answer read requests.
type Snapshot struct {
	// Volumes holds every registered volume with its tree.
	Volumes []*tree.Volume

	// Built is the timestamp when this snapshot was loaded.
	Built time.Time
}

// Volume returns the volume with the given canonical path, or nil.
func (s *Snapshot) Volume(path string) *tree.Volume {
	for _, v := range s.Volumes {
		if v.Path == path {
			return v
		}
	}
	return nil
}

// LoadFunc loads the volumes a snapshot is built from.
type LoadFunc func(ctx context.Context) ([]*tree.Volume, error)

// snapshotKey is the singleflight key; there is only one snapshot.
const snapshotKey = "catalog"

// SnapshotCache holds the catalog snapshot for a TTL and loads at most one
// replacement at a time.
type SnapshotCache struct {
	load LoadFunc
	ttl  time.Duration
	now  func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
	sf       singleflight.Group
}

// NewSnapshotCache creates a cache around load. A zero TTL disables caching.
func NewSnapshotCache(load LoadFunc, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{load: load, ttl: ttl, now: time.Now}
}

func (c *SnapshotCache) fresh(s *Snapshot) bool {
	if s == nil || c.ttl <= 0 {
		return false
	}
	return c.now().Sub(s.Built) <= c.ttl
}

// Get returns the cached snapshot, or loads a new one if it doesn't exist or has expired.
func (c *SnapshotCache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	if c.fresh(snapshot) {
		return snapshot, nil
	}

	result, err, _ := c.sf.Do(snapshotKey, func() (any, error) {
		// Double-check after joining the flight
		c.mu.RLock()
		snapshot := c.snapshot
		c.mu.RUnlock()
		if c.fresh(snapshot) {
			return snapshot, nil
		}

		vols, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		next := &Snapshot{Volumes: vols, Built: c.now()}

		c.mu.Lock()
		c.snapshot = next
		c.mu.Unlock()
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the cached snapshot so the next Get loads again.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}
