package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// snapshot pairs a computed aggregate with the generation of the load that
// produced it.
type snapshot struct {
	stats      StatsDTO
	generation uint64
	computedAt time.Time
}

// SnapshotCache holds the latest dashboard aggregate per user. Loads are
// stamped with a monotonically increasing generation; a resolution may only
// be stored if nothing newer has resolved first, so a slow stale load can
// never overwrite the result of a later one.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]snapshot
	counter uint64
	ttl     time.Duration
}

// NewSnapshotCache builds a cache whose entries expire after ttl. A zero ttl
// disables expiry.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[uuid.UUID]snapshot),
		ttl:     ttl,
	}
}

// Begin stamps a new load and returns its generation token.
func (c *SnapshotCache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Resolve stores the stats produced by the load with the given generation.
// It reports whether the write was applied; a false return means a newer
// load already resolved for this user.
func (c *SnapshotCache) Resolve(userID uuid.UUID, generation uint64, stats StatsDTO, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.entries[userID]
	if ok && existing.generation > generation {
		return false
	}
	c.entries[userID] = snapshot{
		stats:      stats,
		generation: generation,
		computedAt: now,
	}
	return true
}

// Get returns the cached aggregate for the user, if fresh.
func (c *SnapshotCache) Get(userID uuid.UUID, now time.Time) (StatsDTO, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return StatsDTO{}, false
	}
	if c.ttl > 0 && now.Sub(entry.computedAt) > c.ttl {
		delete(c.entries, userID)
		return StatsDTO{}, false
	}
	return entry.stats, true
}

// Invalidate drops the user's cached aggregate, forcing the next read to
// recompute.
func (c *SnapshotCache) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
