package lfucache

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is an in-memory LFU cache with a fixed capacity and a TTL.
//
// When a new key arrives and the cache is full, the entry with the lowest
// access count is evicted; among entries with the same count, the one
// inserted first goes. Get and Put on an existing key count as one access.
//
// A background sweep removes entries older than the TTL. Between sweeps an
// expired entry is treated as a miss but still occupies its slot.
//
// Concurrency:
//
// Cache methods are safe for concurrent use. Every operation, including the
// sweep, runs under one mutex that covers the key map, the frequency buckets
// and the minimum frequency, so a promotion is never observed half done.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	store *store[K, V]
	index *frequencyIndex[K, V]
	// minf is the lowest frequency with a non-empty bucket, 0 when empty.
	minf  uint64
	free  freeList[K, V]
	stats Stats

	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
	sweeper *sweeper
	loads   singleflight.Group
	flights flightTable[K]
}

// Entry is a point-in-time copy of one cache entry.
type Entry[K comparable, V any] struct {
	Key       K
	Value     V
	Frequency uint64
	CreatedAt time.Time
}

// New constructs a cache from the provided config and, unless
// Config.ManualSweep is set, starts its expiration sweep. Call Close to stop
// the sweep when the cache is no longer needed.
//
// New calls config.Build() internally and returns its error, which wraps
// ErrInvalidConfiguration.
func New[K comparable, V any](config Config) (*Cache[K, V], error) {
	cfg, err := config.Build()
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		store:  newStore[K, V](cfg.Capacity),
		index:  newFrequencyIndex[K, V](),
		free:   newFreeList[K, V](cfg.FreeListSize),
		cfg:    cfg,
		logger: cfg.Logger,
		now:    cfg.Clock,
	}
	c.sweeper = newSweeper(cfg.SweepInterval, cfg.Logger, c.Sweep)
	if !cfg.ManualSweep {
		c.sweeper.start()
	}
	return c, nil
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.itemCount()
}

// Capacity returns the configured capacity.
func (c *Cache[K, V]) Capacity() int {
	return c.cfg.Capacity
}

// TTL returns the configured time-to-live.
func (c *Cache[K, V]) TTL() time.Duration {
	return c.cfg.TTL
}

// Get returns the value for key and counts one access to it.
//
// The second result is false if the key is absent or expired. A miss has no
// side effects.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.store.get(key)
	if item == nil || item.expired(c.now(), c.cfg.TTL) {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.promote(item)
	c.stats.Hits++
	return item.value, true
}

// Peek returns the value for key without counting an access.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.store.get(key)
	if item == nil || item.expired(c.now(), c.cfg.TTL) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Frequency returns the access count of key without changing it.
func (c *Cache[K, V]) Frequency(key K) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.store.get(key)
	if item == nil {
		return 0, false
	}
	return item.frequency, true
}

// Put inserts or updates a key.
//
// Updating a live key replaces its value and counts as one access; its age
// is unchanged. Updating a key that has expired but was not swept yet
// replaces the entry with a fresh one. Inserting a new key into a full cache
// first evicts the least frequently used entry.
//
// Put returns an error wrapping ErrInvalidArgument if key or value is nil;
// the cache is left unchanged.
func (c *Cache[K, V]) Put(key K, value V) error {
	if isNil(any(key)) {
		return fmt.Errorf("%w: nil key", ErrInvalidArgument)
	}
	if isNil(any(value)) {
		return fmt.Errorf("%w: nil value for key %v", ErrInvalidArgument, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if item := c.store.get(key); item != nil {
		if !item.expired(now, c.cfg.TTL) {
			item.value = value
			c.promote(item)
			return nil
		}
		// The insert below resets minf, so no recovery is needed here.
		c.discard(item)
		c.stats.Expirations++
	}

	if c.store.itemCount() >= c.cfg.Capacity {
		c.evict()
	}

	item := c.free.get(key, value, now)
	c.store.set(item)
	c.index.add(item)
	c.minf = 1
	return nil
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.store.get(key)
	if item == nil {
		return false
	}
	freq, emptied := c.discard(item)
	if emptied && freq == c.minf {
		c.recomputeMinFrequency()
	}
	return true
}

// Clear removes all entries. Stats are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.clear()
	c.index.clear()
	c.minf = 0
}

// MinFrequency returns the lowest access count among the entries, or 0 if
// the cache is empty.
func (c *Cache[K, V]) MinFrequency() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minf
}

// Snapshot returns a copy of every entry, oldest first.
func (c *Cache[K, V]) Snapshot() []Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry[K, V], 0, c.store.itemCount())
	c.store.forEach(func(item *entry[K, V]) bool {
		entries = append(entries, Entry[K, V]{
			Key:       item.key,
			Value:     item.value,
			Frequency: item.frequency,
			CreatedAt: item.createdAt,
		})
		return true
	})
	return entries
}

// Sweep removes every entry whose age has reached the TTL and returns how
// many were removed. The background sweep calls it on every tick; it can
// also be called directly.
//
// Entries are visited oldest first and the scan stops at the first live one,
// so the lock is held for a time proportional to the number of expired
// entries.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	lowest := uint64(math.MaxUint64)
	c.store.forEach(func(item *entry[K, V]) bool {
		if !item.expired(now, c.cfg.TTL) {
			return false
		}
		freq, _ := c.discard(item)
		lowest = min(lowest, freq)
		removed++
		return true
	})
	if removed == 0 {
		return 0
	}

	c.stats.Expirations += uint64(removed)
	if lowest <= c.minf {
		c.recomputeMinFrequency()
	}
	c.logger.Debug("swept expired entries", "removed", removed, "remaining", c.store.itemCount(), "minf", c.minf)
	return removed
}

// StartExpiration starts the background sweep. It is a no-op if the sweep
// is already running.
func (c *Cache[K, V]) StartExpiration() {
	c.sweeper.start()
}

// StopExpiration stops the background sweep and waits for an in-flight sweep
// to finish. It is a no-op if the sweep is not running.
func (c *Cache[K, V]) StopExpiration() {
	c.sweeper.halt()
}

// ExpirationRunning reports whether the background sweep is running.
func (c *Cache[K, V]) ExpirationRunning() bool {
	return c.sweeper.running()
}

// Close stops the background sweep. The cache stays usable.
func (c *Cache[K, V]) Close() {
	c.StopExpiration()
}

// promote moves item one bucket up. If it was the last item of the minimum
// bucket, the new minimum is exactly one higher, where item now lives.
func (c *Cache[K, V]) promote(item *entry[K, V]) {
	freq := item.frequency
	if c.index.remove(item) && freq == c.minf {
		c.minf++
	}
	item.frequency++
	c.index.add(item)
}

// evict removes the oldest item of the minimum bucket. minf is left alone:
// the caller inserts a new key right after, which resets it.
func (c *Cache[K, V]) evict() {
	b, ok := c.index.lookup(c.minf)
	if !ok {
		panic(fmt.Sprintf("lfucache: no bucket at minimum frequency %d", c.minf))
	}
	victim := b.oldest().value
	c.logger.Debug("evicting entry", "key", victim.key, "frequency", victim.frequency)
	c.discard(victim)
	c.stats.Evictions++
}

// discard unlinks item from the index and the store and recycles it. It
// returns the item's frequency and whether its bucket was deleted.
func (c *Cache[K, V]) discard(item *entry[K, V]) (uint64, bool) {
	freq := item.frequency
	emptied := c.index.remove(item)
	c.store.delete(item)
	c.free.put(item)
	return freq, emptied
}

// recomputeMinFrequency scans the bucket keys. It is bounded by the number of
// distinct frequencies and only runs after bulk or explicit removal.
func (c *Cache[K, V]) recomputeMinFrequency() {
	var lowest uint64
	c.index.each(func(freq uint64, _ *queue[*entry[K, V]]) {
		if lowest == 0 || freq < lowest {
			lowest = freq
		}
	})
	c.minf = lowest
}
