package lfucache

// Stats counts cache activity since the cache was created.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // removed to make room for a new key
	Expirations uint64 // removed because their age reached the TTL
}

// HitRatio returns Hits / (Hits + Misses), or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
