// Package lfucache provides a bounded in-memory cache that evicts the least
// frequently used entry and expires entries older than a TTL.
//
// Key properties:
//
//   - O(1) Get and Put. Entries are grouped in buckets by access count and
//     the lowest non-empty count is tracked incrementally, so choosing an
//     eviction victim never scans the cache.
//   - Ties are broken by insertion: within the lowest-count bucket the entry
//     inserted first is evicted first.
//   - TTL measured from insertion. Reads and overwrites do not refresh an
//     entry's age. Expired entries read as misses and are removed by a
//     periodic sweep owned by the cache.
//   - GetOrLoad fills misses through a loader, collapsing concurrent loads of
//     the same key.
//
// # Configuration
//
// Config is a plain struct. Set the fields you care about and pass it to New,
// or read it from YAML with LoadConfig. New rejects a non-positive capacity or
// TTL with ErrInvalidConfiguration.
//
// # Expiration
//
// New starts the sweep unless Config.ManualSweep is set. StopExpiration and
// StartExpiration may be called any number of times; at most one sweep
// goroutine runs per cache. Close stops it.
//
// # Concurrency
//
// Cache operations are safe for concurrent use. All bookkeeping, including
// the sweep, is serialized on a single mutex per cache.
package lfucache
