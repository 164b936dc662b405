package lfucache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// LoadFunc produces the value for a key that is not cached.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// GetOrLoad returns the cached value for key, counting an access. On a miss
// it calls load and stores the result with Put.
//
// Concurrent misses for the same key share a single load call; all of them
// receive its result. The shared call runs with the context of the caller
// that started it. Errors from load are returned wrapped and nothing is
// stored.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[K, V]) (V, error) {
	var zero V
	if load == nil {
		return zero, fmt.Errorf("%w: nil load func", ErrInvalidArgument)
	}
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	id := c.flights.acquire(key)
	defer c.flights.release(key)

	res, err, _ := c.loads.Do(id, func() (any, error) {
		// A previous round may have stored it while this caller waited.
		if v, ok := c.Peek(key); ok {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := load(ctx, key)
		if err != nil {
			return nil, err
		}
		if err := c.Put(key, v); err != nil {
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		return zero, fmt.Errorf("load %v: %w", key, err)
	}
	return res.(V), nil
}

// flightTable hands out a call id per key while loads for that key are in
// flight. Keys are compared with ==, so two keys share an id only if they
// are the same key.
type flightTable[K comparable] struct {
	mu     sync.Mutex
	next   uint64
	active map[K]*flight
}

type flight struct {
	id   string
	refs int
}

func (f *flightTable[K]) acquire(key K) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if fl, ok := f.active[key]; ok {
		fl.refs++
		return fl.id
	}
	if f.active == nil {
		f.active = make(map[K]*flight)
	}
	f.next++
	fl := &flight{id: strconv.FormatUint(f.next, 10), refs: 1}
	f.active[key] = fl
	return fl.id
}

func (f *flightTable[K]) release(key K) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.active[key]
	if !ok {
		return
	}
	fl.refs--
	if fl.refs == 0 {
		delete(f.active, key)
	}
}
