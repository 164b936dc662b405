package lfucache

import "time"

// freeList recycles items destroyed by eviction, expiry or deletion.
// It is not synchronized; the cache only touches it under its own lock.
type freeList[K comparable, V any] struct {
	items []*entry[K, V]
}

func newFreeList[K comparable, V any](size int) freeList[K, V] {
	return freeList[K, V]{
		items: make([]*entry[K, V], 0, size),
	}
}

// get returns a recycled item initialised with key, value and createdAt, or
// a fresh one when the list is empty.
func (f *freeList[K, V]) get(key K, value V, createdAt time.Time) *entry[K, V] {
	if len(f.items) == 0 {
		return newEntry(key, value, createdAt)
	}

	i := f.items[len(f.items)-1]
	f.items[len(f.items)-1] = nil
	f.items = f.items[:len(f.items)-1]
	i.key = key
	i.value = value
	i.frequency = 1
	i.createdAt = createdAt
	return i
}

// put resets i and keeps it for reuse. Items beyond capacity are dropped.
func (f *freeList[K, V]) put(i *entry[K, V]) {
	i.reset()
	if len(f.items) == cap(f.items) {
		return
	}
	f.items = append(f.items, i)
}

func (f *freeList[K, V]) len() int {
	return len(f.items)
}

func (f *freeList[K, V]) cap() int {
	return cap(f.items)
}
