package lfucache

import (
	"reflect"
	"time"
)

// entry is the record stored per key.
//
// An entry is owned by the cache and is only touched under the cache lock.
// It is linked into two queues at once: its frequency bucket and the store's
// creation order.
type entry[K comparable, V any] struct {
	key       K
	value     V
	frequency uint64
	createdAt time.Time

	bucketNode *node[*entry[K, V]]
	orderNode  *node[*entry[K, V]]
}

func newEntry[K comparable, V any](key K, value V, createdAt time.Time) *entry[K, V] {
	return &entry[K, V]{
		key:       key,
		value:     value,
		frequency: 1,
		createdAt: createdAt,
	}
}

// reset clears an item before it goes back to the free list so that it does
// not pin the old key and value.
func (i *entry[K, V]) reset() {
	var (
		zeroK K
		zeroV V
	)
	i.key = zeroK
	i.value = zeroV
	i.frequency = 0
	i.createdAt = time.Time{}
	i.bucketNode = nil
	i.orderNode = nil
}

func (i *entry[K, V]) expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(i.createdAt.Add(ttl))
}

// isNil reports whether v is an untyped nil or a nil pointer, map, slice,
// func, chan or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
