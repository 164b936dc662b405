package lfucache

// frequencyIndex groups items by access frequency. Each bucket keeps its
// items in insertion order so that eviction picks the oldest key of a bucket.
//
// A bucket never stays empty: remove deletes it as soon as its last item
// leaves. The index does not know which frequency is the lowest; the cache
// tracks that itself.
type frequencyIndex[K comparable, V any] struct {
	buckets map[uint64]*queue[*entry[K, V]]
}

func newFrequencyIndex[K comparable, V any]() *frequencyIndex[K, V] {
	return &frequencyIndex[K, V]{
		buckets: make(map[uint64]*queue[*entry[K, V]]),
	}
}

// bucket returns the bucket for freq, creating it if absent.
func (f *frequencyIndex[K, V]) bucket(freq uint64) *queue[*entry[K, V]] {
	b, ok := f.buckets[freq]
	if !ok {
		b = newQueue[*entry[K, V]]()
		f.buckets[freq] = b
	}
	return b
}

// lookup returns the bucket for freq without creating it.
func (f *frequencyIndex[K, V]) lookup(freq uint64) (*queue[*entry[K, V]], bool) {
	b, ok := f.buckets[freq]
	return b, ok
}

func (f *frequencyIndex[K, V]) add(item *entry[K, V]) {
	item.bucketNode = f.bucket(item.frequency).pushToFront(item)
}

// remove unlinks item from the bucket of its current frequency and reports
// whether that bucket was deleted because it became empty.
func (f *frequencyIndex[K, V]) remove(item *entry[K, V]) bool {
	b, ok := f.buckets[item.frequency]
	if !ok || item.bucketNode == nil {
		panic("lfucache: item missing from its frequency bucket")
	}
	b.remove(item.bucketNode)
	item.bucketNode = nil
	if b.len() == 0 {
		delete(f.buckets, item.frequency)
		return true
	}
	return false
}

// each calls fn with every non-empty frequency. Order is unspecified.
func (f *frequencyIndex[K, V]) each(fn func(freq uint64, b *queue[*entry[K, V]])) {
	for freq, b := range f.buckets {
		fn(freq, b)
	}
}

func (f *frequencyIndex[K, V]) len() int {
	return len(f.buckets)
}

func (f *frequencyIndex[K, V]) clear() {
	f.buckets = make(map[uint64]*queue[*entry[K, V]])
}
