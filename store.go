package lfucache

// store maps keys to items and remembers creation order, oldest last.
//
// Promotion never moves an item in the order queue: only insertion and
// removal touch it, so the order is also ascending createdAt.
type store[K comparable, V any] struct {
	items map[K]*entry[K, V]
	order *queue[*entry[K, V]]
}

func newStore[K comparable, V any](capacity int) *store[K, V] {
	return &store[K, V]{
		items: make(map[K]*entry[K, V], capacity),
		order: newQueue[*entry[K, V]](),
	}
}

func (s *store[K, V]) itemCount() int {
	return len(s.items)
}

func (s *store[K, V]) get(key K) *entry[K, V] {
	return s.items[key]
}

func (s *store[K, V]) set(item *entry[K, V]) {
	s.items[item.key] = item
	item.orderNode = s.order.pushToFront(item)
}

func (s *store[K, V]) delete(item *entry[K, V]) {
	delete(s.items, item.key)
	s.order.remove(item.orderNode)
	item.orderNode = nil
}

// forEach walks items from oldest to newest until fn returns false.
func (s *store[K, V]) forEach(fn func(item *entry[K, V]) bool) {
	s.order.each(func(n *node[*entry[K, V]]) bool {
		return fn(n.value)
	})
}

func (s *store[K, V]) clear() {
	s.items = make(map[K]*entry[K, V])
	s.order = newQueue[*entry[K, V]]()
}
