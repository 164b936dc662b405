package lfucache

// node links one entry into a queue. Every entry owns two nodes, one in its
// frequency bucket and one in the store's creation order, and keeps pointers
// to both so it can unlink itself in O(1).
type node[T any] struct {
	next  *node[T]
	prev  *node[T]
	value T
}

func newNode[T any](value T) *node[T] {
	return &node[T]{value: value}
}

// queue keeps values in insertion order: head is the newest, tail the oldest.
type queue[T any] struct {
	head   *node[T]
	tail   *node[T]
	length int
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{}
}

func (q *queue[T]) len() int {
	return q.length
}

func (q *queue[T]) pushToFront(value T) *node[T] {
	n := newNode(value)
	q.length++
	if q.head == nil {
		q.head = n
		q.tail = n
		return n
	}
	n.next = q.head
	q.head.prev = n
	q.head = n
	return n
}

// oldest returns the tail node, or nil if the queue is empty.
func (q *queue[T]) oldest() *node[T] {
	return q.tail
}

func (q *queue[T]) remove(n *node[T]) {
	if n == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		q.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		q.tail = n.prev
	}

	n.next = nil
	n.prev = nil
	q.length--
}

// each walks from oldest to newest. Iteration stops when fn returns false.
// fn may remove the node it is given.
func (q *queue[T]) each(fn func(n *node[T]) bool) {
	for n := q.tail; n != nil; {
		prev := n.prev
		if !fn(n) {
			return
		}
		n = prev
	}
}
