package lfucache

import (
	"reflect"
	"testing"
)

func queueValues(q *queue[int]) []int {
	var out []int
	q.each(func(n *node[int]) bool {
		out = append(out, n.value)
		return true
	})
	return out
}

func TestQueueOldestFirst(t *testing.T) {
	q := newQueue[int]()
	q.pushToFront(1)
	q.pushToFront(2)
	q.pushToFront(3)

	if q.len() != 3 {
		t.Errorf("Expected queue length to be 3, got %d", q.len())
	}
	if got := q.oldest().value; got != 1 {
		t.Errorf("Expected oldest to be 1, got %d", got)
	}
	if got := queueValues(q); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Expected [1 2 3], got %v", got)
	}
}

func TestQueueRemove(t *testing.T) {
	q := newQueue[int]()
	n1 := q.pushToFront(1)
	n2 := q.pushToFront(2)
	n3 := q.pushToFront(3)

	q.remove(n2)
	if got := queueValues(q); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Expected [1 3] after removing middle, got %v", got)
	}

	q.remove(n1)
	if got := q.oldest().value; got != 3 {
		t.Errorf("Expected oldest to be 3, got %d", got)
	}

	q.remove(n3)
	if q.len() != 0 || q.oldest() != nil || q.head != nil {
		t.Errorf("Expected empty queue, got len %d", q.len())
	}

	q.remove(nil)
	if q.len() != 0 {
		t.Errorf("Expected removing nil to be a no-op")
	}
}

func TestQueueEachStopsAndAllowsRemoval(t *testing.T) {
	q := newQueue[int]()
	for i := 1; i <= 5; i++ {
		q.pushToFront(i)
	}

	var seen []int
	q.each(func(n *node[int]) bool {
		if n.value > 3 {
			return false
		}
		seen = append(seen, n.value)
		q.remove(n)
		return true
	})

	if !reflect.DeepEqual(seen, []int{1, 2, 3}) {
		t.Errorf("Expected to visit [1 2 3], got %v", seen)
	}
	if got := queueValues(q); !reflect.DeepEqual(got, []int{4, 5}) {
		t.Errorf("Expected [4 5] to remain, got %v", got)
	}
}
