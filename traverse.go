package pairq

import (
	"iter"
	"time"
)

// walk yields the slot indices of all live nodes. Traversal is iterative
// over an explicit stack; order is unspecified.
func (q *Queue[T]) walk() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		if q.head == none {
			return
		}
		stack := []int32{q.head}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(i) {
				return
			}
			for c := q.slots[i].child; c != none; c = q.slots[c].sibling {
				stack = append(stack, c)
			}
		}
	}
}

// All returns an iterator over every node in the queue. Order is
// unspecified and in particular not sorted. Breaking out of the range stops
// the traversal early. The queue must not be mutated while iterating.
func (q *Queue[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := range q.walk() {
			if !yield(q.handleFor(i), q.slots[i].item) {
				return
			}
		}
	}
}

// Handles returns the handles of all nodes in unspecified order. The length
// of the result always matches Len.
func (q *Queue[T]) Handles() []Handle {
	if q.length == 0 {
		return nil
	}
	out := make([]Handle, 0, q.length)
	for i := range q.walk() {
		out = append(out, q.handleFor(i))
	}
	return out
}

// Find returns a handle to the first node whose item equals the argument.
// Queues built with New match items with ==; queues built with NewFunc
// treat items as equal when compare returns zero. The search may visit the
// whole tree. A miss returns ErrNotFound; an empty queue returns ErrEmpty.
func (q *Queue[T]) Find(item T) (Handle, error) {
	if q.compare == nil {
		return Handle{}, ErrNotInitialized
	}
	start := time.Now()
	h, err := q.find(item)
	q.metrics.RecordFind(time.Since(start), err)
	q.logger.LogFind(err)
	return h, err
}

func (q *Queue[T]) find(item T) (Handle, error) {
	if q.head == none {
		return Handle{}, ErrEmpty
	}
	for i := range q.walk() {
		if q.eq(q.slots[i].item, item) {
			return q.handleFor(i), nil
		}
	}
	return Handle{}, ErrNotFound
}

// Item returns the item stored at the given handle.
func (q *Queue[T]) Item(h Handle) (T, error) {
	var zero T
	if q.compare == nil {
		return zero, ErrNotInitialized
	}
	i, err := q.resolve(h)
	if err != nil {
		return zero, err
	}
	return q.slots[i].item, nil
}
