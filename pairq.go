package pairq

import (
	"cmp"
	"time"
)

// CompareFunc defines the ordering for queue items. It returns a negative
// value when a sorts before b, zero when they are equal, and a positive
// value when a sorts after b.
type CompareFunc[T any] func(a, b T) int

// Queue is a pairing heap: a mergeable min-priority queue with cheap
// inserts and an in-place Update operation.
//
// Nodes live in a slot arena addressed by stable indices, so tree edges are
// int32 slots instead of pointers and removed nodes are recycled through a
// freelist. Every Handle carries the slot generation of the node it was
// issued for; using a handle after its node was removed fails with
// ErrStaleHandle instead of touching reused memory.
//
// A Queue is not safe for concurrent use. Callers that share a queue across
// goroutines must serialize access externally.
type Queue[T any] struct {
	compare CompareFunc[T]
	eq      func(a, b T) bool

	slots  []node[T]
	free   int32
	head   int32
	length int

	// scratch is reused across two-pass merges to avoid per-call allocation.
	scratch []int32

	metrics MetricsCollector
	logger  *Logger
}

// New creates a queue for item types with an intrinsic order, compared via
// cmp.Compare. Find matches items with ==.
func New[T cmp.Ordered](optFns ...Option) *Queue[T] {
	q, _ := NewFunc(func(a, b T) int { return cmp.Compare(a, b) }, optFns...)
	q.eq = func(a, b T) bool { return a == b }
	return q
}

// NewFunc creates a queue ordered by compare. Find treats items as equal
// when compare returns zero.
func NewFunc[T any](compare CompareFunc[T], optFns ...Option) (*Queue[T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}
	o := applyOptions(optFns)
	q := &Queue[T]{
		compare: compare,
		eq:      func(a, b T) bool { return compare(a, b) == 0 },
		free:    none,
		head:    none,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
	if o.capacity > 0 {
		q.slots = make([]node[T], 0, o.capacity)
	}
	return q, nil
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int { return q.length }

// Insert adds an item to the queue and returns a handle to its node.
func (q *Queue[T]) Insert(item T) (Handle, error) {
	if q.compare == nil {
		return Handle{}, ErrNotInitialized
	}
	start := time.Now()
	h := q.insert(item)
	q.metrics.RecordInsert(time.Since(start), nil)
	q.logger.LogInsert(q.length, nil)
	return h, nil
}

func (q *Queue[T]) insert(item T) Handle {
	i := q.alloc(item)
	q.head = q.link(q.head, i)
	q.length++
	return q.handleFor(i)
}

// Min returns the smallest item without removing it.
func (q *Queue[T]) Min() (T, error) {
	var zero T
	if q.compare == nil {
		return zero, ErrNotInitialized
	}
	if q.head == none {
		return zero, ErrEmpty
	}
	return q.slots[q.head].item, nil
}

// ExtractMin removes and returns the smallest item.
func (q *Queue[T]) ExtractMin() (T, error) {
	if q.compare == nil {
		var zero T
		return zero, ErrNotInitialized
	}
	start := time.Now()
	item, err := q.extractMin()
	q.metrics.RecordExtract(time.Since(start), err)
	q.logger.LogExtract(q.length, err)
	return item, err
}

func (q *Queue[T]) extractMin() (T, error) {
	if q.head == none {
		var zero T
		return zero, ErrEmpty
	}
	root := q.head
	item := q.slots[root].item
	q.head = q.mergePairs(q.slots[root].child)
	q.freeSlot(root)
	q.length--
	return item, nil
}

// link melds two trees and returns the root of the combined tree. The loser
// becomes the first child of the winner; ties keep a on top. Either side
// may be none.
func (q *Queue[T]) link(a, b int32) int32 {
	if a == none {
		return b
	}
	if b == none {
		return a
	}
	if q.compare(q.slots[a].item, q.slots[b].item) > 0 {
		a, b = b, a
	}
	q.slots[b].parent = a
	q.slots[b].sibling = q.slots[a].child
	q.slots[a].child = b
	return a
}

// mergePairs collapses a child list into a single tree using the classic
// two-pass reduction: adjacent siblings are linked left to right, with an
// odd trailing tree carried over, then the survivors are folded right to
// left into the final root. The returned root is fully detached.
func (q *Queue[T]) mergePairs(first int32) int32 {
	if first == none {
		return none
	}
	pairs := q.scratch[:0]
	for i := first; i != none; {
		a := i
		b := q.slots[a].sibling
		next := none
		if b != none {
			next = q.slots[b].sibling
			q.slots[b].parent, q.slots[b].sibling = none, none
		}
		q.slots[a].parent, q.slots[a].sibling = none, none
		pairs = append(pairs, q.link(a, b))
		i = next
	}
	root := pairs[len(pairs)-1]
	for k := len(pairs) - 2; k >= 0; k-- {
		root = q.link(pairs[k], root)
	}
	q.scratch = pairs[:0]
	return root
}

// Stats is a snapshot of queue storage state.
// Slots minus Free always equals Len.
type Stats struct {
	Len   int // live items
	Slots int // allocated slots, live plus free
	Free  int // slots currently on the freelist
}

// Stats reports storage counters for diagnostics.
func (q *Queue[T]) Stats() Stats {
	free := 0
	for i := q.free; i != none; i = q.slots[i].sibling {
		free++
	}
	return Stats{Len: q.length, Slots: len(q.slots), Free: free}
}
