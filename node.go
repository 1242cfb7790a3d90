package pairq

// none marks an absent slot link.
const none = int32(-1)

// node is a single tree node in the queue's slot arena. Tree edges are slot
// indices instead of pointers: child points at the first child, sibling at
// the next node in the parent's child list, parent back at the owner.
type node[T any] struct {
	item    T
	parent  int32
	child   int32
	sibling int32
	gen     uint32
}

// Handle is an opaque reference to a node in a Queue.
// It includes the slot generation to detect stale references.
//
// Handles are issued by Insert, Find and Update and stay valid until the
// node is removed. The zero Handle is invalid. A Handle is only meaningful
// for the queue that issued it.
type Handle struct {
	slot int32
	gen  uint32
}

// alloc takes a slot from the freelist, or grows the arena, and places item
// in it. Generations start at 1 so the zero Handle never resolves.
func (q *Queue[T]) alloc(item T) int32 {
	if q.free != none {
		i := q.free
		n := &q.slots[i]
		q.free = n.sibling
		n.item = item
		n.parent, n.child, n.sibling = none, none, none
		return i
	}
	q.slots = append(q.slots, node[T]{item: item, parent: none, child: none, sibling: none, gen: 1})
	return int32(len(q.slots) - 1)
}

// freeSlot returns slot i to the freelist. The generation bump invalidates
// every handle issued for the old tenant.
func (q *Queue[T]) freeSlot(i int32) {
	n := &q.slots[i]
	var zero T
	n.item = zero
	n.parent, n.child = none, none
	n.gen++
	n.sibling = q.free
	q.free = i
}

// handleFor mints a handle for the current tenant of slot i.
func (q *Queue[T]) handleFor(i int32) Handle {
	return Handle{slot: i, gen: q.slots[i].gen}
}

// resolve validates a handle and returns its slot index.
func (q *Queue[T]) resolve(h Handle) (int32, error) {
	if h.gen == 0 || h.slot < 0 {
		return none, ErrInvalidHandle
	}
	if int(h.slot) >= len(q.slots) || q.slots[h.slot].gen != h.gen {
		return none, ErrStaleHandle
	}
	return h.slot, nil
}
