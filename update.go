package pairq

import "time"

// Update replaces the item at a handle with a new one. The old node is
// unlinked from the tree entirely, its children are merged back in its
// place, its handle goes stale, and the new item is inserted fresh. The
// handle of the new node is returned; the queue size is unchanged.
//
// The new item's key may decrease or increase relative to the old one.
func (q *Queue[T]) Update(h Handle, item T) (Handle, error) {
	if q.compare == nil {
		return Handle{}, ErrNotInitialized
	}
	start := time.Now()
	nh, err := q.update(h, item)
	q.metrics.RecordUpdate(time.Since(start), err)
	q.logger.LogUpdate(err)
	return nh, err
}

func (q *Queue[T]) update(h Handle, item T) (Handle, error) {
	i, err := q.resolve(h)
	if err != nil {
		return Handle{}, err
	}
	q.unlink(i)
	q.freeSlot(i)
	q.length--
	return q.insert(item), nil
}

// unlink cuts node i out of the tree. Its children are collapsed with the
// two-pass reduction and the resulting tree takes i's place in the former
// parent's child list.
func (q *Queue[T]) unlink(i int32) {
	sub := q.mergePairs(q.slots[i].child)
	q.slots[i].child = none
	if i == q.head {
		q.head = sub
		return
	}

	parent := q.slots[i].parent
	next := q.slots[i].sibling

	repl := sub
	if repl == none {
		repl = next
	} else {
		q.slots[repl].parent = parent
		q.slots[repl].sibling = next
	}

	if q.slots[parent].child == i {
		q.slots[parent].child = repl
		return
	}
	prev := q.slots[parent].child
	for q.slots[prev].sibling != i {
		prev = q.slots[prev].sibling
	}
	q.slots[prev].sibling = repl
}
