// Package pairq provides a pairing heap for Go: a mergeable min-priority
// queue with cheap inserts and an in-place update operation.
//
// A pairing heap is a multiway tree with the smallest item at the root.
// Insert and Min are O(1); ExtractMin runs the classic two-pass pairing
// reduction over the root's children and is O(log n) amortized. Update
// removes a node from anywhere in the tree and reinserts its replacement
// in one step, which makes the queue a good fit for algorithms that adjust
// priorities while they run, such as shortest-path search, event-driven
// simulation and job scheduling.
//
// # Quick Start
//
// Intrinsically ordered items:
//
//	q := pairq.New[int]()
//	q.Insert(3)
//	q.Insert(1)
//	q.Insert(2)
//
//	for q.Len() > 0 {
//	    v, _ := q.ExtractMin()
//	    fmt.Println(v) // 1, 2, 3
//	}
//
// Custom ordering:
//
//	type task struct {
//	    name     string
//	    priority int
//	}
//
//	q, _ := pairq.NewFunc(func(a, b task) int {
//	    return cmp.Compare(a.priority, b.priority)
//	})
//
// # Handles
//
// Insert returns a Handle for the new node. Handles stay valid until the
// node is removed and are checked against a per-slot generation, so using
// one after its node is gone fails with ErrStaleHandle:
//
//	h, _ := q.Insert(task{name: "reindex", priority: 10})
//	h, _ = q.Update(h, task{name: "reindex", priority: 1}) // moves to the front
//
// Find locates a node by item when no handle was kept. It traverses the
// tree, so prefer holding on to handles in hot paths:
//
//	h, err := q.Find(task{name: "reindex", priority: 1})
//	if errors.Is(err, pairq.ErrNotFound) {
//	    // not queued
//	}
//
// # Iteration
//
// All streams every node in unspecified order and stops early when the
// range body breaks; Handles exports a snapshot of the node handles:
//
//	for h, v := range q.All() {
//	    _ = h
//	    _ = v
//	}
//
// # Observability
//
// Structured logging and metrics hooks are off by default and enabled
// through options:
//
//	metrics := &pairq.BasicMetricsCollector{}
//	q := pairq.New[int](
//	    pairq.WithLogger(pairq.NewTextLogger(slog.LevelDebug)),
//	    pairq.WithMetricsCollector(metrics),
//	)
//
// # Concurrency
//
// A Queue is not safe for concurrent use; callers must serialize access.
// The scheduler subpackage shows the intended pattern of guarding a shared
// queue with a mutex.
package pairq
