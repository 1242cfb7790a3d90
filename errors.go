package pairq

import "errors"

var (
	// ErrEmpty is returned when an operation requires a non-empty queue.
	ErrEmpty = errors.New("empty queue")

	// ErrNotFound is returned when an item is not found.
	ErrNotFound = errors.New("not found")

	// ErrNilCompare is returned when NewFunc is called with a nil compare function.
	ErrNilCompare = errors.New("compare function must not be nil")

	// ErrNotInitialized is returned when a queue was not created with New or NewFunc.
	ErrNotInitialized = errors.New("queue not initialized (use New or NewFunc)")

	// ErrInvalidHandle is returned when the zero Handle is used.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrStaleHandle is returned when a handle refers to a node that has since
	// been removed from the queue.
	ErrStaleHandle = errors.New("stale handle")
)
