// Package scheduler dispatches prioritized tasks over a bounded worker
// pool. Pending tasks wait in a pairing heap, so a task's priority can be
// changed cheaply at any point before it is dispatched.
package scheduler

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hupe1980/pairq"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrNilTask is returned when a nil task is submitted.
var ErrNilTask = errors.New("task must not be nil")

// ErrUnknownTask is returned when a task id does not name a pending task.
var ErrUnknownTask = errors.New("unknown task")

// Task is a unit of work. It receives a context that is cancelled when the
// run is aborted.
type Task func(ctx context.Context) error

// TaskID identifies a submitted task.
type TaskID uint64

// entry is a queue item ordered by priority, then by submission order.
type entry struct {
	priority int
	seq      TaskID
	task     Task
}

func compareEntries(a, b entry) int {
	if c := cmp.Compare(a.priority, b.priority); c != 0 {
		return c
	}

	return cmp.Compare(a.seq, b.seq)
}

// Options represents the options for configuring the scheduler.
type Options struct {
	// Workers caps the number of tasks running at once.
	Workers int

	// RateLimit throttles task dispatch. Zero means no throttle.
	RateLimit rate.Limit

	// RateBurst is the dispatch burst size when RateLimit is set.
	RateBurst int

	// Logger specifies an optional logger for dispatch diagnostics.
	Logger *slog.Logger
}

var DefaultOptions = Options{
	Workers:   1,
	RateBurst: 1,
}

// Scheduler runs submitted tasks in priority order, lowest priority value
// first, submission order within a priority. The zero value is not usable,
// use New.
//
// Submit and Reprioritize are safe to call while Run is draining the queue,
// including from inside a running task.
type Scheduler struct {
	mu      sync.Mutex
	queue   *pairq.Queue[entry]
	handles map[TaskID]pairq.Handle
	seq     TaskID
	limiter *rate.Limiter
	opts    Options
}

// New creates a new Scheduler.
func New(optFns ...func(o *Options)) (*Scheduler, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}

	queue, err := pairq.NewFunc(compareEntries)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		queue:   queue,
		handles: make(map[TaskID]pairq.Handle),
		opts:    opts,
	}

	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(opts.RateLimit, opts.RateBurst)
	}

	return s, nil
}

// Submit queues a task at the given priority and returns its id. Lower
// priority values are dispatched first.
func (s *Scheduler) Submit(priority int, task Task) (TaskID, error) {
	if task == nil {
		return 0, ErrNilTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.seq
	s.seq++

	h, err := s.queue.Insert(entry{priority: priority, seq: id, task: task})
	if err != nil {
		return 0, err
	}

	s.handles[id] = h

	if s.opts.Logger != nil {
		s.opts.Logger.Debug("task submitted",
			slog.Uint64("id", uint64(id)),
			slog.Int("priority", priority),
		)
	}

	return id, nil
}

// Reprioritize moves a pending task to a new priority. The task keeps its
// submission order for tie breaking. Raising and lowering the priority are
// both supported; a task that was already dispatched is unknown.
func (s *Scheduler) Reprioritize(id TaskID, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[id]
	if !ok {
		return ErrUnknownTask
	}

	e, err := s.queue.Item(h)
	if err != nil {
		return err
	}

	e.priority = priority

	nh, err := s.queue.Update(h, e)
	if err != nil {
		return err
	}

	s.handles[id] = nh

	if s.opts.Logger != nil {
		s.opts.Logger.Debug("task reprioritized",
			slog.Uint64("id", uint64(id)),
			slog.Int("priority", priority),
		)
	}

	return nil
}

// Pending returns the number of tasks waiting to be dispatched.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queue.Len()
}

// next dispatches the highest-priority pending task, or reports that the
// queue is drained.
func (s *Scheduler) next() (entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.queue.ExtractMin()
	if err != nil {
		return entry{}, false
	}

	delete(s.handles, e.seq)

	return e, true
}

// Run dispatches tasks in priority order until the queue is drained or the
// context is cancelled. At most Workers tasks run at once; when a rate
// limit is configured, dispatch waits for the limiter between tasks. The
// first task error cancels the remaining workers and is returned.
//
// A task's priority is fixed at dispatch: once a worker picks it up,
// Reprioritize no longer knows it. Tasks submitted while Run is draining
// are dispatched in the same run.
func (s *Scheduler) Run(ctx context.Context) error {
	// Running tasks may submit further tasks after the dispatch loop saw
	// an empty queue, so drain again until the queue stays empty.
	for s.Pending() > 0 {
		if err := s.drain(ctx); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return ctx.Err()
}

func (s *Scheduler) drain(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for {
		if gctx.Err() != nil {
			break
		}

		e, ok := s.next()
		if !ok {
			break
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(gctx); err != nil {
				break
			}
		}

		if s.opts.Logger != nil {
			s.opts.Logger.Debug("task dispatched",
				slog.Uint64("id", uint64(e.seq)),
				slog.Int("priority", e.priority),
			)
		}

		g.Go(func() error {
			return e.task(gctx)
		})
	}

	return g.Wait()
}
