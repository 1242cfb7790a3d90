// Package eventsim implements a discrete event simulator. Pending events
// are kept in a pairing heap ordered by virtual time, so simulated delays
// cost nothing to wait out.
package eventsim

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/pairq"
)

// ErrNilAction is returned when a nil action is scheduled.
var ErrNilAction = errors.New("action must not be nil")

// Action is the callback fired when an event becomes due. It receives the
// current simulation time and may schedule further events.
type Action func(now time.Duration)

// EventID identifies a scheduled event.
type EventID uint

// event is a queue entry ordered by due time, then by scheduling order.
type event struct {
	at     time.Duration
	seq    EventID
	action Action
}

func compareEvents(a, b event) int {
	if c := cmp.Compare(a.at, b.at); c != 0 {
		return c
	}

	return cmp.Compare(a.seq, b.seq)
}

// Options represents the options for configuring the simulator.
type Options struct {
	// StartTime specifies the initial simulation clock.
	StartTime time.Duration

	// Logger specifies an optional logger for event diagnostics.
	Logger *slog.Logger
}

var DefaultOptions = Options{}

// Simulator runs scheduled actions in virtual time order. The zero value
// is not usable, use New.
//
// Simulator is not safe for concurrent use.
type Simulator struct {
	queue     *pairq.Queue[event]
	now       time.Duration
	seq       EventID
	cancelled bitset.BitSet
	done      bitset.BitSet
	opts      Options
}

// New creates a new Simulator.
func New(optFns ...func(o *Options)) (*Simulator, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	queue, err := pairq.NewFunc(compareEvents)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		queue: queue,
		now:   opts.StartTime,
		opts:  opts,
	}, nil
}

// At schedules an action to fire at the given absolute simulation time.
// Times in the past fire at the current clock.
func (s *Simulator) At(at time.Duration, action Action) (EventID, error) {
	if action == nil {
		return 0, ErrNilAction
	}

	if at < s.now {
		at = s.now
	}

	id := s.seq
	s.seq++

	if _, err := s.queue.Insert(event{at: at, seq: id, action: action}); err != nil {
		return 0, err
	}

	if s.opts.Logger != nil {
		s.opts.Logger.Debug("event scheduled",
			slog.Uint64("id", uint64(id)),
			slog.Duration("at", at),
		)
	}

	return id, nil
}

// After schedules an action to fire the given delay after the current
// simulation time. Negative delays fire at the current clock.
func (s *Simulator) After(delay time.Duration, action Action) (EventID, error) {
	if delay < 0 {
		delay = 0
	}

	return s.At(s.now+delay, action)
}

// Cancel marks a pending event as cancelled so it never fires. It returns
// false if the event is unknown, already fired or already cancelled.
func (s *Simulator) Cancel(id EventID) bool {
	if id >= s.seq {
		return false
	}

	if s.done.Test(uint(id)) || s.cancelled.Test(uint(id)) {
		return false
	}

	s.cancelled.Set(uint(id))

	if s.opts.Logger != nil {
		s.opts.Logger.Debug("event cancelled", slog.Uint64("id", uint64(id)))
	}

	return true
}

// Now returns the current simulation time.
func (s *Simulator) Now() time.Duration {
	return s.now
}

// Pending returns the number of scheduled events that have neither fired
// nor been cancelled.
func (s *Simulator) Pending() int {
	return s.queue.Len() - int(s.cancelled.Count())
}

// Run fires events in time order until no events remain or ctx is
// cancelled. Actions may schedule further events during the run.
func (s *Simulator) Run(ctx context.Context) error {
	return s.run(ctx, false, 0)
}

// RunUntil fires events in time order up to and including the given
// simulation time. The clock advances to until even when no event is due,
// so consecutive bounded runs observe a monotonic clock.
func (s *Simulator) RunUntil(ctx context.Context, until time.Duration) error {
	return s.run(ctx, true, until)
}

func (s *Simulator) run(ctx context.Context, bounded bool, until time.Duration) error {
	for s.queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, err := s.queue.Min()
		if err != nil {
			return err
		}

		if bounded && next.at > until {
			break
		}

		e, err := s.queue.ExtractMin()
		if err != nil {
			return err
		}

		// Cancelled events stay queued until they become due, then they
		// are dropped here.
		if s.cancelled.Test(uint(e.seq)) {
			s.cancelled.Clear(uint(e.seq))
			s.done.Set(uint(e.seq))

			continue
		}

		s.done.Set(uint(e.seq))
		s.now = e.at

		if s.opts.Logger != nil {
			s.opts.Logger.Debug("event fired",
				slog.Uint64("id", uint64(e.seq)),
				slog.Duration("at", e.at),
			)
		}

		e.action(s.now)
	}

	if bounded && until > s.now {
		s.now = until
	}

	return nil
}
