package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// recorder collects task completion labels under a lock so tests can run
// multi-worker schedulers safely.
type recorder struct {
	mu   sync.Mutex
	runs []string
}

func (r *recorder) task(label string) Task {
	return func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.runs = append(r.runs, label)

		return nil
	}
}

func (r *recorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.runs
}

func TestScheduler(t *testing.T) {
	ctx := context.Background()

	t.Run("RunsInPriorityOrder", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		rec := &recorder{}

		for _, tc := range []struct {
			label    string
			priority int
		}{
			{"c", 30},
			{"a", 10},
			{"b", 20},
		} {
			_, err := s.Submit(tc.priority, rec.task(tc.label))
			require.NoError(t, err)
		}

		require.NoError(t, s.Run(ctx))

		assert.Equal(t, []string{"a", "b", "c"}, rec.order())
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("FIFOWithinPriority", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		rec := &recorder{}

		for _, label := range []string{"first", "second", "third"} {
			_, err := s.Submit(5, rec.task(label))
			require.NoError(t, err)
		}

		require.NoError(t, s.Run(ctx))

		assert.Equal(t, []string{"first", "second", "third"}, rec.order())
	})

	t.Run("ReprioritizeChangesOrder", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		rec := &recorder{}

		_, err = s.Submit(5, rec.task("one"))
		require.NoError(t, err)

		two, err := s.Submit(10, rec.task("two"))
		require.NoError(t, err)

		_, err = s.Submit(15, rec.task("three"))
		require.NoError(t, err)

		require.NoError(t, s.Reprioritize(two, 1))
		require.NoError(t, s.Run(ctx))

		assert.Equal(t, []string{"two", "one", "three"}, rec.order())
	})

	t.Run("ReprioritizeDemotes", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		rec := &recorder{}

		one, err := s.Submit(1, rec.task("one"))
		require.NoError(t, err)

		_, err = s.Submit(2, rec.task("two"))
		require.NoError(t, err)

		require.NoError(t, s.Reprioritize(one, 9))
		require.NoError(t, s.Run(ctx))

		assert.Equal(t, []string{"two", "one"}, rec.order())
	})

	t.Run("NilTask", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		_, err = s.Submit(1, nil)
		assert.ErrorIs(t, err, ErrNilTask)
	})

	t.Run("ReprioritizeUnknownTask", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		err = s.Reprioritize(42, 1)
		assert.ErrorIs(t, err, ErrUnknownTask)

		id, err := s.Submit(1, func(ctx context.Context) error { return nil })
		require.NoError(t, err)
		require.NoError(t, s.Run(ctx))

		// Dispatched tasks are no longer pending.
		err = s.Reprioritize(id, 1)
		assert.ErrorIs(t, err, ErrUnknownTask)
	})

	t.Run("TaskErrorStopsRun", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		errBoom := errors.New("boom")

		_, err = s.Submit(1, func(ctx context.Context) error { return errBoom })
		require.NoError(t, err)

		err = s.Run(ctx)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("SubmitDuringRun", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		rec := &recorder{}

		_, err = s.Submit(1, func(ctx context.Context) error {
			if _, err := s.Submit(1, rec.task("child")); err != nil {
				return err
			}

			return rec.task("parent")(ctx)
		})
		require.NoError(t, err)

		require.NoError(t, s.Run(ctx))

		assert.Equal(t, []string{"parent", "child"}, rec.order())
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("BoundedWorkers", func(t *testing.T) {
		s, err := New(func(o *Options) {
			o.Workers = 2
		})
		require.NoError(t, err)

		var (
			mu      sync.Mutex
			active  int
			highest int
		)

		task := func(ctx context.Context) error {
			mu.Lock()
			active++
			if active > highest {
				highest = active
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()

			return nil
		}

		for i := 0; i < 6; i++ {
			_, err := s.Submit(i, task)
			require.NoError(t, err)
		}

		require.NoError(t, s.Run(ctx))

		assert.LessOrEqual(t, highest, 2)
	})

	t.Run("RateLimitPacesDispatch", func(t *testing.T) {
		s, err := New(func(o *Options) {
			o.RateLimit = rate.Limit(100)
		})
		require.NoError(t, err)

		rec := &recorder{}

		for i := 0; i < 3; i++ {
			_, err := s.Submit(i, rec.task("t"))
			require.NoError(t, err)
		}

		start := time.Now()
		require.NoError(t, s.Run(ctx))
		elapsed := time.Since(start)

		// Burst 1 at 100/s: the second and third dispatches each wait 10ms.
		assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
		assert.Len(t, rec.order(), 3)
	})

	t.Run("ContextCancel", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = s.Submit(1, func(ctx context.Context) error { return nil })
		require.NoError(t, err)

		err = s.Run(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
