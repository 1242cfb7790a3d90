package pairq

import (
	"cmp"
	"slices"
	"testing"

	"github.com/hupe1980/pairq/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	t.Run("VisitsEveryNodeOnce", func(t *testing.T) {
		q := New[int]()
		want := []int{5, 3, 8, 1, 9, 2, 7}
		for _, v := range want {
			_, err := q.Insert(v)
			require.NoError(t, err)
		}

		seen := make(map[Handle]int)
		var got []int
		for h, v := range q.All() {
			_, dup := seen[h]
			require.False(t, dup)
			seen[h] = v
			got = append(got, v)
		}

		require.Len(t, got, q.Len())
		slices.Sort(got)
		wantSorted := slices.Clone(want)
		slices.Sort(wantSorted)
		assert.Equal(t, wantSorted, got)
	})

	t.Run("ShortCircuit", func(t *testing.T) {
		q := New[int]()
		for i := 0; i < 10; i++ {
			_, err := q.Insert(i)
			require.NoError(t, err)
		}

		visited := 0
		for range q.All() {
			visited++
			if visited == 3 {
				break
			}
		}
		assert.Equal(t, 3, visited)
	})

	t.Run("Empty", func(t *testing.T) {
		q := New[int]()
		visited := 0
		for range q.All() {
			visited++
		}
		assert.Equal(t, 0, visited)
		assert.Nil(t, q.Handles())
	})
}

func TestHandles(t *testing.T) {
	rng := testutil.NewRNG(99)
	q := New[int]()

	for i := 0; i < 500; i++ {
		if q.Len() == 0 || rng.Intn(3) > 0 {
			_, err := q.Insert(rng.Intn(50))
			require.NoError(t, err)
		} else {
			_, err := q.ExtractMin()
			require.NoError(t, err)
		}
		require.Len(t, q.Handles(), q.Len())
	}

	for _, h := range q.Handles() {
		_, err := q.Item(h)
		require.NoError(t, err)
	}
}

func TestFind(t *testing.T) {
	t.Run("ReturnsInsertedNode", func(t *testing.T) {
		q := New[int]()
		var want Handle
		for _, v := range []int{4, 8, 15, 16, 23, 42} {
			h, err := q.Insert(v)
			require.NoError(t, err)
			if v == 23 {
				want = h
			}
		}

		got, err := q.Find(23)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		v, err := q.Item(got)
		require.NoError(t, err)
		assert.Equal(t, 23, v)
	})

	t.Run("NotFound", func(t *testing.T) {
		q := New[int]()
		_, err := q.Insert(1)
		require.NoError(t, err)

		_, err = q.Find(2)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EmptyQueue", func(t *testing.T) {
		q := New[int]()
		_, err := q.Find(1)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("CustomEquality", func(t *testing.T) {
		type job struct {
			name     string
			priority int
		}
		q, err := NewFunc(func(a, b job) int { return cmp.Compare(a.priority, b.priority) })
		require.NoError(t, err)

		_, err = q.Insert(job{name: "compact", priority: 3})
		require.NoError(t, err)

		// NewFunc queues match on compare()==0, so the name does not matter.
		h, err := q.Find(job{priority: 3})
		require.NoError(t, err)

		j, err := q.Item(h)
		require.NoError(t, err)
		assert.Equal(t, "compact", j.name)
	})
}

func TestItem(t *testing.T) {
	q := New[int]()
	h, err := q.Insert(7)
	require.NoError(t, err)

	v, err := q.Item(h)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = q.Item(Handle{})
	assert.ErrorIs(t, err, ErrInvalidHandle)

	_, err = q.ExtractMin()
	require.NoError(t, err)

	_, err = q.Item(h)
	assert.ErrorIs(t, err, ErrStaleHandle)
}
