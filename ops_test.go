package flat_test

import (
	"slices"
	"testing"

	"github.com/teenjuna/flat"
	"github.com/teenjuna/flat/alloc"
	"github.com/teenjuna/flat/internal/testing/require"
)

func TestAppend(t *testing.T) {
	b := of(t, 1, 2)
	require.Nil(t, b.Append(of(t, 3, 4)))
	require.Equal(t, b.Items(), []int{1, 2, 3, 4})

	require.Nil(t, b.Append(flat.New[int]()))
	require.Equal(t, b.Items(), []int{1, 2, 3, 4})

	empty := flat.New[int]()
	require.Nil(t, empty.Append(of(t, 5)))
	require.Equal(t, empty.Items(), []int{5})
}

func TestPrepend(t *testing.T) {
	b := of(t, 3, 4)
	require.Nil(t, b.Prepend(of(t, 1, 2)))
	require.Equal(t, b.Items(), []int{1, 2, 3, 4})

	empty := flat.New[int]()
	require.Nil(t, empty.Prepend(of(t, 5)))
	require.Equal(t, empty.Items(), []int{5})
}

func TestInsert(t *testing.T) {
	d := of(t, 0, 0)
	require.Nil(t, d.Insert(1, of(t, -1, -1)))
	require.Equal(t, d.Len(), 4)
	require.Equal(t, d.Items(), []int{0, -1, -1, 0})

	for i := range 4 {
		d := of(t, 1, 2, 3)
		require.Nil(t, d.Insert(i, of(t, 8, 9)))
		require.Equal(t, d.Items(), slices.Insert([]int{1, 2, 3}, i, 8, 9))
	}
}

func TestSelfOperands(t *testing.T) {
	orig := []int{1, 2, 3, 4}

	t.Run("Append", func(t *testing.T) {
		b := of(t, orig...)
		require.Nil(t, b.Append(b))
		require.Equal(t, b.Items(), []int{1, 2, 3, 4, 1, 2, 3, 4})
	})

	t.Run("Prepend", func(t *testing.T) {
		b := of(t, orig...)
		require.Nil(t, b.Prepend(b))
		require.Equal(t, b.Items(), []int{1, 2, 3, 4, 1, 2, 3, 4})
	})

	t.Run("Insert", func(t *testing.T) {
		for i := range len(orig) + 1 {
			b := of(t, orig...)
			require.Nil(t, b.Insert(i, b))
			require.Equal(t, b.Items(), slices.Insert(slices.Clone(orig), i, orig...))
		}
	})
}

func TestRemove(t *testing.T) {
	d := of(t, 0, 1, 2, 3)
	require.Nil(t, d.Remove(1, 2))
	require.Equal(t, d.Len(), 2)
	require.Equal(t, d.Items(), []int{0, 3})

	require.Nil(t, d.Remove(1, 0))
	require.Equal(t, d.Items(), []int{0, 3})

	require.Nil(t, d.Remove(0, 2))
	require.True(t, d.Empty())
	require.Nil(t, d.Items())
}

func TestRemoveRollback(t *testing.T) {
	for start := range 5 {
		for size := 1; size <= 5-start-1; size++ {
			d := ofWith[int](t, failing[int](growOnly[int]), 0, 1, 2, 3, 4)

			err := d.Remove(start, size)
			require.ErrorIs(t, err, alloc.ErrOutOfMemory)
			require.Equal(t, d.Items(), []int{0, 1, 2, 3, 4})
		}
	}
}

func TestSlice(t *testing.T) {
	d := of(t, 0, 1, 2, 3)

	d2, err := d.Slice(1, 2)
	require.Nil(t, err)
	require.Equal(t, d2.Items(), []int{1, 2})
	require.Equal(t, d.Items(), []int{0, 1, 2, 3})

	d2.Set(0, 9)
	require.Equal(t, d.Get(1), 1)

	empty, err := d.Slice(4, 0)
	require.Nil(t, err)
	require.True(t, empty.Empty())
}

func TestSliceFailure(t *testing.T) {
	budget := alloc.NewBudget(5 * 8)
	d := ofWith[int64](t, alloc.Budgeted[int64](alloc.Heap[int64]{}, budget), 0, 1, 2, 3)

	d2, err := d.Slice(0, 2)
	require.ErrorIs(t, err, alloc.ErrBudgetExceeded)
	require.Nil(t, d2)
	require.Equal(t, d.Items(), []int64{0, 1, 2, 3})

	d2, err = d.Slice(0, 1)
	require.Nil(t, err)
	require.Equal(t, d2.Items(), []int64{0})
}

func TestExtract(t *testing.T) {
	d := of(t, 0, 1, 2, 3)

	e, err := d.Extract(1, 2)
	require.Nil(t, err)
	require.Equal(t, e.Items(), []int{1, 2})
	require.Equal(t, d.Items(), []int{0, 3})
}

func TestExtractFailure(t *testing.T) {
	counter := alloc.NewCounter()
	a := alloc.Counting[int](failing[int](growOnly[int]), counter)
	d := ofWith[int](t, a, 0, 1, 2, 3)
	live := counter.Stats().LiveBytes

	e, err := d.Extract(1, 2)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	require.Nil(t, e)
	require.Equal(t, d.Items(), []int{0, 1, 2, 3})

	// The copy made before the failed removal has been released.
	stats := counter.Stats()
	require.Equal(t, stats.Frees, int64(1))
	require.Equal(t, stats.LiveBytes, live)
}

func TestMoveSlice(t *testing.T) {
	t.Run("Whole", func(t *testing.T) {
		counter := alloc.NewCounter()
		d := ofWith[int](t, alloc.Counting[int](alloc.Heap[int]{}, counter), 0, 1, 2)
		counter.Reset()

		m, err := d.MoveSlice(0, 3)
		require.Nil(t, err)
		require.Equal(t, m.Items(), []int{0, 1, 2})
		require.True(t, d.Empty())
		require.Equal(t, counter.Stats(), alloc.Stats{})
	})

	t.Run("Part", func(t *testing.T) {
		d := of(t, 0, 1, 2, 3)

		m, err := d.MoveSlice(2, 2)
		require.Nil(t, err)
		require.Equal(t, m.Items(), []int{2, 3})
		require.Equal(t, d.Items(), []int{0, 1})
	})
}

func TestCompositeFailure(t *testing.T) {
	budget := alloc.NewBudget(4 * 8)
	d := ofWith[int64](t, alloc.Budgeted[int64](alloc.Heap[int64]{}, budget), 1, 2)
	other := of[int64](t, 3)

	require.ErrorIs(t, d.Append(other), alloc.ErrBudgetExceeded)
	require.ErrorIs(t, d.Prepend(other), alloc.ErrBudgetExceeded)
	require.ErrorIs(t, d.Insert(1, other), alloc.ErrBudgetExceeded)
	require.Equal(t, d.Items(), []int64{1, 2})
	require.Equal(t, budget.Used(), int64(2*8))
}

func TestOpsValidation(t *testing.T) {
	d := of(t, 0, 1, 2)

	require.PanicWithError(t, "index out of range", func() {
		_ = d.Insert(4, of(t, 1))
	})

	require.PanicWithError(t, "index out of range", func() {
		_ = d.Insert(-1, of(t, 1))
	})

	require.PanicWithError(t, "range out of bounds", func() {
		_ = d.Remove(2, 2)
	})

	require.PanicWithError(t, "range out of bounds", func() {
		_, _ = d.Slice(0, 4)
	})

	require.PanicWithError(t, "range out of bounds", func() {
		_, _ = d.Extract(-1, 1)
	})

	require.PanicWithError(t, "range out of bounds", func() {
		_, _ = d.MoveSlice(1, 3)
	})

	require.Equal(t, d.Items(), []int{0, 1, 2})
}
