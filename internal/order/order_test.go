package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContainer is a Container over a name→order map, standing in for one
// column of tasks (or the board's columns) in these tests.
type fakeContainer struct {
	orders map[string]int

	sizeErr  error
	shiftErr error
	shifts   int
}

func newFakeContainer(names ...string) *fakeContainer {
	c := &fakeContainer{orders: make(map[string]int)}
	for i, n := range names {
		c.orders[n] = i
	}
	return c
}

func (c *fakeContainer) Size(ctx context.Context) (int, error) {
	if c.sizeErr != nil {
		return 0, c.sizeErr
	}
	return len(c.orders), nil
}

func (c *fakeContainer) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	if c.shiftErr != nil {
		return c.shiftErr
	}
	c.shifts++
	for n, o := range c.orders {
		if o >= lo && o <= hi {
			c.orders[n] = o + delta
		}
	}
	return nil
}

func (c *fakeContainer) snapshot() map[string]int {
	out := make(map[string]int, len(c.orders))
	for n, o := range c.orders {
		out[n] = o
	}
	return out
}

func (c *fakeContainer) orderList() []int {
	out := make([]int, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o)
	}
	return out
}

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("empty container", func(t *testing.T) {
		c := newFakeContainer()
		at, err := Append(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, 0, at)
		assert.Equal(t, 0, c.shifts, "append must not shift siblings")
	})

	t.Run("after existing tail", func(t *testing.T) {
		c := newFakeContainer("a", "b", "c")
		at, err := Append(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, 3, at)
		assert.Equal(t, 0, c.shifts)
	})

	t.Run("size failure", func(t *testing.T) {
		c := newFakeContainer()
		c.sizeErr = errors.New("boom")
		_, err := Append(ctx, c)
		assert.ErrorIs(t, err, c.sizeErr)
	})
}

func TestInsertAt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		existing   []string
		at         int
		wantAt     int
		wantOrders map[string]int
	}{
		{
			name:       "head of populated container",
			existing:   []string{"a", "b", "c"},
			at:         0,
			wantAt:     0,
			wantOrders: map[string]int{"a": 1, "b": 2, "c": 3},
		},
		{
			name:       "middle shifts only the tail",
			existing:   []string{"a", "b", "c"},
			at:         1,
			wantAt:     1,
			wantOrders: map[string]int{"a": 0, "b": 2, "c": 3},
		},
		{
			name:       "exactly past the tail appends",
			existing:   []string{"a", "b"},
			at:         2,
			wantAt:     2,
			wantOrders: map[string]int{"a": 0, "b": 1},
		},
		{
			name:       "far past the tail clamps to append",
			existing:   []string{"a", "b"},
			at:         99,
			wantAt:     2,
			wantOrders: map[string]int{"a": 0, "b": 1},
		},
		{
			name:       "negative clamps to head",
			existing:   []string{"a"},
			at:         -5,
			wantAt:     0,
			wantOrders: map[string]int{"a": 1},
		},
		{
			name:       "empty container",
			existing:   nil,
			at:         0,
			wantAt:     0,
			wantOrders: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeContainer(tt.existing...)
			at, err := InsertAt(ctx, c, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAt, at)
			assert.Equal(t, tt.wantOrders, c.snapshot())

			// Writing the new entity at the returned position must restore
			// density.
			c.orders["new"] = at
			assert.True(t, IsDense(c.orderList()))
		})
	}

	t.Run("shift failure propagates", func(t *testing.T) {
		c := newFakeContainer("a", "b")
		c.shiftErr = errors.New("deadlock")
		_, err := InsertAt(ctx, c, 0)
		assert.ErrorIs(t, err, c.shiftErr)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		existing   []string
		deleted    string
		wantOrders map[string]int
	}{
		{
			name:       "head closes the gap",
			existing:   []string{"a", "b", "c"},
			deleted:    "a",
			wantOrders: map[string]int{"b": 0, "c": 1},
		},
		{
			name:       "middle shifts only the tail",
			existing:   []string{"a", "b", "c"},
			deleted:    "b",
			wantOrders: map[string]int{"a": 0, "c": 1},
		},
		{
			name:       "tail shifts nothing",
			existing:   []string{"a", "b", "c"},
			deleted:    "c",
			wantOrders: map[string]int{"a": 0, "b": 1},
		},
		{
			name:       "last entity leaves an empty container",
			existing:   []string{"a"},
			deleted:    "a",
			wantOrders: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeContainer(tt.existing...)
			at := c.orders[tt.deleted]
			delete(c.orders, tt.deleted)

			require.NoError(t, Remove(ctx, c, at))
			assert.Equal(t, tt.wantOrders, c.snapshot())
			assert.True(t, IsDense(c.orderList()))
		})
	}
}

func TestReposition(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		existing   []string
		entity     string
		to         int
		wantAt     int
		wantOrders map[string]int
	}{
		{
			name:     "toward the head shifts the slice between",
			existing: []string{"a", "b", "c", "d"},
			entity:   "d",
			to:       1,
			wantAt:   1,
			wantOrders: map[string]int{
				"a": 0, "d": 1, "b": 2, "c": 3,
			},
		},
		{
			name:     "toward the tail shifts the slice between",
			existing: []string{"a", "b", "c", "d"},
			entity:   "a",
			to:       2,
			wantAt:   2,
			wantOrders: map[string]int{
				"b": 0, "c": 1, "a": 2, "d": 3,
			},
		},
		{
			name:       "current position is a no-op",
			existing:   []string{"a", "b", "c"},
			entity:     "b",
			to:         1,
			wantAt:     1,
			wantOrders: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:       "singleton container is a no-op",
			existing:   []string{"a"},
			entity:     "a",
			to:         0,
			wantAt:     0,
			wantOrders: map[string]int{"a": 0},
		},
		{
			name:       "past the tail clamps to the last position",
			existing:   []string{"a", "b", "c"},
			entity:     "a",
			to:         99,
			wantAt:     2,
			wantOrders: map[string]int{"b": 0, "c": 1, "a": 2},
		},
		{
			name:       "negative clamps to the head",
			existing:   []string{"a", "b", "c"},
			entity:     "c",
			to:         -1,
			wantAt:     0,
			wantOrders: map[string]int{"c": 0, "a": 1, "b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeContainer(tt.existing...)
			from := c.orders[tt.entity]

			at, err := Reposition(ctx, c, from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAt, at)

			// The caller's follow-up write.
			c.orders[tt.entity] = at
			assert.Equal(t, tt.wantOrders, c.snapshot())
			assert.True(t, IsDense(c.orderList()))
		})
	}

	t.Run("no-op performs no shift", func(t *testing.T) {
		c := newFakeContainer("a", "b")
		_, err := Reposition(ctx, c, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, c.shifts)
	})
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(nil))
	assert.True(t, IsDense([]int{0}))
	assert.True(t, IsDense([]int{2, 0, 1}))
	assert.False(t, IsDense([]int{1, 2, 3}), "gap at zero")
	assert.False(t, IsDense([]int{0, 0, 1}), "duplicate")
	assert.False(t, IsDense([]int{0, -1}), "negative")
	assert.False(t, IsDense([]int{0, 2}), "gap in the middle")
}
