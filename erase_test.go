// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEraseRangeMiddle(t *testing.T) {
	a := Of(1, 2, 3, 4)
	pos, err := a.EraseRange(1, 3)
	require.NoError(t, err)
	require.Equal(t, 1, pos)
	require.Equal(t, 2, a.Len())
	require.Equal(t, []int{1, 4}, a.Slice())
	require.Equal(t, 4, a.Cap())
}

func TestEraseRangeBounds(t *testing.T) {
	tests := []struct {
		name        string
		first, last int
		expected    []int
		err         bool
	}{
		{name: "empty range", first: 2, last: 2, expected: []int{1, 2, 3, 4}},
		{name: "empty range at end", first: 4, last: 4, expected: []int{1, 2, 3, 4}},
		{name: "prefix", first: 0, last: 2, expected: []int{3, 4}},
		{name: "suffix", first: 2, last: 4, expected: []int{1, 2}},
		{name: "everything", first: 0, last: 4, expected: nil},
		{name: "negative first", first: -1, last: 2, expected: []int{1, 2, 3, 4}, err: true},
		{name: "inverted", first: 3, last: 2, expected: []int{1, 2, 3, 4}, err: true},
		{name: "past end", first: 2, last: 5, expected: []int{1, 2, 3, 4}, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Of(1, 2, 3, 4)
			_, err := a.EraseRange(tt.first, tt.last)
			if tt.err {
				require.ErrorIs(t, err, ErrIndexOutOfRange)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.expected, a.Slice())
		})
	}
}

func TestEraseDestroysErasedValuesOnce(t *testing.T) {
	l := newLifetimes()
	a, err := FromSlice([]int{1, 2, 3, 4, 5}, l.options()...)
	require.NoError(t, err)

	_, err = a.EraseRange(1, 3)
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 5}, a.Slice())
	require.Equal(t, map[int]int{2: 1, 3: 1}, l.destroyed)

	// Vacated slots are uninitialized.
	for _, v := range a.buf.slots[a.Len():] {
		require.Zero(t, v)
	}

	a.Release()
	require.Equal(t, map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, l.destroyed)
}

func TestErase(t *testing.T) {
	a := Of("a", "b", "c")
	pos, err := a.Erase(1)
	require.NoError(t, err)
	require.Equal(t, 1, pos)
	require.Equal(t, []string{"a", "c"}, a.Slice())

	_, err = a.Erase(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = a.Erase(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, []string{"a", "c"}, a.Slice())
}

func TestPopBackDestroys(t *testing.T) {
	l := newLifetimes()
	a, err := FromSlice([]int{1, 2}, l.options()...)
	require.NoError(t, err)

	a.PopBack()
	require.Equal(t, []int{1}, a.Slice())
	a.PopBack()
	a.PopBack()
	require.True(t, a.Empty())
	require.Equal(t, 2, a.Cap())
	require.Equal(t, map[int]int{1: 1, 2: 1}, l.destroyed)
}

func TestClear(t *testing.T) {
	l := newLifetimes()
	a, err := FromSlice([]int{1, 2, 3}, l.options()...)
	require.NoError(t, err)

	a.Clear()
	require.True(t, a.Empty())
	require.Equal(t, 3, a.Cap())
	require.Equal(t, 3, l.totalDestroyed())

	require.NoError(t, a.Append(4))
	require.Equal(t, []int{4}, a.Slice())
	require.Equal(t, 3, a.Cap())
}
