// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterators(t *testing.T) {
	a := Of(1, 2, 3)
	require.NoError(t, a.Reserve(10))

	sum := 0
	for v := range a.Values() {
		sum += v
	}
	require.Equal(t, 6, sum)

	var indexes []int
	for i, v := range a.All() {
		require.Equal(t, a.Get(i), v)
		indexes = append(indexes, i)
	}
	require.Equal(t, []int{0, 1, 2}, indexes)

	var backward []int
	for _, v := range a.Backward() {
		backward = append(backward, v)
	}
	require.Equal(t, []int{3, 2, 1}, backward)
}

func TestIteratorsRestartAndStop(t *testing.T) {
	a := Of("a", "b", "c")
	values := a.Values()
	require.Equal(t, []string{"a", "b", "c"}, slices.Collect(values))
	require.Equal(t, []string{"a", "b", "c"}, slices.Collect(values))

	var first string
	for v := range values {
		first = v
		break
	}
	require.Equal(t, "a", first)

	for i := range a.Backward() {
		require.Equal(t, 2, i)
		break
	}
}

func TestIteratorsEmpty(t *testing.T) {
	a := New[int]()
	for range a.All() {
		t.Fatal("unexpected value")
	}
	for range a.Backward() {
		t.Fatal("unexpected value")
	}
}

func TestGrowthInvalidatesSlice(t *testing.T) {
	a := Of(1, 2)
	before := a.Slice()
	require.NoError(t, a.Append(3))

	// The old view still shows the storage it was taken from, which was vacated by growth.
	require.Equal(t, []int{0, 0}, before)
	require.Equal(t, []int{1, 2, 3}, a.Slice())
}
