// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsAllocator(t *testing.T) {
	reg := prometheus.NewRegistry()
	alloc := NewMetricsAllocator(newMockAllocator(), reg)

	a := New(WithAllocator[int64](alloc))
	require.NoError(t, a.Append(1)) // capacity 1
	require.NoError(t, a.Append(2)) // capacity 2

	require.Equal(t, float64(24), testutil.ToFloat64(alloc.allocatedBytes))
	require.Equal(t, float64(2), testutil.ToFloat64(alloc.allocatedObjects))
	require.Equal(t, float64(16), testutil.ToFloat64(alloc.inuseBytes))
	require.Equal(t, float64(0), testutil.ToFloat64(alloc.failedAllocs))

	a.Release()
	require.Equal(t, float64(0), testutil.ToFloat64(alloc.inuseBytes))

	n, err := testutil.GatherAndCount(reg,
		"dynarray_allocated_bytes_total",
		"dynarray_allocated_objects_total",
		"dynarray_failed_allocations_total",
		"dynarray_inuse_bytes",
	)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestMetricsAllocatorFailures(t *testing.T) {
	mock := newMockAllocator()
	mock.refuseAfter = 1
	alloc := NewMetricsAllocator(mock, prometheus.NewRegistry())

	a := New(WithAllocator[int32](alloc))
	require.NoError(t, a.Append(1))
	require.ErrorIs(t, a.Append(2), ErrAllocation)
	require.Equal(t, []int32{1}, a.Slice())

	require.Equal(t, float64(1), testutil.ToFloat64(alloc.failedAllocs))
	require.Equal(t, float64(1), testutil.ToFloat64(alloc.allocatedObjects))
	require.Equal(t, float64(4), testutil.ToFloat64(alloc.inuseBytes))
}

func TestMetricsAllocatorReset(t *testing.T) {
	alloc := NewMetricsAllocator(NewMonotonicAllocator(), nil)
	_, err := NewWithLen(100, WithAllocator[byte](alloc))
	require.NoError(t, err)
	require.Equal(t, 100, alloc.Len())
	require.Equal(t, float64(100), testutil.ToFloat64(alloc.inuseBytes))

	alloc.Reset()
	require.Equal(t, 0, alloc.Len())
	require.Equal(t, 100, alloc.Peak())
	require.Equal(t, float64(0), testutil.ToFloat64(alloc.inuseBytes))
	require.Equal(t, float64(100), testutil.ToFloat64(alloc.allocatedBytes))
}
