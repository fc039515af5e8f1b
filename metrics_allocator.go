// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsAllocator wraps an Allocator and reports its traffic as Prometheus metrics.
type MetricsAllocator struct {
	upstream Allocator

	allocatedBytes   prometheus.Counter
	allocatedObjects prometheus.Counter
	failedAllocs     prometheus.Counter
	inuseBytes       prometheus.Gauge
}

// NewMetricsAllocator registers the allocator metrics with reg and wraps upstream.
// A nil registerer creates unregistered metrics.
func NewMetricsAllocator(upstream Allocator, reg prometheus.Registerer) *MetricsAllocator {
	f := promauto.With(reg)
	return &MetricsAllocator{
		upstream: upstream,
		allocatedBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "dynarray",
			Name:      "allocated_bytes_total",
			Help:      "Total number of bytes handed out to arrays.",
		}),
		allocatedObjects: f.NewCounter(prometheus.CounterOpts{
			Namespace: "dynarray",
			Name:      "allocated_objects_total",
			Help:      "Total number of storage regions handed out to arrays.",
		}),
		failedAllocs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "dynarray",
			Name:      "failed_allocations_total",
			Help:      "Total number of refused storage requests.",
		}),
		inuseBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "dynarray",
			Name:      "inuse_bytes",
			Help:      "Number of bytes held by arrays that have not been released.",
		}),
	}
}

// Alloc satisfies the Allocator interface.
func (m *MetricsAllocator) Alloc(size, alignment uintptr) unsafe.Pointer {
	ptr := m.upstream.Alloc(size, alignment)
	if ptr == nil {
		m.failedAllocs.Inc()
		return nil
	}
	m.allocatedBytes.Add(float64(size))
	m.allocatedObjects.Inc()
	m.inuseBytes.Add(float64(size))
	return ptr
}

// Free satisfies the Freer interface.
func (m *MetricsAllocator) Free(ptr unsafe.Pointer, size uintptr) {
	m.inuseBytes.Sub(float64(size))
	if f, ok := m.upstream.(Freer); ok {
		f.Free(ptr, size)
	}
}

// Reset satisfies the Allocator interface.
func (m *MetricsAllocator) Reset() {
	m.upstream.Reset()
	m.inuseBytes.Set(0)
}

// Release satisfies the Allocator interface.
func (m *MetricsAllocator) Release() {
	m.upstream.Release()
	m.inuseBytes.Set(0)
}

// Len satisfies the Allocator interface.
func (m *MetricsAllocator) Len() int {
	return m.upstream.Len()
}

// Cap satisfies the Allocator interface.
func (m *MetricsAllocator) Cap() int {
	return m.upstream.Cap()
}

// Peak satisfies the Allocator interface.
func (m *MetricsAllocator) Peak() int {
	return m.upstream.Peak()
}
