// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	minRegionSize = 1024 * 32 // 32KB
)

type monotonicAllocator struct {
	regions            []*region
	peak               uintptr // tracks peak allocated space
	minRegionSize      uintptr // minimum size for new regions
	initialRegionCount int     // number of regions created up front
	maxBytes           uintptr // upper bound for the sum of region sizes, 0 means unbounded
	logger             log.Logger
}

type region struct {
	ptr    unsafe.Pointer
	offset uintptr
	size   uintptr
}

func newRegion(size uintptr) *region {
	return &region{size: size}
}

// back provides the memory of the region. It fails when the Go heap cannot
// hold a slice of the region's size.
func (r *region) back() (ok bool) {
	if r.ptr != nil {
		return true
	}
	if r.size == 0 {
		return false
	}
	defer func() {
		if recover() != nil {
			r.ptr, ok = nil, false
		}
	}()
	buf := make([]byte, r.size)
	r.ptr = unsafe.Pointer(unsafe.SliceData(buf))
	return true
}

func (r *region) alloc(size, alignment uintptr) (unsafe.Pointer, bool) {
	if !r.back() { // regions are backed lazily
		return nil, false
	}
	addr := uintptr(r.ptr) + r.offset
	pad := (alignment - addr%alignment) % alignment
	if r.availableBytes() < size+pad {
		return nil, false
	}
	ptr := unsafe.Add(r.ptr, r.offset+pad)
	r.offset += size + pad

	// Reused regions hold stale bytes from before the last reset.
	clear(unsafe.Slice((*byte)(ptr), size))

	return ptr, true
}

func (r *region) reset() {
	r.offset = 0
}

func (r *region) release() {
	r.offset = 0
	r.ptr = nil
}

func (r *region) availableBytes() uintptr {
	return r.size - r.offset
}

// MonotonicAllocatorOption represents a configuration option for a monotonic allocator.
type MonotonicAllocatorOption func(*monotonicAllocator)

// WithMinRegionSize sets the minimum size of regions created by the allocator.
func WithMinRegionSize(size int) MonotonicAllocatorOption {
	return func(a *monotonicAllocator) {
		a.minRegionSize = uintptr(size)
	}
}

// WithInitialRegionCount sets the number of regions to create up front.
func WithInitialRegionCount(count int) MonotonicAllocatorOption {
	return func(a *monotonicAllocator) {
		a.initialRegionCount = count
	}
}

// WithMaxBytes bounds the total size of all regions. Requests that would need
// a region beyond the bound fail, and arrays report them as ErrAllocation.
func WithMaxBytes(n int) MonotonicAllocatorOption {
	return func(a *monotonicAllocator) {
		a.maxBytes = uintptr(n)
	}
}

// WithLogger sets the logger used to report region growth and refused requests.
func WithLogger(logger log.Logger) MonotonicAllocatorOption {
	return func(a *monotonicAllocator) {
		a.logger = logger
	}
}

// NewMonotonicAllocator creates an allocator that hands out memory from a list
// of regions and only reclaims it on Reset or Release.
// Without options it uses one initial region of 32KB and no size bound.
func NewMonotonicAllocator(opts ...MonotonicAllocatorOption) Allocator {
	a := &monotonicAllocator{
		minRegionSize:      minRegionSize,
		initialRegionCount: 1,
		logger:             log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	for i := 0; i < a.initialRegionCount; i++ {
		a.regions = append(a.regions, newRegion(a.minRegionSize))
	}
	return a
}

// Alloc satisfies the Allocator interface.
func (a *monotonicAllocator) Alloc(size, alignment uintptr) unsafe.Pointer {
	if alignment == 0 {
		alignment = 1
	}
	for _, r := range a.regions {
		if ptr, ok := r.alloc(size, alignment); ok {
			a.updatePeak()
			return ptr
		}
	}

	// No region has room; a fresh one is aligned at its start by the Go heap
	// only up to the word size, so reserve room for padding.
	regionSize := size + alignment - 1
	if regionSize < size {
		level.Warn(a.logger).Log("msg", "refusing allocation with overflowing size", "size", size, "alignment", alignment)
		return nil
	}
	if regionSize < a.minRegionSize {
		regionSize = a.minRegionSize
	}
	if a.maxBytes > 0 && a.cap()+regionSize > a.maxBytes {
		level.Warn(a.logger).Log("msg", "refusing allocation beyond byte limit", "size", size, "region_size", regionSize, "cap", a.cap(), "max_bytes", a.maxBytes)
		return nil
	}

	r := newRegion(regionSize)
	if !r.back() {
		level.Warn(a.logger).Log("msg", "refusing allocation the heap cannot back", "size", size, "region_size", regionSize)
		return nil
	}
	a.regions = append(a.regions, r)
	level.Debug(a.logger).Log("msg", "created region", "region_size", regionSize, "regions", len(a.regions))

	ptr, ok := r.alloc(size, alignment)
	if !ok {
		// This should never happen since we just created a region large enough
		panic("dynarray: failed to allocate on newly created region")
	}
	a.updatePeak()
	return ptr
}

func (a *monotonicAllocator) updatePeak() {
	if l := a.len(); l > a.peak {
		a.peak = l
	}
}

// Reset satisfies the Allocator interface.
func (a *monotonicAllocator) Reset() {
	for _, r := range a.regions {
		r.reset()
	}
}

// Release satisfies the Allocator interface.
func (a *monotonicAllocator) Release() {
	for _, r := range a.regions {
		r.release()
	}
}

func (a *monotonicAllocator) len() uintptr {
	var total uintptr
	for _, r := range a.regions {
		total += r.offset
	}
	return total
}

func (a *monotonicAllocator) cap() uintptr {
	var total uintptr
	for _, r := range a.regions {
		total += r.size
	}
	return total
}

// Len returns the total number of bytes currently allocated.
func (a *monotonicAllocator) Len() int {
	return int(a.len())
}

// Cap returns the total size of all regions.
func (a *monotonicAllocator) Cap() int {
	return int(a.cap())
}

// Peak returns the peak number of bytes that have been allocated.
// This value is not reset when Reset is called, allowing tracking of maximum usage.
func (a *monotonicAllocator) Peak() int {
	return int(a.peak)
}
