package dynarray

import (
	"sync"
	"weak"
)

const (
	// poolSizeWindow is the number of releases averaged per key before the history is compacted.
	poolSizeWindow = 50

	defaultPoolRegionSize = 1024 * 1024 // 1MB
)

// Pool hands out monotonic allocators sized after what earlier users of the
// same key needed, so that arrays built per request rarely have to grow their
// allocator's regions.
//
// Released items are kept as weak pointers: the GC may collect an idle
// allocator at any time, which lets the pool size itself to memory pressure.
type Pool struct {
	pool  []weak.Pointer[PoolItem]
	sizes map[uint64]*poolItemSize
	mu    sync.Mutex
}

// poolItemSize accumulates the peak usage reported for a key.
type poolItemSize struct {
	count      int
	totalBytes int
}

// PoolItem wraps an Allocator checked out of a Pool.
type PoolItem struct {
	Allocator Allocator
	Key       uint64
}

// NewPool creates an empty Pool.
func NewPool() *Pool {
	return &Pool{
		sizes: make(map[uint64]*poolItemSize),
	}
}

// Acquire returns an idle allocator or creates one sized for key.
func (p *Pool) Acquire(key uint64) *PoolItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pool) > 0 {
		last := len(p.pool) - 1
		wp := p.pool[last]
		p.pool = p.pool[:last]

		if item := wp.Value(); item != nil {
			item.Key = key
			return item
		}
	}

	return &PoolItem{
		Allocator: NewMonotonicAllocator(WithMinRegionSize(p.regionSize(key))),
		Key:       key,
	}
}

// Release resets the item's allocator and returns it to the pool. Every array
// using the allocator must have been released before.
func (p *Pool) Release(item *PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(item)
}

// ReleaseMany is like Release for several items under a single lock.
func (p *Pool) ReleaseMany(items []*PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range items {
		p.release(item)
	}
}

func (p *Pool) release(item *PoolItem) {
	peak := item.Allocator.Peak()
	item.Allocator.Reset()

	if size, ok := p.sizes[item.Key]; ok {
		if size.count == poolSizeWindow {
			size.count = 1
			size.totalBytes /= poolSizeWindow
		}
		size.count++
		size.totalBytes += peak
	} else {
		p.sizes[item.Key] = &poolItemSize{count: 1, totalBytes: peak}
	}

	item.Key = 0
	p.pool = append(p.pool, weak.Make(item))
}

// regionSize returns the average peak recorded for key, or 1MB when none is known.
func (p *Pool) regionSize(key uint64) int {
	if size, ok := p.sizes[key]; ok && size.totalBytes > 0 {
		return size.totalBytes / size.count
	}
	return defaultPoolRegionSize
}
