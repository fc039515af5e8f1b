// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"sync"
	"unsafe"
)

type concurrentAllocator struct {
	mtx sync.Mutex
	a   Allocator
}

// NewConcurrentAllocator returns an allocator that can be shared by arrays
// living on different goroutines. Each array still has a single owner; only
// the allocator is synchronized.
func NewConcurrentAllocator(a Allocator) Allocator {
	return &concurrentAllocator{a: a}
}

// Alloc satisfies the Allocator interface.
func (c *concurrentAllocator) Alloc(size, alignment uintptr) unsafe.Pointer {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return nil
	}
	return c.a.Alloc(size, alignment)
}

// Free forwards to the wrapped allocator when it implements Freer.
func (c *concurrentAllocator) Free(ptr unsafe.Pointer, size uintptr) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if f, ok := c.a.(Freer); ok {
		f.Free(ptr, size)
	}
}

// Reset satisfies the Allocator interface.
func (c *concurrentAllocator) Reset() {
	c.locked(func(a Allocator) int {
		a.Reset()
		return 0
	})
}

// Release satisfies the Allocator interface.
func (c *concurrentAllocator) Release() {
	c.locked(func(a Allocator) int {
		a.Release()
		return 0
	})
}

// Len returns the total number of bytes currently allocated.
func (c *concurrentAllocator) Len() int {
	return c.locked(Allocator.Len)
}

// Cap returns the total capacity of the wrapped allocator.
func (c *concurrentAllocator) Cap() int {
	return c.locked(Allocator.Cap)
}

// Peak returns the peak number of bytes that have been allocated.
func (c *concurrentAllocator) Peak() int {
	return c.locked(Allocator.Peak)
}

// locked runs fn on the wrapped allocator under the mutex. A nil allocator yields 0.
func (c *concurrentAllocator) locked(fn func(Allocator) int) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return 0
	}
	return fn(c.a)
}
