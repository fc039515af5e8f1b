// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"unsafe"
)

// Allocator is an interface that describes a raw memory source for array storage.
type Allocator interface {
	// Alloc returns zeroed memory of the given size, aligned to alignment.
	// A nil result means the request cannot be satisfied; arrays surface it as ErrAllocation.
	Alloc(size, alignment uintptr) unsafe.Pointer

	// Reset resets the allocator's state without releasing the underlying memory.
	// After invoking this method any pointer previously returned by Alloc becomes immediately invalid,
	// so every array using the allocator must have been released before.
	Reset()

	// Release releases the allocator's underlying memory back to the system.
	// After invoking this method, the allocator should not be used for further allocations.
	Release()

	// Len returns the total number of bytes currently allocated.
	Len() int

	// Cap returns the total capacity (maximum bytes) that can be allocated without growing.
	Cap() int

	// Peak returns the peak number of bytes that have been allocated.
	// This value is not reset when Reset is called, allowing tracking of maximum usage.
	Peak() int
}

// Freer is implemented by allocators that want to be told when storage
// obtained from Alloc is no longer referenced by an array.
type Freer interface {
	Free(ptr unsafe.Pointer, size uintptr)
}
