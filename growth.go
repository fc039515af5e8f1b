// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"math"

	"github.com/pkg/errors"
)

// growCapacity returns the capacity to allocate when at least minimum slots are required.
// Capacity doubles; when doubling is not enough, or would overflow, minimum is used.
// Appending past a full array passes length+1, which yields max(1, 2*capacity).
func growCapacity(capacity, minimum int) int {
	if capacity > math.MaxInt/2 {
		return minimum
	}
	if doubled := capacity * 2; doubled > minimum {
		return doubled
	}
	return minimum
}

// ensureCapacity grows the storage so that it holds at least minimum slots.
// On failure the array is unchanged.
func (a *Array[T]) ensureCapacity(minimum int) error {
	if minimum <= a.buf.capacity() {
		return nil
	}
	return a.reallocate(growCapacity(a.buf.capacity(), minimum))
}

// ensureRoom grows the storage so that n more values fit after the live prefix.
func (a *Array[T]) ensureRoom(n int) error {
	if n > math.MaxInt-a.length {
		return errors.Wrapf(ErrAllocation, "length %d plus %d overflows", a.length, n)
	}
	return a.ensureCapacity(a.length + n)
}

// reallocate moves the live prefix into fresh storage of exactly capacity slots
// and releases the old storage.
func (a *Array[T]) reallocate(capacity int) error {
	next, err := allocate[T](a.alloc, capacity)
	if err != nil {
		return err
	}
	relocateAll(next.slots, a.buf.slots[:a.length])
	release(a.alloc, a.buf)
	a.buf = next
	return nil
}

// Reserve grows the capacity to at least n slots. It never shrinks and never
// changes the length or the element values. Growth invalidates every
// reference obtained from Ref, Slice or an iterator.
func (a *Array[T]) Reserve(n int) error {
	if n <= a.buf.capacity() {
		return nil
	}
	return a.reallocate(growCapacity(a.buf.capacity(), n))
}

// ShrinkToFit reallocates the storage to exactly Len slots when it holds more.
func (a *Array[T]) ShrinkToFit() error {
	if a.length >= a.buf.capacity() {
		return nil
	}
	return a.reallocate(a.length)
}
