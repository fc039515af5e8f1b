// SPDX-License-Identifier: Apache-2.0

package dynarray

// EraseRange removes the values in [first, last) and returns first, the index
// of the value that followed the erased range. Erasing an empty range is a no-op.
//
// The erased values are destroyed, the trailing values are relocated leftward
// in index order, and the vacated slots at the end become uninitialized.
func (a *Array[T]) EraseRange(first, last int) (int, error) {
	if first < 0 || first > last || last > a.length {
		return first, rangeError("erase", first, last, a.length)
	}
	if first == last {
		return first, nil
	}
	a.destroyRange(first, last)
	slots := a.buf.slots
	n := last - first
	for i := last; i < a.length; i++ {
		relocate(slots, i, i-n)
	}
	a.length -= n
	return first, nil
}

// Erase removes the value at pos, which must be in [0, Len).
func (a *Array[T]) Erase(pos int) (int, error) {
	if pos < 0 || pos >= a.length {
		return pos, indexError("erase", pos, a.length)
	}
	return a.EraseRange(pos, pos+1)
}

// PopBack destroys the last value. It is a no-op on an empty array.
func (a *Array[T]) PopBack() {
	if a.length == 0 {
		return
	}
	a.length--
	a.destroyAt(a.length)
}

// Clear destroys every value. The capacity is unchanged.
func (a *Array[T]) Clear() {
	a.destroyRange(0, a.length)
	a.length = 0
}
