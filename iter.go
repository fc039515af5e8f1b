// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"iter"
)

// All returns an iterator over index-value pairs in ascending order.
// Mutating the array while iterating invalidates the iterator.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.buf.slots[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in ascending index order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(a.buf.slots[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs in descending order.
func (a *Array[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.Len() - 1; i >= 0; i-- {
			if !yield(i, a.buf.slots[i]) {
				return
			}
		}
	}
}
