// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"cmp"
	"slices"
)

// Equal reports whether a and b have the same length and pairwise equal values.
func Equal[T comparable](a, b *Array[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[T, U any](a *Array[T], b *Array[U], eq func(T, U) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// Compare orders a and b lexicographically. The result is 0 if a == b,
// -1 if a < b, and +1 if a > b. A prefix orders before the longer array.
func Compare[T cmp.Ordered](a, b *Array[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// CompareFunc is like Compare but orders values with compare.
func CompareFunc[T, U any](a *Array[T], b *Array[U], compare func(T, U) int) int {
	return slices.CompareFunc(a.Slice(), b.Slice(), compare)
}

// Less reports whether a orders before b.
func Less[T cmp.Ordered](a, b *Array[T]) bool {
	return Compare(a, b) < 0
}
