// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"github.com/pkg/errors"
)

// hooks define how elements come to life and die.
// A nil hook falls back to plain Go semantics.
type hooks[T any] struct {
	construct func() (T, error)
	clone     func(T) (T, error)
	destroy   func(*T)
}

// constructDefault builds a value in the uninitialized slot i using the zero-argument producer.
func (a *Array[T]) constructDefault(i int) error {
	if a.hooks.construct == nil {
		var zero T
		a.buf.slots[i] = zero
		return nil
	}
	v, err := a.hooks.construct()
	if err != nil {
		return errors.Wrapf(err, "construct slot %d", i)
	}
	a.buf.slots[i] = v
	return nil
}

// constructCopy builds a copy of v in the uninitialized slot i.
func (a *Array[T]) constructCopy(i int, v T) error {
	if a.hooks.clone == nil {
		a.buf.slots[i] = v
		return nil
	}
	c, err := a.hooks.clone(v)
	if err != nil {
		return errors.Wrapf(err, "copy into slot %d", i)
	}
	a.buf.slots[i] = c
	return nil
}

// constructMove takes ownership of v in the uninitialized slot i.
func (a *Array[T]) constructMove(i int, v T) {
	a.buf.slots[i] = v
}

// destroyAt ends the life of the value in slot i and leaves the slot uninitialized.
func (a *Array[T]) destroyAt(i int) {
	if a.hooks.destroy != nil {
		a.hooks.destroy(&a.buf.slots[i])
	}
	var zero T
	a.buf.slots[i] = zero
}

// destroyRange destroys slots [first, last) in ascending order.
func (a *Array[T]) destroyRange(first, last int) {
	for i := first; i < last; i++ {
		a.destroyAt(i)
	}
}

// relocate moves the value in slot src to the uninitialized slot dst.
// Ownership moves with the value, so no destructor runs.
func relocate[T any](slots []T, src, dst int) {
	var zero T
	slots[dst] = slots[src]
	slots[src] = zero
}

// relocateAll moves every value of src into the uninitialized prefix of dst, in index order.
func relocateAll[T any](dst, src []T) {
	copy(dst, src)
	clear(src)
}
