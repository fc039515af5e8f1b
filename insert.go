// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"slices"
)

// Append adds v at the end, taking ownership of it. When the array is full the
// capacity doubles first; if that fails the array is unchanged.
func (a *Array[T]) Append(v T) error {
	if err := a.ensureRoom(1); err != nil {
		return err
	}
	a.constructMove(a.length, v)
	a.length++
	return nil
}

// AppendSlice adds the values of vs at the end, taking ownership of them.
func (a *Array[T]) AppendSlice(vs []T) error {
	_, err := a.Insert(a.length, vs...)
	return err
}

// EmplaceBack constructs a value in place at the end and returns a pointer to it.
// The pointer is valid until the next call that grows the storage or shifts elements.
func (a *Array[T]) EmplaceBack(ctor func(*T) error) (*T, error) {
	pos, err := a.Emplace(a.length, ctor)
	if err != nil {
		return nil, err
	}
	return &a.buf.slots[pos], nil
}

// Insert places vs before position pos, taking ownership of them, and returns
// the index of the first inserted value. pos must be in [0, Len].
func (a *Array[T]) Insert(pos int, vs ...T) (int, error) {
	if err := a.checkPosition("insert", pos); err != nil {
		return pos, err
	}
	if len(vs) == 0 {
		return pos, nil
	}
	if a.buf.overlaps(vs) {
		// The values are still owned by this array.
		return a.InsertClones(pos, vs)
	}
	if err := a.openGap(pos, len(vs)); err != nil {
		return pos, err
	}
	for i, v := range vs {
		a.constructMove(pos+i, v)
	}
	a.length += len(vs)
	return pos, nil
}

// InsertN places n copies of v before position pos and returns pos.
// If a copy fails, the copies made so far are destroyed and the previous
// sequence is restored before the error is returned.
func (a *Array[T]) InsertN(pos, n int, v T) (int, error) {
	if err := a.checkPosition("insert", pos); err != nil {
		return pos, err
	}
	if n < 0 {
		return pos, indexError("insert count", n, a.length)
	}
	if n == 0 {
		return pos, nil
	}
	if err := a.openGap(pos, n); err != nil {
		return pos, err
	}
	for i := 0; i < n; i++ {
		if err := a.constructCopy(pos+i, v); err != nil {
			a.destroyRange(pos, pos+i)
			a.closeGap(pos, n)
			return pos, err
		}
	}
	a.length += n
	return pos, nil
}

// InsertClones places copies of vs before position pos and returns pos.
// Failure handling is the same as for InsertN.
func (a *Array[T]) InsertClones(pos int, vs []T) (int, error) {
	if err := a.checkPosition("insert", pos); err != nil {
		return pos, err
	}
	if len(vs) == 0 {
		return pos, nil
	}
	if a.buf.overlaps(vs) {
		vs = slices.Clone(vs)
	}
	if err := a.openGap(pos, len(vs)); err != nil {
		return pos, err
	}
	for i, v := range vs {
		if err := a.constructCopy(pos+i, v); err != nil {
			a.destroyRange(pos, pos+i)
			a.closeGap(pos, len(vs))
			return pos, err
		}
	}
	a.length += len(vs)
	return pos, nil
}

// Emplace constructs a single value in place before position pos and returns pos.
// ctor receives a pointer to the zeroed slot. If ctor fails, the slot is discarded
// and the previous sequence is restored.
func (a *Array[T]) Emplace(pos int, ctor func(*T) error) (int, error) {
	if err := a.checkPosition("emplace", pos); err != nil {
		return pos, err
	}
	if err := a.openGap(pos, 1); err != nil {
		return pos, err
	}
	if err := ctor(&a.buf.slots[pos]); err != nil {
		var zero T
		a.buf.slots[pos] = zero
		a.closeGap(pos, 1)
		return pos, err
	}
	a.length++
	return pos, nil
}

func (a *Array[T]) checkPosition(op string, pos int) error {
	if pos < 0 || pos > a.length {
		return indexError(op, pos, a.length)
	}
	return nil
}

// openGap makes room for n values at pos: it grows the storage if needed and
// relocates [pos, Len) to [pos+n, Len+n), rightmost first. Slots [pos, pos+n)
// are left uninitialized and the length is not updated.
func (a *Array[T]) openGap(pos, n int) error {
	if err := a.ensureRoom(n); err != nil {
		return err
	}
	slots := a.buf.slots
	for i := a.length - 1; i >= pos; i-- {
		relocate(slots, i, i+n)
	}
	return nil
}

// closeGap reverts openGap once the gap is uninitialized again.
func (a *Array[T]) closeGap(pos, n int) {
	slots := a.buf.slots
	for i := pos + n; i < a.length+n; i++ {
		relocate(slots, i, i-n)
	}
}
