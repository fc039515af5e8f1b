// SPDX-License-Identifier: Apache-2.0

package dynarray

// Array is a contiguous, growable sequence of T with explicit element lifetime.
//
// Slots [0, Len) hold live values; slots [Len, Cap) are uninitialized storage
// that is never handed out. An Array exclusively owns its storage: Move and
// MoveFrom transfer it and leave the source empty, Clone and Assign always
// allocate new storage.
//
// An Array is not safe for concurrent use. Any call that grows the storage or
// shifts elements invalidates references obtained from Ref, Slice and iterators.
type Array[T any] struct {
	buf    storage[T]
	length int
	alloc  Allocator
	hooks  hooks[T]
}

// Option configures an Array.
type Option[T any] func(*Array[T])

// WithAllocator places the storage of pointer-free element types in memory
// obtained from alloc. A nil allocator uses the Go heap.
func WithAllocator[T any](alloc Allocator) Option[T] {
	return func(a *Array[T]) {
		a.alloc = alloc
	}
}

// WithConstructor sets the zero-argument producer used by Resize and NewWithLen.
func WithConstructor[T any](fn func() (T, error)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.construct = fn
	}
}

// WithCloner sets how values are copied by InsertN, InsertClones, ResizeFill,
// Repeat, FromSlice, Clone and Assign.
func WithCloner[T any](fn func(T) (T, error)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.clone = fn
	}
}

// WithDestructor sets a hook that runs exactly once for every value leaving the array
// through PopBack, Erase, Resize, Clear, Set or Release.
func WithDestructor[T any](fn func(*T)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.destroy = fn
	}
}

// New creates an empty array. No storage is allocated until the first value is added.
func New[T any](opts ...Option[T]) *Array[T] {
	a := &Array[T]{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewWithLen creates an array of n default-constructed values with capacity n.
func NewWithLen[T any](n int, opts ...Option[T]) (*Array[T], error) {
	a := New(opts...)
	if err := a.Resize(n); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// Repeat creates an array of n copies of v with capacity n.
func Repeat[T any](n int, v T, opts ...Option[T]) (*Array[T], error) {
	a := New(opts...)
	if err := a.ResizeFill(n, v); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// FromSlice creates an array holding copies of values, with capacity len(values).
func FromSlice[T any](values []T, opts ...Option[T]) (*Array[T], error) {
	a := New(opts...)
	if err := a.copyFrom(values); err != nil {
		return nil, err
	}
	return a, nil
}

// Of creates a heap-backed array that takes ownership of values, with capacity len(values).
func Of[T any](values ...T) *Array[T] {
	a := New[T]()
	if len(values) > 0 {
		a.buf.slots = make([]T, len(values))
		copy(a.buf.slots, values)
		a.length = len(values)
	}
	return a
}

// copyFrom fills an empty array with copies of values. On failure the array is empty.
func (a *Array[T]) copyFrom(values []T) error {
	if err := a.ensureCapacity(len(values)); err != nil {
		return err
	}
	for i, v := range values {
		if err := a.constructCopy(i, v); err != nil {
			a.destroyRange(0, i)
			a.Release()
			return err
		}
	}
	a.length = len(values)
	return nil
}

// Len returns the number of live values. Len, Cap, Empty, Slice, At, Set,
// Front and Back treat a nil *Array as empty.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.length
}

// Cap returns the number of allocated slots.
func (a *Array[T]) Cap() int {
	if a == nil {
		return 0
	}
	return a.buf.capacity()
}

// Empty reports whether the array holds no values.
func (a *Array[T]) Empty() bool {
	return a.Len() == 0
}

// MaxLen returns the largest length the array could ever reach for T.
func (a *Array[T]) MaxLen() int {
	return maxSlots[T]()
}

// At returns the value at index i, or ErrIndexOutOfRange if i is not in [0, Len).
func (a *Array[T]) At(i int) (T, error) {
	if i < 0 || i >= a.Len() {
		var zero T
		return zero, indexError("at", i, a.Len())
	}
	return a.buf.slots[i], nil
}

// Get returns the value at index i without an error check.
// The caller guarantees i is in [0, Len); otherwise Get panics.
func (a *Array[T]) Get(i int) T {
	return a.buf.slots[:a.length][i]
}

// Ref returns a pointer to the live slot i. The pointer is valid until the next
// call that grows the storage or shifts elements. Ref panics if i is not in [0, Len).
func (a *Array[T]) Ref(i int) *T {
	return &a.buf.slots[:a.length][i]
}

// Set replaces the value at index i, destroying the previous one.
func (a *Array[T]) Set(i int, v T) error {
	if i < 0 || i >= a.Len() {
		return indexError("set", i, a.Len())
	}
	a.destroyAt(i)
	a.constructMove(i, v)
	return nil
}

// Front returns the first value.
func (a *Array[T]) Front() (T, error) {
	if a.Empty() {
		var zero T
		return zero, ErrEmpty
	}
	return a.buf.slots[0], nil
}

// Back returns the last value.
func (a *Array[T]) Back() (T, error) {
	if a.Empty() {
		var zero T
		return zero, ErrEmpty
	}
	return a.buf.slots[a.length-1], nil
}

// Slice returns the live values as a slice sharing the array's storage.
// The slice is valid for use only until the next modification.
func (a *Array[T]) Slice() []T {
	if a == nil || a.length == 0 {
		return nil
	}
	return a.buf.slots[:a.length:a.length]
}

// Release destroys every live value in index order and gives the storage back.
// The array stays usable and is empty afterwards.
func (a *Array[T]) Release() {
	a.destroyRange(0, a.length)
	a.length = 0
	release(a.alloc, a.buf)
	a.buf = storage[T]{}
}

// Clone returns an independent copy with the same options, copying every value
// through the cloner. On failure a is unchanged.
func (a *Array[T]) Clone() (*Array[T], error) {
	c := &Array[T]{alloc: a.alloc, hooks: a.hooks}
	if err := c.copyFrom(a.Slice()); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the contents of a with copies of the values of src, using
// a's allocator and hooks. Assigning an array to itself is a no-op.
// On failure a is unchanged.
func (a *Array[T]) Assign(src *Array[T]) error {
	if a == src {
		return nil
	}
	tmp := &Array[T]{alloc: a.alloc, hooks: a.hooks}
	if err := tmp.copyFrom(src.Slice()); err != nil {
		return err
	}
	a.Release()
	a.buf, a.length = tmp.buf, tmp.length
	return nil
}

// Move transfers the storage and options of a into a new array, leaving a empty.
func (a *Array[T]) Move() *Array[T] {
	m := &Array[T]{}
	*m = *a
	a.buf, a.length = storage[T]{}, 0
	return m
}

// MoveFrom releases the contents of a and takes over the storage and options of
// src, leaving src empty. Moving an array into itself is a no-op.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.Release()
	*a = *src
	src.buf, src.length = storage[T]{}, 0
}

// Swap exchanges the contents and options of a and b.
func (a *Array[T]) Swap(b *Array[T]) {
	*a, *b = *b, *a
}
