// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"math"
	"math/bits"
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// maxAllocBytes bounds a single storage request.
const maxAllocBytes = math.MaxInt

// storage is a contiguous region of slots owned by exactly one Array.
// The zero value is the empty handle.
type storage[T any] struct {
	slots []T
	// ptr is set when the region was carved from an Allocator rather than the Go heap.
	ptr unsafe.Pointer
}

func (s storage[T]) capacity() int {
	return len(s.slots)
}

// allocate returns raw storage for exactly n slots, or the empty handle if n is zero.
// It never runs element hooks; every slot holds the zero value of T.
//
// Element types containing pointers are always placed on the Go heap: memory
// handed out by an Allocator is not scanned by the garbage collector.
func allocate[T any](a Allocator, n int) (storage[T], error) {
	if n == 0 {
		return storage[T]{}, nil
	}
	if n < 0 {
		return storage[T]{}, errors.Wrapf(ErrAllocation, "negative slot count %d", n)
	}

	var x T
	size := unsafe.Sizeof(x)
	hi, total := bits.Mul64(uint64(size), uint64(n))
	if hi != 0 || total > maxAllocBytes {
		return storage[T]{}, errors.Wrapf(ErrAllocation, "%d slots of %d bytes overflow", n, size)
	}

	if a != nil && size > 0 && pointerFree[T]() {
		ptr, err := allocatorAlloc(a, uintptr(total), unsafe.Alignof(x))
		if err != nil {
			return storage[T]{}, errors.Wrapf(err, "%d slots", n)
		}
		if ptr == nil {
			return storage[T]{}, errors.Wrapf(ErrAllocation, "allocator refused %d bytes for %d slots", total, n)
		}
		return storage[T]{slots: unsafe.Slice((*T)(ptr), n), ptr: ptr}, nil
	}
	return heapStorage[T](n)
}

// allocatorAlloc calls a.Alloc and turns a panic inside it into ErrAllocation.
func allocatorAlloc(a Allocator, size, alignment uintptr) (ptr unsafe.Pointer, err error) {
	defer func() {
		if r := recover(); r != nil {
			ptr, err = nil, errors.Wrapf(ErrAllocation, "allocator panicked on %d bytes: %v", size, r)
		}
	}()
	return a.Alloc(size, alignment), nil
}

func heapStorage[T any](n int) (s storage[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = storage[T]{}, errors.Wrapf(ErrAllocation, "heap refused %d slots: %v", n, r)
		}
	}()
	return storage[T]{slots: make([]T, n)}, nil
}

// release returns storage obtained from allocate. It is a no-op on the empty handle.
// Live slots must have been destroyed or relocated before.
func release[T any](a Allocator, s storage[T]) {
	if s.ptr == nil {
		return
	}
	if f, ok := a.(Freer); ok {
		var x T
		f.Free(s.ptr, unsafe.Sizeof(x)*uintptr(len(s.slots)))
	}
}

// maxSlots is the largest slot count allocate can accept for T.
func maxSlots[T any]() int {
	var x T
	size := unsafe.Sizeof(x)
	if size == 0 {
		return math.MaxInt
	}
	return int(maxAllocBytes / uint64(size))
}

// overlaps reports whether values shares memory with the slots of s.
func (s storage[T]) overlaps(values []T) bool {
	if len(s.slots) == 0 || len(values) == 0 {
		return false
	}
	var x T
	size := unsafe.Sizeof(x)
	if size == 0 {
		return false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(s.slots)))
	end := start + size*uintptr(len(s.slots))
	vStart := uintptr(unsafe.Pointer(unsafe.SliceData(values)))
	vEnd := vStart + size*uintptr(len(values))
	return vStart < end && start < vEnd
}

var pointerFreeTypes sync.Map // reflect.Type -> bool

func pointerFree[T any]() bool {
	t := reflect.TypeFor[T]()
	if v, ok := pointerFreeTypes.Load(t); ok {
		return v.(bool)
	}
	free := isPointerFree(t)
	pointerFreeTypes.Store(t, free)
	return free
}

func isPointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || isPointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isPointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
