// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"unsafe"

	"github.com/pkg/errors"
)

var errBoom = errors.New("boom")

// mockAllocator is a simple implementation of the Allocator interface for testing purposes.
// It allocates memory using Go's built-in make function and can be told to refuse requests.
type mockAllocator struct {
	allocs int
	frees  int
	// refuseAfter makes Alloc return nil once this many requests succeeded; negative disables it.
	refuseAfter int
	freed       uintptr
}

func newMockAllocator() *mockAllocator {
	return &mockAllocator{refuseAfter: -1}
}

func (m *mockAllocator) Alloc(size, _ uintptr) unsafe.Pointer {
	if m.refuseAfter >= 0 && m.allocs >= m.refuseAfter {
		return nil
	}
	m.allocs++
	return unsafe.Pointer(&make([]byte, size)[0])
}

func (m *mockAllocator) Free(_ unsafe.Pointer, size uintptr) {
	m.frees++
	m.freed += size
}

func (m *mockAllocator) Reset() {
	// Implementation can be empty for this test
}

func (m *mockAllocator) Release() {
	// Implementation can be empty for this test
}

func (m *mockAllocator) Len() int {
	return 0
}

func (m *mockAllocator) Cap() int {
	return int(^uintptr(0) >> 1) // Maximum int value
}

func (m *mockAllocator) Peak() int {
	return 0
}

// isAllocatorPtr checks if a pointer is within the memory range of a monotonic allocator.
func isAllocatorPtr(alloc Allocator, ptr unsafe.Pointer) bool {
	ma, ok := alloc.(*monotonicAllocator)
	if !ok {
		return false
	}
	addr := uintptr(ptr)
	for _, r := range ma.regions {
		if r.ptr != nil {
			start := uintptr(r.ptr)
			if addr >= start && addr < start+r.size {
				return true
			}
		}
	}
	return false
}

// lifetimes records every construction and destruction of int values.
type lifetimes struct {
	next      int
	failAt    int // construction number that fails, 0 disables
	calls     int
	destroyed map[int]int
}

func newLifetimes() *lifetimes {
	return &lifetimes{next: 1000, destroyed: make(map[int]int)}
}

func (l *lifetimes) construct() (int, error) {
	l.calls++
	if l.failAt != 0 && l.calls == l.failAt {
		return 0, errBoom
	}
	l.next++
	return l.next, nil
}

func (l *lifetimes) clone(v int) (int, error) {
	l.calls++
	if l.failAt != 0 && l.calls == l.failAt {
		return 0, errBoom
	}
	return v, nil
}

func (l *lifetimes) destroy(v *int) {
	l.destroyed[*v]++
}

func (l *lifetimes) options() []Option[int] {
	return []Option[int]{
		WithConstructor(l.construct),
		WithCloner(l.clone),
		WithDestructor(l.destroy),
	}
}

func (l *lifetimes) totalDestroyed() int {
	total := 0
	for _, n := range l.destroyed {
		total += n
	}
	return total
}

// slotsPtr returns the address of the first slot of the array's storage.
func slotsPtr[T any](a *Array[T]) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(a.buf.slots))
}
