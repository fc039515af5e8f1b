// SPDX-License-Identifier: Apache-2.0

package dynarray

// Resize sets the length to n. New slots are default-constructed; surplus values
// are destroyed. If a construction fails, the values built so far are destroyed
// and the length is unchanged.
func (a *Array[T]) Resize(n int) error {
	return a.resize(n, a.constructDefault)
}

// ResizeFill is like Resize but new slots hold copies of v.
func (a *Array[T]) ResizeFill(n int, v T) error {
	return a.resize(n, func(i int) error {
		return a.constructCopy(i, v)
	})
}

func (a *Array[T]) resize(n int, construct func(int) error) error {
	if n < 0 {
		return indexError("resize", n, a.length)
	}
	if n <= a.length {
		a.destroyRange(n, a.length)
		a.length = n
		return nil
	}
	if err := a.ensureCapacity(n); err != nil {
		return err
	}
	for i := a.length; i < n; i++ {
		if err := construct(i); err != nil {
			a.destroyRange(a.length, i)
			return err
		}
	}
	a.length = n
	return nil
}
