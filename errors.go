// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"github.com/pkg/errors"
)

var (
	// ErrAllocation is returned when storage for the requested number of slots
	// cannot be obtained, including sizes whose byte count overflows.
	ErrAllocation = errors.New("dynarray: allocation failed")

	// ErrIndexOutOfRange is returned when a position or index violates the
	// precondition of the operation.
	ErrIndexOutOfRange = errors.New("dynarray: index out of range")

	// ErrEmpty is returned by Front and Back on an empty array.
	ErrEmpty = errors.New("dynarray: empty array")
)

func indexError(op string, index, length int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "%s: index %d, length %d", op, index, length)
}

func rangeError(op string, first, last, length int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "%s: range [%d, %d), length %d", op, first, last, length)
}
