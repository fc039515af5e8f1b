// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"io"
)

const readBufferSize = 4 * 1024 // 4KB read buffer

// Buffer is a bytes.Buffer-like struct backed by an Array[byte].
// It implements io.Writer, io.Reader, io.ByteReader, io.ByteWriter,
// io.ReaderFrom and io.WriterTo. Reads consume bytes from the front.
type Buffer struct {
	alloc   Allocator
	data    *Array[byte]
	readBuf *Array[byte] // intermediate buffer for ReadFrom
}

// NewBuffer creates a new Buffer whose storage comes from alloc.
// If alloc is nil, it uses the Go heap.
func NewBuffer(alloc Allocator) *Buffer {
	return &Buffer{
		alloc: alloc,
		data:  New(WithAllocator[byte](alloc)),
	}
}

// Write implements io.Writer interface.
// It appends p to the buffer; on allocation failure nothing is written.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := b.data.AppendSlice(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte writes a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	return b.data.Append(c)
}

// WriteString writes a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	return b.Write([]byte(s))
}

// WriteTo implements io.WriterTo. Bytes accepted by w are removed from the buffer.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	if b.data.Empty() {
		return 0, nil
	}

	m, err := w.Write(b.data.Slice())
	if m > 0 {
		n = int64(m)
		b.discard(m)
	}
	return n, err
}

// Read reads up to len(p) bytes from the buffer into p.
// It returns io.EOF once the buffer holds fewer bytes than requested.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.data.Empty() {
		return 0, io.EOF
	}

	n = copy(p, b.data.Slice())
	if n < len(p) {
		err = io.EOF
	}
	b.discard(n)
	return n, err
}

// ReadByte reads and returns the next byte from the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	c, err := b.data.Front()
	if err != nil {
		return 0, io.EOF
	}
	b.discard(1)
	return c, nil
}

// Bytes returns a slice of length b.Len() holding the unread portion of the buffer.
// The slice is valid for use only until the next buffer modification.
func (b *Buffer) Bytes() []byte {
	if b.data.Empty() {
		return []byte{}
	}
	return b.data.Slice()
}

// String returns the contents of the unread portion of the buffer as a string.
func (b *Buffer) String() string {
	return string(b.data.Slice())
}

// Len returns the number of bytes of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return b.data.Len()
}

// Cap returns the capacity of the buffer's storage.
func (b *Buffer) Cap() int {
	return b.data.Cap()
}

// Grow makes room for at least n more bytes without another allocation.
func (b *Buffer) Grow(n int) error {
	if n <= 0 {
		return nil
	}
	return b.data.Reserve(b.data.Len() + n)
}

// Reset resets the buffer to be empty but keeps its storage.
func (b *Buffer) Reset() {
	b.data.Clear()
}

// Truncate discards all but the first n unread bytes from the buffer.
// It panics if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.data.Len() {
		panic("dynarray: truncation out of range")
	}
	// Shrinking never allocates.
	_ = b.data.Resize(n)
}

// Next returns a copy of the next n bytes from the buffer,
// advancing the buffer as if the bytes had been returned by Read.
func (b *Buffer) Next(n int) []byte {
	n = min(n, b.data.Len())
	if n <= 0 {
		return []byte{}
	}

	result := make([]byte, n)
	copy(result, b.data.Slice())
	b.discard(n)
	return result
}

// ReadFrom implements io.ReaderFrom interface.
// It reads data from r until EOF or error, writing it to the buffer.
// The intermediate read buffer comes from the buffer's allocator.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	if b.readBuf == nil {
		readBuf, err := NewWithLen(readBufferSize, WithAllocator[byte](b.alloc))
		if err != nil {
			return 0, err
		}
		b.readBuf = readBuf
	}

	p := b.readBuf.Slice()
	for {
		nr, er := r.Read(p)
		if nr > 0 {
			if _, ew := b.Write(p[:nr]); ew != nil {
				return n, ew
			}
			n += int64(nr)
		}
		if er != nil {
			if er == io.EOF {
				return n, nil
			}
			return n, er
		}
	}
}

// Release gives the buffer's storage back to its allocator. The buffer is empty afterwards.
func (b *Buffer) Release() {
	b.data.Release()
	if b.readBuf != nil {
		b.readBuf.Release()
		b.readBuf = nil
	}
}

// discard drops the first n bytes, n <= Len.
func (b *Buffer) discard(n int) {
	_, _ = b.data.EraseRange(0, n)
}
