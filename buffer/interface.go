/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package buffer

// FuncRelease is called exactly once, the moment a Buffer's reference count
// reaches zero. A pooled allocator uses it to return the backing storage to
// an arena; an unpooled allocator leaves it nil and lets the garbage
// collector reclaim the slice.
type FuncRelease func()

// Buffer is a reference-counted byte container with independent reader and
// writer cursors. See the package doc for the invariants every
// implementation (root allocation, slice, duplicate, composite) upholds.
type Buffer interface {
	// ReaderIndex returns the current read cursor.
	ReaderIndex() int
	// WriterIndex returns the current write cursor.
	WriterIndex() int
	// Capacity returns the current allocated size.
	Capacity() int
	// MaxCapacity returns the ceiling Capacity may grow to.
	MaxCapacity() int

	// SetReaderIndex moves the read cursor. It fails if i is outside
	// [0, WriterIndex()].
	SetReaderIndex(i int) error
	// SetWriterIndex moves the write cursor. It fails if i is outside
	// [ReaderIndex(), Capacity()].
	SetWriterIndex(i int) error

	// ReadableBytes returns WriterIndex() - ReaderIndex().
	ReadableBytes() int
	// WritableBytes returns Capacity() - WriterIndex().
	WritableBytes() int
	// IsReadable reports whether ReadableBytes() > 0.
	IsReadable() bool
	// IsWritable reports whether WritableBytes() > 0.
	IsWritable() bool

	// ReadByte reads and consumes one byte.
	ReadByte() (byte, error)
	// WriteByte appends one byte, growing capacity if needed and allowed.
	WriteByte(b byte) error

	// ReadUint16BE/LE, ReadUint32BE/LE, ReadUint64BE/LE read and consume a
	// fixed-width unsigned integer in the named byte order.
	ReadUint16BE() (uint16, error)
	ReadUint16LE() (uint16, error)
	ReadUint24BE() (uint32, error)
	ReadUint24LE() (uint32, error)
	ReadUint32BE() (uint32, error)
	ReadUint32LE() (uint32, error)
	ReadUint64BE() (uint64, error)
	ReadUint64LE() (uint64, error)

	// WriteUint16BE/LE, WriteUint32BE/LE, WriteUint64BE/LE append a
	// fixed-width unsigned integer in the named byte order.
	WriteUint16BE(v uint16) error
	WriteUint16LE(v uint16) error
	WriteUint24BE(v uint32) error
	WriteUint24LE(v uint32) error
	WriteUint32BE(v uint32) error
	WriteUint32LE(v uint32) error
	WriteUint64BE(v uint64) error
	WriteUint64LE(v uint64) error

	// ReadVarint reads a little-endian base-128 varint (the protobuf
	// encoding), consuming between 1 and 10 bytes.
	ReadVarint() (uint64, error)
	// WriteVarint appends v as a little-endian base-128 varint.
	WriteVarint(v uint64) error

	// ReadBytes consumes and returns exactly n bytes as a fresh copy.
	ReadBytes(n int) ([]byte, error)
	// WriteBytes appends a copy of p, growing capacity if needed and
	// allowed; it returns the number of bytes written (len(p), or fewer
	// only on an error path after growth failed).
	WriteBytes(p []byte) (int, error)

	// GetByte reads the byte at index without moving ReaderIndex.
	GetByte(index int) (byte, error)
	// SetByte writes the byte at index without moving WriterIndex. index
	// must be < Capacity(); SetByte never grows the buffer.
	SetByte(index int, b byte) error
	// GetUint32BE reads a 32-bit big-endian integer at index without
	// moving ReaderIndex.
	GetUint32BE(index int) (uint32, error)
	// SetUint32BE writes a 32-bit big-endian integer at index without
	// moving WriterIndex or growing the buffer.
	SetUint32BE(index int, v uint32) error

	// Bytes returns the readable range [ReaderIndex, WriterIndex) without
	// copying or moving either cursor. The returned slice aliases the
	// buffer's storage and is only valid until the next mutating call.
	Bytes() []byte

	// Retain increments the reference count by one and returns the same
	// Buffer for chaining.
	Retain() Buffer
	// RetainN increments the reference count by n and returns the same
	// Buffer for chaining.
	RetainN(n int) Buffer
	// Release decrements the reference count by one. It returns true, and
	// only true, on the call that brings the count to zero — the instant
	// deallocation happens.
	Release() (bool, error)
	// ReleaseN decrements the reference count by n. It returns true, and
	// only true, on the call that brings the count to zero.
	ReleaseN(n int) (bool, error)
	// RefCnt returns the current reference count. It is racy the instant
	// it returns under concurrent retain/release but is useful for tests
	// and diagnostics.
	RefCnt() int32

	// Slice returns a new Buffer over [offset, offset+length) of the
	// storage, with offset counted from index 0 (not from ReaderIndex).
	// For root, slice and duplicate buffers the result shares storage and
	// co-owns the reference count with the source. A composite buffer
	// instead returns an independent copy of those bytes with its own
	// reference count; writes to it are not seen by the components.
	Slice(offset, length int) (Buffer, error)
	// Duplicate returns a new Buffer view sharing storage and the
	// reference count, with independent cursors initialised to the
	// source's current cursor positions.
	Duplicate() Buffer

	// SetCapacity grows (or shrinks) Capacity(). Growing beyond
	// MaxCapacity() fails with an Allocator-kind error. Shrinking truncates
	// both cursors to newCap if they exceed it.
	SetCapacity(newCap int) error

	// Compact shifts the readable range to the origin: WriterIndex -=
	// ReaderIndex, ReaderIndex = 0. It is a no-op when ReaderIndex is
	// already 0. On a composite buffer Compact does nothing: its bytes and
	// cursors stay where they are.
	Compact()

	// Search returns the index, relative to ReaderIndex, of the first
	// occurrence of pattern within the readable range, or -1 if absent.
	Search(pattern []byte) int
}
