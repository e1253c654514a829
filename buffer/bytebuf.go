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

import (
	"bytes"
	"encoding/binary"
)

// buf is the concrete Buffer implementation backing every root allocation,
// Slice, and Duplicate view. It holds no locks: like the rest of the
// runtime, a Buffer is owned by a single goroutine at a time (typically the
// channel's executor) except for the atomic reference count.
type buf struct {
	st     *store
	base   int
	cap    int
	maxCap int
	r, w   int
}

// newBuf wraps data as a root Buffer. max is the ceiling Capacity() may grow
// to; release is invoked once the last reference is released.
func newBuf(data []byte, max int, release FuncRelease) Buffer {
	return &buf{
		st:     newStore(data, max, release),
		base:   0,
		cap:    len(data),
		maxCap: max,
	}
}

func (b *buf) checkLive() error {
	if !b.st.live() {
		return errReleased()
	}
	return nil
}

func (b *buf) ReaderIndex() int   { return b.r }
func (b *buf) WriterIndex() int   { return b.w }
func (b *buf) Capacity() int      { return b.cap }
func (b *buf) MaxCapacity() int   { return b.maxCap }
func (b *buf) ReadableBytes() int { return b.w - b.r }
func (b *buf) WritableBytes() int { return b.cap - b.w }
func (b *buf) IsReadable() bool   { return b.w > b.r }
func (b *buf) IsWritable() bool   { return b.cap > b.w }
func (b *buf) RefCnt() int32      { return b.st.refc }

func (b *buf) SetReaderIndex(i int) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if i < 0 || i > b.w {
		return errBadReaderIndex(i, b.w)
	}
	b.r = i
	return nil
}

func (b *buf) SetWriterIndex(i int) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if i < b.r || i > b.cap {
		return errBadWriterIndex(i, b.r, b.cap)
	}
	b.w = i
	return nil
}

func (b *buf) window() []byte {
	return b.st.data[b.base : b.base+b.cap]
}

// ensureWritable grows capacity (up to maxCap) so that n more bytes can be
// written at the current writer index, only when this view spans the whole
// backing store (a precondition identical to the one SetCapacity enforces).
func (b *buf) ensureWritable(n int) error {
	if b.w+n <= b.cap {
		return nil
	}
	needed := b.w + n
	if needed > b.maxCap {
		return errMaxCapacity(needed, b.maxCap)
	}
	if err := b.SetCapacity(needed); err != nil {
		return err
	}
	return nil
}

func (b *buf) ReadByte() (byte, error) {
	if err := b.checkLive(); err != nil {
		return 0, err
	}
	if b.ReadableBytes() < 1 {
		return 0, errUnderflow(1, b.ReadableBytes())
	}
	v := b.window()[b.r]
	b.r++
	return v, nil
}

func (b *buf) WriteByte(v byte) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if err := b.ensureWritable(1); err != nil {
		return err
	}
	b.window()[b.w] = v
	b.w++
	return nil
}

func (b *buf) readFixed(n int) ([]byte, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if b.ReadableBytes() < n {
		return nil, errUnderflow(n, b.ReadableBytes())
	}
	out := b.window()[b.r : b.r+n]
	b.r += n
	return out, nil
}

func (b *buf) writeFixed(p []byte) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if err := b.ensureWritable(len(p)); err != nil {
		return err
	}
	copy(b.window()[b.w:], p)
	b.w += len(p)
	return nil
}

func (b *buf) ReadUint16BE() (uint16, error) {
	p, err := b.readFixed(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (b *buf) ReadUint16LE() (uint16, error) {
	p, err := b.readFixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

func (b *buf) ReadUint24BE() (uint32, error) {
	p, err := b.readFixed(3)
	if err != nil {
		return 0, err
	}
	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2]), nil
}

func (b *buf) ReadUint24LE() (uint32, error) {
	p, err := b.readFixed(3)
	if err != nil {
		return 0, err
	}
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16, nil
}

func (b *buf) ReadUint32BE() (uint32, error) {
	p, err := b.readFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (b *buf) ReadUint32LE() (uint32, error) {
	p, err := b.readFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func (b *buf) ReadUint64BE() (uint64, error) {
	p, err := b.readFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

func (b *buf) ReadUint64LE() (uint64, error) {
	p, err := b.readFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func (b *buf) WriteUint16BE(v uint16) error {
	var p [2]byte
	binary.BigEndian.PutUint16(p[:], v)
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint16LE(v uint16) error {
	var p [2]byte
	binary.LittleEndian.PutUint16(p[:], v)
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint24BE(v uint32) error {
	p := [3]byte{byte(v >> 16), byte(v >> 8), byte(v)}
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint24LE(v uint32) error {
	p := [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint32BE(v uint32) error {
	var p [4]byte
	binary.BigEndian.PutUint32(p[:], v)
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint32LE(v uint32) error {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], v)
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint64BE(v uint64) error {
	var p [8]byte
	binary.BigEndian.PutUint64(p[:], v)
	return b.writeFixed(p[:])
}

func (b *buf) WriteUint64LE(v uint64) error {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], v)
	return b.writeFixed(p[:])
}

// ReadVarint reads a little-endian base-128 varint, the same wire encoding
// protobuf uses: 7 payload bits per byte, high bit set on every byte but
// the last.
func (b *buf) ReadVarint() (uint64, error) {
	if err := b.checkLive(); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 10; i++ {
		if b.ReadableBytes() < 1 {
			return 0, errUnderflow(1, b.ReadableBytes())
		}
		c, _ := b.ReadByte()
		v |= uint64(c&0x7f) << (7 * uint(i))
		if c&0x80 == 0 {
			return v, nil
		}
	}
	return 0, errVarintTooLong()
}

func (b *buf) WriteVarint(v uint64) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	var tmp [10]byte
	n := 0
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		tmp[n] = c
		n++
		if v == 0 {
			break
		}
	}
	return b.writeFixed(tmp[:n])
}

func (b *buf) ReadBytes(n int) ([]byte, error) {
	p, err := b.readFixed(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

func (b *buf) WriteBytes(p []byte) (int, error) {
	if err := b.writeFixed(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (b *buf) GetByte(index int) (byte, error) {
	if err := b.checkLive(); err != nil {
		return 0, err
	}
	if index < 0 || index >= b.cap {
		return 0, errIndexOutOfRange(index, b.cap)
	}
	return b.window()[index], nil
}

func (b *buf) SetByte(index int, v byte) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if index < 0 || index >= b.cap {
		return errIndexOutOfRange(index, b.cap)
	}
	b.window()[index] = v
	return nil
}

func (b *buf) GetUint32BE(index int) (uint32, error) {
	if err := b.checkLive(); err != nil {
		return 0, err
	}
	if index < 0 || index+4 > b.cap {
		return 0, errIndexOutOfRange(index, b.cap)
	}
	return binary.BigEndian.Uint32(b.window()[index : index+4]), nil
}

func (b *buf) SetUint32BE(index int, v uint32) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if index < 0 || index+4 > b.cap {
		return errIndexOutOfRange(index, b.cap)
	}
	binary.BigEndian.PutUint32(b.window()[index:index+4], v)
	return nil
}

func (b *buf) Bytes() []byte {
	if !b.st.live() {
		return nil
	}
	return b.window()[b.r:b.w]
}

func (b *buf) Retain() Buffer {
	return b.RetainN(1)
}

func (b *buf) RetainN(n int) Buffer {
	b.st.retain(int32(n))
	return b
}

func (b *buf) Release() (bool, error) {
	return b.ReleaseN(1)
}

func (b *buf) ReleaseN(n int) (bool, error) {
	return b.st.releaseN(int32(n))
}

// Slice returns a co-owning view over [offset, offset+length) measured from
// this buffer's own window origin (index 0, the same coordinate space as
// GetByte/SetByte). The new view's cursors start at [0, length) and its
// MaxCapacity equals length: a slice cannot grow past the range it was cut
// from.
func (b *buf) Slice(offset, length int) (Buffer, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if offset < 0 || length < 0 || offset+length > b.cap {
		return nil, errIndexOutOfRange(offset+length, b.cap)
	}
	b.st.retain(1)
	return &buf{
		st:     b.st,
		base:   b.base + offset,
		cap:    length,
		maxCap: length,
		r:      0,
		w:      length,
	}, nil
}

// Duplicate returns a co-owning view sharing the same window and
// max-capacity as the source, with its own copy of the current cursor
// positions (moving one duplicate's cursors never moves another's).
func (b *buf) Duplicate() Buffer {
	b.st.retain(1)
	return &buf{
		st:     b.st,
		base:   b.base,
		cap:    b.cap,
		maxCap: b.maxCap,
		r:      b.r,
		w:      b.w,
	}
}

// SetCapacity is only supported on a view that spans its entire backing
// store (the root allocation, or a Duplicate of it) — a Slice's window is a
// fixed cut and cannot grow independently of its siblings.
func (b *buf) SetCapacity(newCap int) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if newCap > b.maxCap {
		return errMaxCapacity(newCap, b.maxCap)
	}
	if b.base != 0 || b.cap != len(b.st.data) {
		return errIndexOutOfRange(newCap, b.cap) // not a full-store view
	}
	b.st.grow(newCap)
	b.cap = newCap
	if b.r > newCap {
		b.r = newCap
	}
	if b.w > newCap {
		b.w = newCap
	}
	return nil
}

// Compact shifts the readable range to the window's origin. Implementations
// are free to no-op when ReaderIndex is already 0, which is exactly what
// happens here since the shift amount would be zero.
func (b *buf) Compact() {
	if b.r == 0 {
		return
	}
	win := b.window()
	n := copy(win, win[b.r:b.w])
	b.w = n
	b.r = 0
}

func (b *buf) Search(pattern []byte) int {
	if !b.st.live() || len(pattern) == 0 {
		return -1
	}
	return bytes.Index(b.window()[b.r:b.w], pattern)
}
