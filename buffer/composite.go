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

import "encoding/binary"

// composite presents several component Buffers as one logical concatenation.
// Each component is co-owned: NewComposite retains every component on
// construction, and releasing the composite to zero releases each of them
// in turn. A composite is read-only — it exists to let a codec decode
// across a scatter of buffers without copying them into one contiguous
// allocation first; writes go through the individual components instead.
type composite struct {
	st     *store
	comps  []Buffer
	base   []int // each component's own reader index when it was added
	offs   []int // cumulative logical offset of each component
	total  int
	maxCap int
	r, w   int
}

// NewComposite concatenates comps, in order, into a single read-only
// Buffer. Each component's current readable range ([ReaderIndex,
// WriterIndex)) becomes its logical contribution; the components are
// retained for the lifetime of the composite.
func NewComposite(maxCapacity int, comps ...Buffer) Buffer {
	c := &composite{maxCap: maxCapacity}
	offset := 0
	for _, cp := range comps {
		cp.Retain()
		c.comps = append(c.comps, cp)
		c.base = append(c.base, cp.ReaderIndex())
		c.offs = append(c.offs, offset)
		offset += cp.ReadableBytes()
	}
	c.total = offset
	c.w = offset
	captured := c.comps
	c.st = newStore(nil, maxCapacity, func() {
		for _, cp := range captured {
			_, _ = cp.Release()
		}
	})
	return c
}

func (c *composite) checkLive() error {
	if !c.st.live() {
		return errReleased()
	}
	return nil
}

func (c *composite) ReaderIndex() int   { return c.r }
func (c *composite) WriterIndex() int   { return c.w }
func (c *composite) Capacity() int      { return c.total }
func (c *composite) MaxCapacity() int   { return c.maxCap }
func (c *composite) ReadableBytes() int { return c.w - c.r }
func (c *composite) WritableBytes() int { return c.total - c.w }
func (c *composite) IsReadable() bool   { return c.w > c.r }
func (c *composite) IsWritable() bool   { return c.total > c.w }
func (c *composite) RefCnt() int32      { return c.st.refc }

func (c *composite) SetReaderIndex(i int) error {
	if err := c.checkLive(); err != nil {
		return err
	}
	if i < 0 || i > c.w {
		return errBadReaderIndex(i, c.w)
	}
	c.r = i
	return nil
}

func (c *composite) SetWriterIndex(i int) error {
	if err := c.checkLive(); err != nil {
		return err
	}
	if i < c.r || i > c.total {
		return errBadWriterIndex(i, c.r, c.total)
	}
	c.w = i
	return nil
}

// locate maps an absolute logical index into the component holding it and
// the index local to that component's own window.
func (c *composite) locate(abs int) (compIdx, local int, ok bool) {
	for i := len(c.offs) - 1; i >= 0; i-- {
		if abs >= c.offs[i] {
			return i, c.base[i] + (abs - c.offs[i]), true
		}
	}
	return 0, 0, false
}

// extract copies n logical bytes starting at abs, crossing component
// boundaries transparently.
func (c *composite) extract(abs, n int) ([]byte, error) {
	if abs < 0 || n < 0 || abs+n > c.total {
		return nil, errIndexOutOfRange(abs+n, c.total)
	}
	out := make([]byte, 0, n)
	remaining := n
	cursor := abs
	for remaining > 0 {
		ci, local, ok := c.locate(cursor)
		if !ok {
			return nil, errIndexOutOfRange(cursor, c.total)
		}
		comp := c.comps[ci]
		compEnd := c.offs[ci] + comp.ReadableBytes()
		take := compEnd - cursor
		if take > remaining {
			take = remaining
		}
		for k := 0; k < take; k++ {
			v, err := comp.GetByte(local + k)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		cursor += take
		remaining -= take
	}
	return out, nil
}

func (c *composite) readN(n int) ([]byte, error) {
	if err := c.checkLive(); err != nil {
		return nil, err
	}
	if c.ReadableBytes() < n {
		return nil, errUnderflow(n, c.ReadableBytes())
	}
	out, err := c.extract(c.r, n)
	if err != nil {
		return nil, err
	}
	c.r += n
	return out, nil
}

func (c *composite) ReadByte() (byte, error) {
	p, err := c.readN(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (c *composite) ReadUint16BE() (uint16, error) {
	p, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (c *composite) ReadUint16LE() (uint16, error) {
	p, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

func (c *composite) ReadUint24BE() (uint32, error) {
	p, err := c.readN(3)
	if err != nil {
		return 0, err
	}
	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2]), nil
}

func (c *composite) ReadUint24LE() (uint32, error) {
	p, err := c.readN(3)
	if err != nil {
		return 0, err
	}
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16, nil
}

func (c *composite) ReadUint32BE() (uint32, error) {
	p, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (c *composite) ReadUint32LE() (uint32, error) {
	p, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func (c *composite) ReadUint64BE() (uint64, error) {
	p, err := c.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

func (c *composite) ReadUint64LE() (uint64, error) {
	p, err := c.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func (c *composite) ReadVarint() (uint64, error) {
	if err := c.checkLive(); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 10; i++ {
		cb, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(cb&0x7f) << (7 * uint(i))
		if cb&0x80 == 0 {
			return v, nil
		}
	}
	return 0, errVarintTooLong()
}

func (c *composite) ReadBytes(n int) ([]byte, error) {
	return c.readN(n)
}

func (c *composite) notWritable() error {
	return errCompositeReadOnlyMsg()
}

func (c *composite) WriteByte(byte) error                { return c.notWritable() }
func (c *composite) WriteUint16BE(uint16) error           { return c.notWritable() }
func (c *composite) WriteUint16LE(uint16) error           { return c.notWritable() }
func (c *composite) WriteUint24BE(uint32) error           { return c.notWritable() }
func (c *composite) WriteUint24LE(uint32) error           { return c.notWritable() }
func (c *composite) WriteUint32BE(uint32) error           { return c.notWritable() }
func (c *composite) WriteUint32LE(uint32) error           { return c.notWritable() }
func (c *composite) WriteUint64BE(uint64) error           { return c.notWritable() }
func (c *composite) WriteUint64LE(uint64) error           { return c.notWritable() }
func (c *composite) WriteVarint(uint64) error             { return c.notWritable() }
func (c *composite) WriteBytes(p []byte) (int, error)     { return 0, c.notWritable() }
func (c *composite) SetByte(int, byte) error              { return c.notWritable() }
func (c *composite) SetUint32BE(int, uint32) error        { return c.notWritable() }
func (c *composite) SetCapacity(int) error                { return c.notWritable() }

func (c *composite) GetByte(index int) (byte, error) {
	p, err := c.extract(index, 1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (c *composite) GetUint32BE(index int) (uint32, error) {
	p, err := c.extract(index, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (c *composite) Bytes() []byte {
	if !c.st.live() {
		return nil
	}
	out, err := c.extract(c.r, c.w-c.r)
	if err != nil {
		return nil
	}
	return out
}

func (c *composite) Retain() Buffer     { return c.RetainN(1) }
func (c *composite) RetainN(n int) Buffer {
	c.st.retain(int32(n))
	return c
}
func (c *composite) Release() (bool, error)      { return c.ReleaseN(1) }
func (c *composite) ReleaseN(n int) (bool, error) { return c.st.releaseN(int32(n)) }

func (c *composite) Slice(offset, length int) (Buffer, error) {
	p, err := c.extract(offset, length)
	if err != nil {
		return nil, err
	}
	return newBuf(p, length, nil), nil
}

func (c *composite) Duplicate() Buffer {
	c.st.retain(1)
	return &composite{
		st:     c.st,
		comps:  c.comps,
		base:   c.base,
		offs:   c.offs,
		total:  c.total,
		maxCap: c.maxCap,
		r:      c.r,
		w:      c.w,
	}
}

func (c *composite) Compact() {
	if c.r == 0 {
		return
	}
	// Compacting a composite would require copying trailing components'
	// bytes into a fresh contiguous region; since components are shared
	// with other owners, a composite instead just drops the consumed
	// logical prefix from view by re-basing the cursors is not possible
	// without mutating shared components, so Compact on a composite only
	// reports already-compacted ranges as a no-op and otherwise does
	// nothing: callers that need a compacted contiguous buffer should
	// extract() into one via ReadBytes(ReadableBytes()).
}

func (c *composite) Search(pattern []byte) int {
	if !c.st.live() || len(pattern) == 0 || c.ReadableBytes() == 0 {
		return -1
	}
	window, err := c.extract(c.r, c.ReadableBytes())
	if err != nil {
		return -1
	}
	return indexOf(window, pattern)
}

func indexOf(haystack, needle []byte) int {
	if len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
