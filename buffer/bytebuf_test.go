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

package buffer_test

import (
	"testing"

	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/errs"
)

func TestCursorInvariantAfterReadWrite(t *testing.T) {
	b, err := buffer.Allocate(4, 16)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = b.WriteBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, _ = b.ReadBytes(3)

	if b.ReaderIndex() < 0 || b.ReaderIndex() > b.WriterIndex() {
		t.Fatalf("invariant broken: r=%d w=%d", b.ReaderIndex(), b.WriterIndex())
	}
	if b.WriterIndex() > b.Capacity() || b.Capacity() > b.MaxCapacity() {
		t.Fatalf("invariant broken: w=%d c=%d m=%d", b.WriterIndex(), b.Capacity(), b.MaxCapacity())
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	b, _ := buffer.Allocate(0, 64)
	if err := b.WriteUint32BE(0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteUint16LE(0x1234); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteUint24BE(0xabcdef); err != nil {
		t.Fatal(err)
	}

	v32, err := b.ReadUint32BE()
	if err != nil || v32 != 0xdeadbeef {
		t.Fatalf("got %x err %v", v32, err)
	}
	v16, err := b.ReadUint16LE()
	if err != nil || v16 != 0x1234 {
		t.Fatalf("got %x err %v", v16, err)
	}
	v24, err := b.ReadUint24BE()
	if err != nil || v24 != 0xabcdef {
		t.Fatalf("got %x err %v", v24, err)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 35, ^uint64(0)}
	b, _ := buffer.Allocate(0, 256)
	for _, c := range cases {
		if err := b.WriteVarint(c); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range cases {
		got, err := b.ReadVarint()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	}
}

func TestReleaseReturnsTrueOnlyOnce(t *testing.T) {
	b, _ := buffer.Allocate(4, 4)
	b.Retain()

	first, err := b.Release()
	if err != nil || first {
		t.Fatalf("first release should not deallocate yet: %v %v", first, err)
	}
	second, err := b.Release()
	if err != nil || !second {
		t.Fatalf("second release should deallocate: %v %v", second, err)
	}

	if _, err := b.ReadByte(); !errs.Is(err, errs.KindRefCount) {
		t.Fatalf("expected ref-count error after release, got %v", err)
	}
}

func TestOverReleaseFails(t *testing.T) {
	b, _ := buffer.Allocate(4, 4)
	if _, err := b.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Release(); !errs.Is(err, errs.KindRefCount) {
		t.Fatalf("expected ref-count error on over-release, got %v", err)
	}
}

func TestSliceAndDuplicateShareStorage(t *testing.T) {
	b, _ := buffer.Allocate(0, 32)
	_, _ = b.WriteBytes([]byte("hello world"))

	dup := b.Duplicate()
	_, _ = dup.ReadBytes(6)
	if b.ReaderIndex() != 0 {
		t.Fatal("duplicate cursor movement must not affect source")
	}

	sl, err := b.Slice(0, 5)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := sl.ReadBytes(5)
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}

	// releasing every view (root + 2) must release exactly once.
	var releases int
	for _, v := range []buffer.Buffer{sl, dup, b} {
		if ok, err := v.Release(); err != nil {
			t.Fatal(err)
		} else if ok {
			releases++
		}
	}
	if releases != 1 {
		t.Fatalf("expected exactly one deallocating release, got %d", releases)
	}
}

func TestGrowBeyondMaxCapacityFails(t *testing.T) {
	b, _ := buffer.Allocate(4, 8)
	if err := b.SetCapacity(16); !errs.Is(err, errs.KindAllocator) {
		t.Fatalf("expected allocator error, got %v", err)
	}
}

func TestCompactShiftsReadableToOrigin(t *testing.T) {
	b, _ := buffer.Allocate(0, 32)
	_, _ = b.WriteBytes([]byte("0123456789"))
	_, _ = b.ReadBytes(4)

	b.Compact()
	if b.ReaderIndex() != 0 {
		t.Fatalf("expected reader index 0 after compact, got %d", b.ReaderIndex())
	}
	if b.WriterIndex() != 6 {
		t.Fatalf("expected writer index 6 after compact, got %d", b.WriterIndex())
	}
	if string(b.Bytes()) != "456789" {
		t.Fatalf("got %q", b.Bytes())
	}
}

func TestSearchHonoursReadableRangeOnly(t *testing.T) {
	b, _ := buffer.Allocate(0, 32)
	_, _ = b.WriteBytes([]byte("AABBCCAA"))
	_, _ = b.ReadBytes(2) // consume the leading "AA"

	if idx := b.Search([]byte("AA")); idx != 4 {
		t.Fatalf("expected match at 4 within the readable range, got %d", idx)
	}
	if idx := b.Search([]byte("ZZ")); idx != -1 {
		t.Fatalf("expected no match, got %d", idx)
	}
}

func TestUnreleasableInhibitsDeallocation(t *testing.T) {
	b, _ := buffer.Allocate(4, 4)
	u := buffer.Unreleasable(b)

	ok, err := u.Release()
	if err != nil || ok {
		t.Fatalf("unreleasable Release must be a no-op, got %v %v", ok, err)
	}
	if b.RefCnt() != 1 {
		t.Fatalf("expected refcount untouched, got %d", b.RefCnt())
	}
	// the underlying buffer must still be usable.
	if err := u.WriteByte('x'); err != nil {
		t.Fatal(err)
	}
}

func TestIndexedFamilyDoesNotMoveCursors(t *testing.T) {
	b, _ := buffer.Allocate(0, 32)
	_, _ = b.WriteBytes([]byte{0, 0, 0, 0})
	if err := b.SetUint32BE(0, 0x01020304); err != nil {
		t.Fatal(err)
	}
	if b.ReaderIndex() != 0 || b.WriterIndex() != 4 {
		t.Fatalf("indexed write moved cursors: r=%d w=%d", b.ReaderIndex(), b.WriterIndex())
	}
	v, err := b.GetUint32BE(0)
	if err != nil || v != 0x01020304 {
		t.Fatalf("got %x err %v", v, err)
	}
	if b.ReaderIndex() != 0 {
		t.Fatalf("indexed read moved reader index to %d", b.ReaderIndex())
	}
}
