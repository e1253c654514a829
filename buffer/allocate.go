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

// Allocate builds an unpooled root Buffer of the given initial capacity and
// max-capacity. It is the simplest possible Allocator: no arena, no cache,
// no leak detection — just a Go slice and a reference count. Production
// code normally obtains buffers from a pool.Allocator instead; Allocate
// exists for tests, for huge allocations a pool bypasses anyway (§4.1), and
// for any caller that does not need pooling's hot-path benefits.
func Allocate(initial, max int) (Buffer, error) {
	if initial > max {
		return nil, errMaxCapacity(initial, max)
	}
	return newBuf(make([]byte, initial), max, nil), nil
}

// Wrap builds a root Buffer over an existing slice, treating its current
// length as both initial capacity and writer index (the common case: data
// already read from somewhere). MaxCapacity equals cap(data); growing the
// capacity past len(data) allocates a new backing array and copies into
// it, so later writes no longer reach data.
func Wrap(data []byte) Buffer {
	b := newBuf(data, capOrLen(data), nil).(*buf)
	b.w = len(data)
	return b
}

// FromPool builds a root Buffer over a slice carved out of a pool.Allocator,
// zero readable/writable at the start (matching Allocate's convention), with
// release wired to whatever the pool needs to do to reclaim the block (return
// it to a cache, or to its owning arena). Only pool.Allocator is expected to
// call this; everyone else should go through the pool.
func FromPool(data []byte, maxCapacity int, release FuncRelease) Buffer {
	return newBuf(data, maxCapacity, release)
}

func capOrLen(data []byte) int {
	if c := cap(data); c > len(data) {
		return c
	}
	return len(data)
}

// unreleasable wraps a Buffer so that Retain/Release/RetainN/ReleaseN
// become no-ops, inhibiting deallocation while every other method is
// forwarded unchanged to the wrapped Buffer (Go's interface embedding does
// this for free for everything not overridden below).
type unreleasable struct {
	Buffer
}

// Unreleasable returns a view of b whose reference-count operations are
// no-ops: Retain/RetainN return the wrapper itself, and Release/ReleaseN
// always report false with no error. Every other operation (reads, writes,
// slicing) passes straight through to b.
func Unreleasable(b Buffer) Buffer {
	return &unreleasable{Buffer: b}
}

func (u *unreleasable) Retain() Buffer        { return u }
func (u *unreleasable) RetainN(int) Buffer    { return u }
func (u *unreleasable) Release() (bool, error) { return false, nil }
func (u *unreleasable) ReleaseN(int) (bool, error) {
	return false, nil
}
