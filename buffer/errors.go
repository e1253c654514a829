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

import "github.com/sabouaram/nettle/errs"

func errReleased() error {
	return errs.New(errs.KindRefCount, "buffer: use after release")
}

func errOverRelease(n, have int32) error {
	return errs.New(errs.KindRefCount, "buffer: release(%d) exceeds reference count %d", n, have)
}

func errBadReaderIndex(i, w int) error {
	return errs.New(errs.KindLifecycle, "buffer: reader index %d out of range [0,%d]", i, w)
}

func errBadWriterIndex(i, r, c int) error {
	return errs.New(errs.KindLifecycle, "buffer: writer index %d out of range [%d,%d]", i, r, c)
}

func errIndexOutOfRange(index, limit int) error {
	return errs.New(errs.KindLifecycle, "buffer: index %d out of range [0,%d)", index, limit)
}

func errUnderflow(want, have int) error {
	return errs.New(errs.KindLifecycle, "buffer: need %d readable bytes, have %d", want, have)
}

func errMaxCapacity(want, max int) error {
	return errs.New(errs.KindAllocator, "buffer: requested capacity %d exceeds max-capacity %d", want, max)
}

func errVarintTooLong() error {
	return errs.New(errs.KindFraming, "buffer: varint exceeds 10 bytes")
}

func errCompositeReadOnlyMsg() error {
	return errs.New(errs.KindLifecycle, "buffer: composite buffer is read-only")
}
