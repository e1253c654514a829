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

// Package errs provides the runtime's error kind taxonomy: a small, fixed
// set of numeric codes classifying every failure the core can raise, plus a
// chainable error type carrying an optional parent hierarchy.
//
// Unlike a general-purpose error package, errs only models the six kinds the
// core runtime actually raises: lifecycle, reference-count, allocator,
// framing, I/O, and rejection errors. Callers match on Kind rather than on
// concrete error values, and every *Error remains compatible with the
// standard errors.Is/errors.As machinery.
package errs

import "strconv"

// Kind classifies a runtime error into one of a fixed set of categories.
// Unlike an HTTP-style open-ended status code, Kind is a closed enumeration:
// new kinds are added here, not invented ad hoc at call sites.
type Kind uint8

const (
	// KindUnknown is the zero value, used only for errors constructed
	// without a specific classification.
	KindUnknown Kind = iota

	// KindLifecycle covers operations on an unregistered or closed channel,
	// and double-registration attempts.
	KindLifecycle

	// KindRefCount covers use-after-release and over-release of a pooled
	// or reference-counted buffer.
	KindRefCount

	// KindAllocator covers a requested capacity exceeding max-capacity, and
	// out-of-memory conditions from the backing allocator.
	KindAllocator

	// KindFraming covers a decoder observing a frame exceeding its
	// configured maximum, or a malformed header.
	KindFraming

	// KindIO covers a transport reporting a peer reset, EOF, timeout, or
	// write failure.
	KindIO

	// KindRejection covers a task submitted to a shutting-down executor or
	// to a full bounded queue.
	KindRejection
)

// String renders the Kind using its taxonomy name, not its numeric value,
// so log lines stay readable without a lookup table.
func (k Kind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindRefCount:
		return "ref-count"
	case KindAllocator:
		return "allocator"
	case KindFraming:
		return "framing"
	case KindIO:
		return "io"
	case KindRejection:
		return "rejection"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}
