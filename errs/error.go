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

package errs

import (
	"errors"
	"fmt"
)

// Error is a classified runtime error. It always carries a Kind and a
// message, and may chain to a parent error for context (for example a
// KindIO error wrapping the net.OpError that triggered it).
type Error struct {
	kind   Kind
	msg    string
	parent error
}

// New builds an *Error of the given kind with a formatted message. It does
// not chain to any parent; use Wrap to attach one.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind whose parent is err. If err is
// nil, Wrap behaves like New with no parent.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), parent: err}
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindUnknown
	}
	return e.kind
}

// Error implements the error interface. The message includes the parent's
// text when present, separated by ": ", matching the stdlib fmt.Errorf
// wrapping convention.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.parent != nil {
		return fmt.Sprintf("%s [%s]: %s", e.msg, e.kind, e.parent.Error())
	}
	return fmt.Sprintf("%s [%s]", e.msg, e.kind)
}

// Unwrap exposes the parent error to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.parent
}

// Is reports whether target is an *Error of the same Kind, or delegates to
// errors.Is against the parent chain otherwise. Two *Error values with the
// same Kind are considered equivalent regardless of message text — callers
// are expected to branch on Kind, not on message content.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	var o *Error
	if errors.As(target, &o) {
		return e.kind == o.kind
	}
	return false
}

// Is reports whether err is a classified *Error of the given kind,
// anywhere in its Unwrap chain.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	for e != nil {
		if e.kind == kind {
			return true
		}
		var next *Error
		if !errors.As(e.parent, &next) {
			return false
		}
		e = next
	}
	return false
}

// KindOf returns the Kind of err if it is (or wraps) a classified *Error,
// and KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}
