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

package errs_test

import (
	"errors"
	"io"
	"testing"

	"github.com/sabouaram/nettle/errs"
)

func TestNewCarriesKind(t *testing.T) {
	e := errs.New(errs.KindFraming, "frame too large: %d", 9001)
	if e.Kind() != errs.KindFraming {
		t.Fatalf("expected KindFraming, got %s", e.Kind())
	}
	if !errs.Is(e, errs.KindFraming) {
		t.Fatal("expected errs.Is to match KindFraming")
	}
}

func TestWrapUnwrapsParent(t *testing.T) {
	e := errs.Wrap(errs.KindIO, io.ErrClosedPipe, "write failed")
	if !errors.Is(e, io.ErrClosedPipe) {
		t.Fatal("expected errors.Is to reach the wrapped parent")
	}
	if errs.KindOf(e) != errs.KindIO {
		t.Fatalf("expected KindIO, got %s", errs.KindOf(e))
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if errs.KindOf(io.EOF) != errs.KindUnknown {
		t.Fatal("expected KindUnknown for an unclassified error")
	}
}

func TestIsChainsThroughParents(t *testing.T) {
	root := errs.New(errs.KindAllocator, "oom")
	mid := errs.Wrap(errs.KindIO, root, "write failed")
	if !errs.Is(mid, errs.KindAllocator) {
		t.Fatal("expected errs.Is to walk the parent chain")
	}
	if !errs.Is(mid, errs.KindIO) {
		t.Fatal("expected errs.Is to match the immediate kind too")
	}
}

func TestErrorStringIncludesKind(t *testing.T) {
	e := errs.New(errs.KindRejection, "queue full")
	want := "queue full [rejection]"
	if e.Error() != want {
		t.Fatalf("got %q want %q", e.Error(), want)
	}
}
