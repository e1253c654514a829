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

package pool

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// sentinel is the object a finalizer is attached to. It is kept separate
// from the allocation it watches so that the finalizer closure holding a
// reference to it doesn't itself keep the allocation reachable.
type sentinel struct {
	_ byte
}

// tracker samples allocations per its configured LeakLevel and reports,
// via a finalizer, any sampled allocation that is garbage collected
// without having been released first.
type tracker struct {
	level   LeakLevel
	counter uint64
}

func newTracker(level LeakLevel) *tracker {
	return &tracker{level: level}
}

// watch arms leak detection for one allocation of the given size, picked
// up by sampling. It returns a disarm function that MUST be called once
// the allocation is properly released; calling it prevents the finalizer
// from ever firing.
func (t *tracker) watch(size int) (disarm func()) {
	d := t.level.sampleDenominator()
	if d == 0 {
		return func() {}
	}
	n := atomic.AddUint64(&t.counter, 1)
	if n%uint64(d) != 0 {
		return func() {}
	}

	s := &sentinel{}
	var trace string
	if t.level.capturesTrace() {
		trace = captureTrace(3)
	}
	runtime.SetFinalizer(s, func(*sentinel) {
		if trace != "" {
			logrus.WithField("size", size).Warnf("pool: buffer leaked, allocated at:\n%s", trace)
		} else {
			logrus.WithField("size", size).Warn("pool: buffer leaked before release")
		}
	})
	return func() {
		runtime.SetFinalizer(s, nil)
	}
}

func captureTrace(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "\t%s\n\t\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}
