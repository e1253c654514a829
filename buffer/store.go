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

import "sync/atomic"

// store is the backing array shared by a root Buffer and every view
// (Slice, Duplicate) taken from it. Exactly one store underlies a family of
// co-owning views; release is invoked once, the instant the shared
// reference count reaches zero.
type store struct {
	data    []byte
	max     int
	refc    int32
	release FuncRelease
}

func newStore(data []byte, max int, release FuncRelease) *store {
	return &store{data: data, max: max, refc: 1, release: release}
}

func (s *store) live() bool {
	return atomic.LoadInt32(&s.refc) > 0
}

func (s *store) retain(n int32) {
	atomic.AddInt32(&s.refc, n)
}

// releaseN decrements the shared count by n and invokes the release hook
// exactly once, on the call that brings the count to zero or below.
// It returns true on that call, and an over-release error if the count was
// already at or below zero before this call.
func (s *store) releaseN(n int32) (bool, error) {
	for {
		cur := atomic.LoadInt32(&s.refc)
		if cur <= 0 {
			return false, errOverRelease(n, cur)
		}
		next := cur - n
		if !atomic.CompareAndSwapInt32(&s.refc, cur, next) {
			continue
		}
		if next <= 0 {
			if s.release != nil {
				s.release()
			}
			return true, nil
		}
		return false, nil
	}
}

func (s *store) grow(newCap int) {
	if newCap <= len(s.data) {
		s.data = s.data[:newCap]
		return
	}
	grown := make([]byte, newCap)
	copy(grown, s.data)
	s.data = grown
}
