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

package pipeline

// runSync performs a structural mutation (the fn) on the channel's own
// executor and blocks the calling goroutine until it's done. Add/Remove/
// Replace rewire prev/next pointers that Fire*/Write/Flush/Close read
// without any lock of their own — confining every rewire to the single
// goroutine that ever runs those reads (the channel's executor) is what
// makes that lock-free traversal safe, the same guarantee the executor
// package gives every other per-channel state.
//
// Calling this from the executor's own goroutine (e.g. a handler adding
// its successor from within ChannelRead) runs fn immediately in place;
// anything added or removed is visible to the rest of the very same
// propagation pass moving through nextInbound/prevOutbound next.
func (p *pipe) runSync(fn func() error) error {
	ex := p.ch.Executor()
	if ex.InExecutor() {
		return fn()
	}
	done := make(chan struct{})
	var result error
	if err := ex.Execute(func() {
		result = fn()
		close(done)
	}); err != nil {
		return err
	}
	<-done
	return result
}
