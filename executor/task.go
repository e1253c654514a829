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

package executor

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// promise is the Future returned by Submit.
type promise struct {
	done chan struct{}
	err  error
}

func newPromise() *promise {
	return &promise{done: make(chan struct{})}
}

func (p *promise) Done() <-chan struct{} { return p.done }
func (p *promise) Err() error            { return p.err }

func (p *promise) complete(err error) {
	p.err = err
	close(p.done)
}

// NewPromise returns a Future and the function that completes it. It lets
// callers outside this package (a channel's outbound write queue, for
// instance) hand out completion handles for operations the executor
// itself isn't running as a Task — a queued write whose promise resolves
// only once the transport has actually sent it, say.
func NewPromise() (Future, func(error)) {
	p := newPromise()
	return p, p.complete
}

// runTask executes fn, recovering a panic into an error and logging it —
// a panicking task must never take the executor's goroutine down with it.
func runTask(fn Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("executor: task panicked: %v", r)
			logrus.WithField("panic", r).Error("executor: recovered panic from task")
		}
	}()
	fn()
	return nil
}

// cancelable implements Cancelable for both one-shot and repeating
// scheduled tasks by flipping a flag the timer checks before each run.
type cancelable struct {
	cancelled *bool
}

func (c *cancelable) Cancel() {
	*c.cancelled = true
}
