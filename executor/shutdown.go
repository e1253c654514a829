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
	"context"
	"time"
)

// ShutdownGracefully moves the executor into stateShuttingDown (rejecting
// new submissions from this point on), then waits for the worker loop to
// observe a quiet period — no queued task, no due scheduled task, for at
// least quietPeriod — before it exits. timeout bounds the whole wait
// regardless of how the quiet period is progressing.
func (e *exec) ShutdownGracefully(ctx context.Context, quietPeriod, timeout time.Duration) error {
	if e.runStateValue() == stateTerminated {
		return nil
	}
	e.shutdownOnce.Do(func() {
		e.quietPeriod.Store(int64(quietPeriod))
		e.state.CompareAndSwap(uint32(stateRunning), uint32(stateShuttingDown))
		e.q.signal()
	})

	var deadline <-chan time.Time
	if timeout > 0 {
		tm := time.NewTimer(timeout)
		defer tm.Stop()
		deadline = tm.C
	}

	select {
	case <-e.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-deadline:
		return errShutdownTimeout()
	}
}
