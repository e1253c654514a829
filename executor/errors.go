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

import "github.com/sabouaram/nettle/errs"

func errNotRunning() error {
	return errs.New(errs.KindLifecycle, "executor: not running")
}

func errAlreadyShuttingDown() error {
	return errs.New(errs.KindLifecycle, "executor: already shutting down")
}

func errQueueFull(capacity int) error {
	return errs.New(errs.KindRejection, "executor: task queue full (capacity %d)", capacity)
}

func errShuttingDown() error {
	return errs.New(errs.KindRejection, "executor: rejecting task, shutting down")
}

func errShutdownTimeout() error {
	return errs.New(errs.KindIO, "executor: shutdown timed out waiting for quiet period")
}
