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

import "fmt"

// dispatchInbound runs call (an inbound handler method invocation) and, if
// it panics, converts the panic into an error delivered to the same
// node's ExceptionCaught instead of letting it escape onto the channel's
// executor goroutine. A handler that panics mid-read still gets a chance
// to react to its own failure — and the pipeline keeps running — exactly
// as an explicit error return would.
//
// An exception raised this way starts propagation from the handler that
// raised it, not from the head: a handler three links into the chain that
// panics shouldn't make its upstream neighbors re-see an event they
// already handled.
func (n *node) dispatchInbound(call func()) {
	defer func() {
		if r := recover(); r != nil {
			err := asError(r)
			n.inbound.ExceptionCaught(n, err)
		}
	}()
	call()
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("pipeline: recovered panic: %v", r)
}
