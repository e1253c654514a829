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

// Package flowcontrol implements the back-pressure collaborator of §4.3/
// §6.5: a pipeline handler that holds inbound messages in a per-channel
// queue and releases exactly one per explicit Release call, so a slow
// consumer can pace delivery independent of how fast the transport reads.
package flowcontrol

import (
	"container/list"
	"sync"

	"github.com/sabouaram/nettle/pipeline"
)

// Releaser is implemented by the flow-control handler itself: the one
// extra capability a channel's Read() needs beyond the standard
// pipeline.Handler contract, looked up by name once the handler has been
// added.
type Releaser interface {
	// Release hands the single oldest queued message, if any, onward to
	// the next inbound handler. It returns false if the queue was empty.
	Release(ctx pipeline.HandlerContext) bool
	// Pending returns the number of messages currently queued.
	Pending() int
}

// handler is the queueing InboundHandler. mu guards the queue, and
// ChannelRead, Release and Pending all take it: ChannelRead runs on the
// channel's executor, while channel.Read calls Release from whichever
// goroutine called Read.
type handler struct {
	pipeline.InboundAdapter

	mu    sync.Mutex
	queue *list.List
}

// New returns a fresh flow-control handler with an empty queue.
func New() pipeline.Handler {
	return &handler{queue: list.New()}
}

func (h *handler) ChannelRead(ctx pipeline.HandlerContext, msg any) {
	h.mu.Lock()
	h.queue.PushBack(msg)
	h.mu.Unlock()
}

func (h *handler) Release(ctx pipeline.HandlerContext) bool {
	h.mu.Lock()
	front := h.queue.Front()
	if front == nil {
		h.mu.Unlock()
		return false
	}
	h.queue.Remove(front)
	h.mu.Unlock()

	ctx.FireChannelRead(front.Value)
	return true
}

func (h *handler) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.Len()
}
