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

import "github.com/sabouaram/nettle/executor"

// node is both a link in the pipeline's doubly linked list and the
// HandlerContext a handler sees, so Fire*/Write/Flush/Close naturally
// resume propagation from the node's own position rather than the ends.
//
// inbound/outbound cache the result of type-asserting handler against
// InboundHandler/OutboundHandler once, at add time — the event-kind
// bitmask for this node — so propagation skips nodes that can't receive a
// given direction without re-asserting on every event.
type node struct {
	name    string
	handler Handler

	inbound  InboundHandler
	outbound OutboundHandler

	prev, next *node
	p          *pipe
}

func newNode(name string, h Handler) *node {
	n := &node{name: name, handler: h}
	n.inbound, _ = h.(InboundHandler)
	n.outbound, _ = h.(OutboundHandler)
	return n
}

func (n *node) Name() string               { return n.name }
func (n *node) Pipeline() Pipeline          { return n.p }
func (n *node) Channel() Channel            { return n.p.ch }
func (n *node) Executor() executor.Executor { return n.p.ch.Executor() }

// runInExecutor invokes fn on the pipeline's channel's executor, running
// it inline when already there (or when the channel has no executor bound
// yet) and marshalling through Execute otherwise — the same "hop if not on
// the event loop" rule a real channel applies to any externally triggered
// propagation.
func (n *node) runInExecutor(fn func()) {
	ex := n.Executor()
	if ex == nil || ex.InExecutor() {
		fn()
		return
	}
	_ = ex.Execute(fn)
}

func (n *node) nextInbound() *node {
	for cur := n.next; cur != nil; cur = cur.next {
		if cur.inbound != nil {
			return cur
		}
	}
	return nil
}

func (n *node) prevOutbound() *node {
	for cur := n.prev; cur != nil; cur = cur.prev {
		if cur.outbound != nil {
			return cur
		}
	}
	return nil
}

func (n *node) FireChannelRegistered() {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.ChannelRegistered(t) }) })
	}
}

func (n *node) FireChannelUnregistered() {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.ChannelUnregistered(t) }) })
	}
}

func (n *node) FireChannelActive() {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.ChannelActive(t) }) })
	}
}

func (n *node) FireChannelInactive() {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.ChannelInactive(t) }) })
	}
}

func (n *node) FireChannelRead(msg any) {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.ChannelRead(t, msg) }) })
	}
}

func (n *node) FireChannelReadComplete() {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.ChannelReadComplete(t) }) })
	}
}

func (n *node) FireUserEventTriggered(evt any) {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.dispatchInbound(func() { t.inbound.UserEventTriggered(t, evt) }) })
	}
}

func (n *node) FireExceptionCaught(err error) {
	if t := n.nextInbound(); t != nil {
		n.runInExecutor(func() { t.inbound.ExceptionCaught(t, err) })
	}
}

func (n *node) Write(msg any, promise executor.Future) {
	if t := n.prevOutbound(); t != nil {
		n.runInExecutor(func() { t.outbound.Write(t, msg, promise) })
	}
}

func (n *node) Flush() {
	if t := n.prevOutbound(); t != nil {
		n.runInExecutor(func() { t.outbound.Flush(t) })
	}
}

func (n *node) Close() {
	if t := n.prevOutbound(); t != nil {
		n.runInExecutor(func() { t.outbound.Close(t) })
	}
}
