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

import (
	"github.com/sabouaram/nettle/executor"
	"github.com/sirupsen/logrus"
)

// headHandler is the pipeline's outbound terminus: a Write/Flush/Close
// that reaches it without any real OutboundHandler claiming it performs
// the actual transport operation.
type headHandler struct {
	write   func(msg any, promise executor.Future)
	flush   func()
	closeFn func()
}

func (h *headHandler) HandlerAdded(ctx HandlerContext)   {}
func (h *headHandler) HandlerRemoved(ctx HandlerContext) {}
func (h *headHandler) Write(ctx HandlerContext, msg any, promise executor.Future) {
	h.write(msg, promise)
}
func (h *headHandler) Flush(ctx HandlerContext) { h.flush() }
func (h *headHandler) Close(ctx HandlerContext) { h.closeFn() }

// tailHandler is the pipeline's inbound terminus. Every event that
// reaches it unclaimed is simply dropped, except ExceptionCaught: an
// exception nothing in the pipeline handled is noteworthy enough to log
// rather than silently discard.
type tailHandler struct{}

func (t *tailHandler) HandlerAdded(ctx HandlerContext)        {}
func (t *tailHandler) HandlerRemoved(ctx HandlerContext)      {}
func (t *tailHandler) ChannelRegistered(ctx HandlerContext)   {}
func (t *tailHandler) ChannelUnregistered(ctx HandlerContext) {}
func (t *tailHandler) ChannelActive(ctx HandlerContext)       {}
func (t *tailHandler) ChannelInactive(ctx HandlerContext)     {}
func (t *tailHandler) ChannelRead(ctx HandlerContext, msg any)  {}
func (t *tailHandler) ChannelReadComplete(ctx HandlerContext) {}
func (t *tailHandler) UserEventTriggered(ctx HandlerContext, evt any) {}
func (t *tailHandler) ExceptionCaught(ctx HandlerContext, err error) {
	logrus.WithField("channel", ctx.Channel().ID()).Warnf("pipeline: unhandled exception reached the tail: %v", err)
}
