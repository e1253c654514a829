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

// InboundAdapter gives every InboundHandler method a pass-through default
// (forward the event, do nothing else), so a handler embedding it only
// needs to override what it actually cares about.
type InboundAdapter struct{}

func (InboundAdapter) HandlerAdded(ctx HandlerContext)          {}
func (InboundAdapter) HandlerRemoved(ctx HandlerContext)        {}
func (InboundAdapter) ChannelRegistered(ctx HandlerContext)     { ctx.FireChannelRegistered() }
func (InboundAdapter) ChannelUnregistered(ctx HandlerContext)   { ctx.FireChannelUnregistered() }
func (InboundAdapter) ChannelActive(ctx HandlerContext)         { ctx.FireChannelActive() }
func (InboundAdapter) ChannelInactive(ctx HandlerContext)       { ctx.FireChannelInactive() }
func (InboundAdapter) ChannelRead(ctx HandlerContext, msg any)  { ctx.FireChannelRead(msg) }
func (InboundAdapter) ChannelReadComplete(ctx HandlerContext)   { ctx.FireChannelReadComplete() }
func (InboundAdapter) UserEventTriggered(ctx HandlerContext, evt any) {
	ctx.FireUserEventTriggered(evt)
}
func (InboundAdapter) ExceptionCaught(ctx HandlerContext, err error) { ctx.FireExceptionCaught(err) }

// OutboundAdapter is OutboundHandler's equivalent pass-through default.
type OutboundAdapter struct{}

func (OutboundAdapter) HandlerAdded(ctx HandlerContext)   {}
func (OutboundAdapter) HandlerRemoved(ctx HandlerContext) {}
func (OutboundAdapter) Write(ctx HandlerContext, msg any, promise executor.Future) {
	ctx.Write(msg, promise)
}
func (OutboundAdapter) Flush(ctx HandlerContext) { ctx.Flush() }
func (OutboundAdapter) Close(ctx HandlerContext) { ctx.Close() }
