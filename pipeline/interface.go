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

// Package pipeline implements the per-channel handler chain: a doubly
// linked list of named handlers that inbound events walk head-to-tail and
// outbound operations walk tail-to-head, with handlers free to add,
// remove, or replace their neighbors while an event is in flight.
package pipeline

import "github.com/sabouaram/nettle/executor"

// Channel is the narrow slice of a channel that the pipeline needs. It is
// declared here, rather than importing the channel package, so that
// channel can depend on pipeline without creating an import cycle; any
// type exposing this method set satisfies it.
type Channel interface {
	ID() string
	Executor() executor.Executor
	Close() error
	IsActive() bool
}

// Handler is the capability every pipeline entry must have: a name it's
// addressed by once added, and hooks run when it joins or leaves a
// pipeline. InboundHandler and OutboundHandler add the actual event
// methods; a handler can implement either, both, or (pointlessly) neither.
type Handler interface {
	HandlerAdded(ctx HandlerContext)
	HandlerRemoved(ctx HandlerContext)
}

// InboundHandler receives events flowing from the channel toward the
// application: registration, activity changes, reads, and exceptions.
type InboundHandler interface {
	Handler
	ChannelRegistered(ctx HandlerContext)
	ChannelUnregistered(ctx HandlerContext)
	ChannelActive(ctx HandlerContext)
	ChannelInactive(ctx HandlerContext)
	ChannelRead(ctx HandlerContext, msg any)
	ChannelReadComplete(ctx HandlerContext)
	UserEventTriggered(ctx HandlerContext, evt any)
	ExceptionCaught(ctx HandlerContext, err error)
}

// OutboundHandler receives operations flowing from the application toward
// the channel: writes, flushes, and close requests.
type OutboundHandler interface {
	Handler
	Write(ctx HandlerContext, msg any, promise executor.Future)
	Flush(ctx HandlerContext)
	Close(ctx HandlerContext)
}

// HandlerContext is a handler's view of its position in the pipeline: its
// own identity, and Fire*/outbound methods that continue propagation to
// the next applicable neighbor rather than restart it from the ends.
type HandlerContext interface {
	Name() string
	Pipeline() Pipeline
	Channel() Channel
	Executor() executor.Executor

	FireChannelRegistered()
	FireChannelUnregistered()
	FireChannelActive()
	FireChannelInactive()
	FireChannelRead(msg any)
	FireChannelReadComplete()
	FireUserEventTriggered(evt any)
	FireExceptionCaught(err error)

	Write(msg any, promise executor.Future)
	Flush()
	Close()
}

// Pipeline is the mutable chain of handlers bound to one channel.
type Pipeline interface {
	AddFirst(name string, h Handler) error
	AddLast(name string, h Handler) error
	AddBefore(existing, name string, h Handler) error
	AddAfter(existing, name string, h Handler) error
	Remove(name string) error
	Replace(oldName, newName string, h Handler) error
	Get(name string) (Handler, bool)
	Context(name string) (HandlerContext, bool)
	Names() []string

	Channel() Channel

	// Fire* start inbound propagation from the head of the pipeline.
	FireChannelRegistered()
	FireChannelUnregistered()
	FireChannelActive()
	FireChannelInactive()
	FireChannelRead(msg any)
	FireChannelReadComplete()
	FireUserEventTriggered(evt any)
	FireExceptionCaught(err error)

	// Write/Flush/Close start outbound propagation from the tail.
	Write(msg any, promise executor.Future)
	Flush()
	Close()
}
