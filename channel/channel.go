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

// Package channel implements the abstract I/O endpoint: a 128-bit
// identity, a four-state lifecycle, an outbound write buffer with
// water-mark-driven writability, a bound executor, and the pipeline that
// sits between the transport and the application.
package channel

import (
	"context"
	"sync"
	"time"

	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/errs"
	"github.com/sabouaram/nettle/executor"
	"github.com/sabouaram/nettle/pipeline"
)

// Channel is an abstract I/O endpoint: identity, addressing, the handler
// pipeline, writability, and the four-state lifecycle of §4.3. It
// structurally satisfies pipeline.Channel (ID/Executor/Close/IsActive), so
// a *channel value can be handed straight into pipeline.New.
type Channel interface {
	ID() string
	ShortID() string

	Pipeline() pipeline.Pipeline
	Executor() executor.Executor

	LocalAddress() Address
	RemoteAddress() Address

	// Register binds the channel to ex. Only legal in stateCreated or
	// stateRegistered (a deregister-then-register cycle); it fails once the
	// channel has gone active.
	Register(ex executor.Executor) error
	// Deregister releases the channel's executor binding, firing
	// ChannelUnregistered and returning the channel to stateRegistered.
	Deregister() error

	// Bind starts listening at local. Connect dials remote. Either
	// transitions the channel from registered to active, firing
	// ChannelActive exactly once.
	Bind(ctx context.Context, local Address) error
	Connect(ctx context.Context, remote Address) error

	// Read signals the transport to deliver one more inbound chunk;
	// meaningful only when Config.AutoRead is off.
	Read()
	// Write queues msg into the outbound buffer, returning a Future that
	// resolves once the transport has flushed it (or failed to).
	Write(msg any) executor.Future
	// Flush hands every currently queued write to the transport.
	Flush()
	// WriteAndFlush is Write immediately followed by Flush.
	WriteAndFlush(msg any) executor.Future

	// IsWritable reports the current writability bit (§3 invariants).
	IsWritable() bool
	// IsActive reports whether the channel is in stateActive.
	IsActive() bool
	// Close tears the channel down: drains pending writes for up to
	// Config.CloseDrainTimeout, fails the rest, closes the transport, and
	// fires ChannelInactive then ChannelUnregistered.
	Close() error
}

type channel struct {
	id   ID
	cfg  Config
	tr   Transport
	pipe pipeline.Pipeline

	mu    sync.Mutex
	state lifecycle
	ex    executor.Executor

	out *outboundBuffer
}

// New builds a Channel over tr with cfg, which is validated as given: zero
// fields are not replaced by Default()'s values, and a zero Config fails
// validation (HighWaterMark must be positive).
func New(tr Transport, cfg Config) (Channel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	c := &channel{id: id, cfg: cfg, tr: tr, state: stateCreated}
	c.out = newOutboundBuffer(cfg.LowWaterMark, cfg.HighWaterMark, c.fireWritabilityChanged)
	c.pipe = pipeline.New(c, c.pipelineWrite, c.pipelineFlush, c.pipelineClose)
	return c, nil
}

func (c *channel) ID() string      { return c.id.String() }
func (c *channel) ShortID() string { return c.id.Short() }

func (c *channel) Pipeline() pipeline.Pipeline { return c.pipe }

func (c *channel) Executor() executor.Executor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ex
}

func (c *channel) LocalAddress() Address {
	if c.tr == nil {
		return nil
	}
	return c.tr.LocalAddr()
}

func (c *channel) RemoteAddress() Address {
	if c.tr == nil {
		return nil
	}
	return c.tr.RemoteAddr()
}

func (c *channel) currentState() lifecycle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *channel) IsActive() bool { return c.currentState() == stateActive }

func (c *channel) IsWritable() bool { return c.out.isWritable() }

func (c *channel) Register(ex executor.Executor) error {
	c.mu.Lock()
	switch c.state {
	case stateCreated, stateRegistered:
		c.ex = ex
		c.state = stateRegistered
	case stateActive:
		c.mu.Unlock()
		return errAlreadyRegistered(c.id.String())
	case stateClosed:
		c.mu.Unlock()
		return errClosed(c.id.String())
	}
	c.mu.Unlock()

	c.pipe.FireChannelRegistered()
	return nil
}

func (c *channel) Deregister() error {
	c.mu.Lock()
	if c.state != stateRegistered && c.state != stateActive {
		c.mu.Unlock()
		return errNotRegistered(c.id.String())
	}
	c.state = stateRegistered
	c.mu.Unlock()

	c.pipe.FireChannelUnregistered()
	return nil
}

func (c *channel) Bind(ctx context.Context, local Address) error {
	if err := c.transitionToActive(); err != nil {
		return err
	}
	if err := c.tr.Bind(ctx, local); err != nil {
		return err
	}
	c.pipe.FireChannelActive()
	if c.cfg.AutoRead {
		c.tr.Read(c)
	}
	return nil
}

func (c *channel) Connect(ctx context.Context, remote Address) error {
	if err := c.transitionToActive(); err != nil {
		return err
	}
	if err := c.tr.Connect(ctx, remote); err != nil {
		return err
	}
	c.pipe.FireChannelActive()
	if c.cfg.AutoRead {
		c.tr.Read(c)
	}
	return nil
}

func (c *channel) transitionToActive() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case stateCreated:
		return errNotRegistered(c.id.String())
	case stateActive:
		return errAlreadyActive(c.id.String())
	case stateClosed:
		return errClosed(c.id.String())
	}
	c.state = stateActive
	return nil
}

// FlowControlHandlerName is the conventional pipeline name under which a
// flowcontrol handler is expected to be registered; Read() looks for it
// there before falling back to asking the transport for more raw data.
const FlowControlHandlerName = "flow-control"

// releaser is the capability handler/flowcontrol.Handler exposes beyond
// pipeline.Handler; declared locally to avoid an import of that package
// from here (it would otherwise be the only user-facing handler this
// package needs to know by name rather than by interface).
type releaser interface {
	Release(ctx pipeline.HandlerContext) bool
	Pending() int
}

func (c *channel) Read() {
	if !c.IsActive() {
		return
	}
	if h, ok := c.pipe.Get(FlowControlHandlerName); ok {
		if r, ok := h.(releaser); ok {
			if ctx, ok := c.pipe.Context(FlowControlHandlerName); ok && r.Release(ctx) {
				return
			}
		}
	}
	c.tr.Read(c)
}

func (c *channel) Write(msg any) executor.Future {
	fut, done := executor.NewPromise()
	wp := &writePromise{Future: fut, done: done}
	if c.currentState() == stateClosed {
		done(errWriteAfterClose(c.id.String()))
		return wp
	}
	c.pipe.Write(msg, wp)
	return wp
}

// writePromise carries a write's completion Future through the pipeline
// alongside the function that actually resolves it; pipelineWrite pulls
// done back out once the message reaches the outbound buffer.
type writePromise struct {
	executor.Future
	done func(error)
}

func (c *channel) Flush() {
	c.pipe.Flush()
}

func (c *channel) WriteAndFlush(msg any) executor.Future {
	fut := c.Write(msg)
	c.Flush()
	return fut
}

// pipelineWrite is wired as the pipeline head's outbound Write: it's the
// point where a message leaves the handler chain and enters the outbound
// buffer proper.
func (c *channel) pipelineWrite(msg any, promise executor.Future) {
	var done func(error)
	if wp, ok := promise.(*writePromise); ok {
		done = wp.done
	}
	c.out.enqueue(msg, promise, done)
}

// pipelineFlush hands every queued write to the transport, completing each
// write's promise as the transport accepts or rejects it. By the time a
// message reaches here it must already be a buffer.Buffer: an encoder
// handler further up the outbound chain is responsible for turning
// anything else into bytes before it gets this far.
func (c *channel) pipelineFlush() {
	for _, w := range c.out.drain() {
		buf, ok := w.msg.(buffer.Buffer)
		if !ok {
			c.out.completed(w, errs.New(errs.KindIO, "channel %s: outbound message is not a buffer.Buffer", c.id.String()))
			continue
		}
		err := c.tr.Write(buf)
		c.out.completed(w, err)
	}
}

func (c *channel) pipelineClose() {
	_ = c.closeInternal(c.cfg.CloseDrainTimeout)
}

func (c *channel) Close() error {
	return c.closeInternal(c.cfg.CloseDrainTimeout)
}

func (c *channel) closeInternal(drain time.Duration) error {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return nil
	}
	wasActive := c.state == stateActive
	c.state = stateClosed
	c.mu.Unlock()

	if drain > 0 {
		deadline := time.Now().Add(drain)
		for c.out.pendingByteCount() > 0 && time.Now().Before(deadline) {
			c.Flush()
			time.Sleep(time.Millisecond)
		}
	}
	c.out.failAll(errWriteAfterClose(c.id.String()))

	var closeErr error
	if c.tr != nil {
		closeErr = c.tr.Close()
	}

	if wasActive {
		c.pipe.FireChannelInactive()
	}
	c.pipe.FireChannelUnregistered()
	return closeErr
}

// fireWritabilityChanged delivers one UserEventTriggered per writability
// edge (§3 invariant: transitions are monotone and surfaced once).
func (c *channel) fireWritabilityChanged(writable bool) {
	c.pipe.FireUserEventTriggered(WritabilityChanged{Writable: writable})
}

// WritabilityChanged is the user event fired on the pipeline when the
// outbound buffer's byte count crosses a configured water mark.
type WritabilityChanged struct {
	Writable bool
}

// ChannelRead implements channel.ReadSink: the transport delivers inbound
// data here, and the channel forwards it onto the pipeline from its own
// executor.
func (c *channel) ChannelRead(msg any) {
	c.pipe.FireChannelRead(msg)
}

func (c *channel) ChannelReadComplete() {
	c.pipe.FireChannelReadComplete()
	if c.cfg.AutoRead && c.IsActive() {
		c.tr.Read(c)
	}
}

func (c *channel) ChannelInactive() {
	if c.currentState() != stateClosed {
		_ = c.closeInternal(0)
	}
}

func (c *channel) ExceptionCaught(err error) {
	c.pipe.FireExceptionCaught(err)
}
