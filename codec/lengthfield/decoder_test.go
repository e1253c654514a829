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

package lengthfield_test

import (
	"testing"

	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/codec/lengthfield"
	"github.com/sabouaram/nettle/executor"
	"github.com/sabouaram/nettle/pipeline"
)

// stubCtx is a minimal pipeline.HandlerContext good enough to drive a
// decoder directly in a unit test, without a full pipeline/channel.
type stubCtx struct {
	pipeline.InboundAdapter
	emitted []any
	errs    []error
}

func (c *stubCtx) Name() string                 { return "decoder" }
func (c *stubCtx) Pipeline() pipeline.Pipeline   { return nil }
func (c *stubCtx) Channel() pipeline.Channel     { return nil }
func (c *stubCtx) Executor() executor.Executor   { return nil }
func (c *stubCtx) FireChannelRegistered()        {}
func (c *stubCtx) FireChannelUnregistered()      {}
func (c *stubCtx) FireChannelActive()            {}
func (c *stubCtx) FireChannelInactive()          {}
func (c *stubCtx) FireChannelRead(msg any)       { c.emitted = append(c.emitted, msg) }
func (c *stubCtx) FireChannelReadComplete()      {}
func (c *stubCtx) FireUserEventTriggered(e any)  {}
func (c *stubCtx) FireExceptionCaught(err error) { c.errs = append(c.errs, err) }
func (c *stubCtx) Write(msg any, p executor.Future) {}
func (c *stubCtx) Flush()                           {}
func (c *stubCtx) Close()                           {}

func bufOf(b ...byte) buffer.Buffer {
	buf, err := buffer.Allocate(len(b), len(b))
	if err != nil {
		panic(err)
	}
	_, _ = buf.WriteBytes(b)
	return buf
}

func TestDecoderEmitsOneMessagePerCompleteFrame(t *testing.T) {
	h := lengthfield.New(lengthfield.Config{
		MaxFrameSize:        64,
		LengthFieldLength:   4,
		InitialBytesToStrip: 4,
	})
	ctx := &stubCtx{}
	dec := asInbound(t, h)

	dec.ChannelRead(ctx, bufOf(0, 0, 0, 1, 'A'))

	if len(ctx.emitted) != 1 {
		t.Fatalf("expected 1 emitted message, got %d", len(ctx.emitted))
	}
	out := ctx.emitted[0].(buffer.Buffer)
	if out.ReadableBytes() != 1 {
		t.Fatalf("expected 1 byte payload, got %d", out.ReadableBytes())
	}
	b, _ := out.ReadByte()
	if b != 'A' {
		t.Fatalf("expected 'A', got %q", b)
	}
}

func TestDecoderFramingRecoveryScenario(t *testing.T) {
	// §8 scenario 2: {max=5, lenOff=0, lenBytes=4, fail-fast=false}.
	h := lengthfield.New(lengthfield.Config{
		MaxFrameSize:        5,
		LengthFieldLength:   4,
		InitialBytesToStrip: 4,
		FailFast:            false,
	})
	ctx := &stubCtx{}
	dec := asInbound(t, h)

	dec.ChannelRead(ctx, bufOf(0, 0, 0, 2))
	if len(ctx.errs) != 0 || len(ctx.emitted) != 0 {
		t.Fatalf("expected no progress yet, got errs=%d emitted=%d", len(ctx.errs), len(ctx.emitted))
	}

	dec.ChannelRead(ctx, bufOf(0, 0))
	if len(ctx.errs) != 1 {
		t.Fatalf("expected exactly one framing error, got %d", len(ctx.errs))
	}
	if len(ctx.emitted) != 0 {
		t.Fatalf("expected nothing emitted yet, got %d", len(ctx.emitted))
	}

	dec.ChannelRead(ctx, bufOf(0, 0, 0, 1, 'A'))
	if len(ctx.emitted) != 1 {
		t.Fatalf("expected the next frame to emit, got %d", len(ctx.emitted))
	}
	out := ctx.emitted[0].(buffer.Buffer)
	b, _ := out.ReadByte()
	if b != 'A' {
		t.Fatalf("expected 'A', got %q", b)
	}
}

func TestDecoderFailFastReportsAsSoonAsLengthIsKnown(t *testing.T) {
	h := lengthfield.New(lengthfield.Config{
		MaxFrameSize:        5,
		LengthFieldLength:   4,
		InitialBytesToStrip: 4,
		FailFast:            true,
	})
	ctx := &stubCtx{}
	dec := asInbound(t, h)

	dec.ChannelRead(ctx, bufOf(0, 0, 0, 2))
	if len(ctx.errs) != 1 {
		t.Fatalf("expected fail-fast to report immediately, got %d errors", len(ctx.errs))
	}
}

func asInbound(t *testing.T, h pipeline.Handler) pipeline.InboundHandler {
	t.Helper()
	in, ok := h.(pipeline.InboundHandler)
	if !ok {
		t.Fatal("decoder does not implement pipeline.InboundHandler")
	}
	return in
}
