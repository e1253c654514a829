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

package flowcontrol_test

import (
	"testing"

	"github.com/sabouaram/nettle/executor"
	"github.com/sabouaram/nettle/handler/flowcontrol"
	"github.com/sabouaram/nettle/pipeline"
)

type recordingCtx struct {
	pipeline.InboundAdapter
	emitted []any
}

func (c *recordingCtx) Name() string                        { return "flow-control" }
func (c *recordingCtx) Pipeline() pipeline.Pipeline          { return nil }
func (c *recordingCtx) Channel() pipeline.Channel            { return nil }
func (c *recordingCtx) Executor() executor.Executor          { return nil }
func (c *recordingCtx) FireChannelRegistered()               {}
func (c *recordingCtx) FireChannelUnregistered()              {}
func (c *recordingCtx) FireChannelActive()                   {}
func (c *recordingCtx) FireChannelInactive()                 {}
func (c *recordingCtx) FireChannelRead(msg any)               { c.emitted = append(c.emitted, msg) }
func (c *recordingCtx) FireChannelReadComplete()              {}
func (c *recordingCtx) FireUserEventTriggered(e any)           {}
func (c *recordingCtx) FireExceptionCaught(err error)          {}
func (c *recordingCtx) Write(msg any, p executor.Future)       {}
func (c *recordingCtx) Flush()                                 {}
func (c *recordingCtx) Close()                                 {}

func TestFlowControlReleasesExactlyOnePerCall(t *testing.T) {
	h := flowcontrol.New()
	in := h.(pipeline.InboundHandler)
	rel := h.(flowcontrol.Releaser)
	ctx := &recordingCtx{}

	// Simulate a decoder emitting three messages per read.
	in.ChannelRead(ctx, "a")
	in.ChannelRead(ctx, "b")
	in.ChannelRead(ctx, "c")

	if rel.Pending() != 3 {
		t.Fatalf("expected 3 pending, got %d", rel.Pending())
	}
	if len(ctx.emitted) != 0 {
		t.Fatalf("expected nothing released yet, got %d", len(ctx.emitted))
	}

	for i := 0; i < 3; i++ {
		if !rel.Release(ctx) {
			t.Fatalf("expected Release %d to succeed", i)
		}
	}
	if len(ctx.emitted) != 3 {
		t.Fatalf("expected 3 released, got %d", len(ctx.emitted))
	}
	if got := ctx.emitted; got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected FIFO order, got %v", got)
	}

	if rel.Release(ctx) {
		t.Fatal("expected a fourth Release with nothing queued to report false")
	}
	if len(ctx.emitted) != 3 {
		t.Fatalf("expected no further delivery without new data, got %d", len(ctx.emitted))
	}
}
