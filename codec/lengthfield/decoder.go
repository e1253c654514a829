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

// Package lengthfield implements the length-field-based frame decoder of
// §6.2/§6.5: a byte-to-message decoder that reads a fixed-width length
// field at a configurable offset, derives the total frame length from it,
// and emits exactly one decoded message per complete frame, honoring a
// maximum frame size with either fail-fast or drain-then-fail behavior.
package lengthfield

import (
	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/pipeline"
)

// Config parametrizes the decoder per §6.5's exact field set.
type Config struct {
	// MaxFrameSize is the largest frame (including the length field
	// itself) the decoder will emit; exceeding it raises a framing error.
	MaxFrameSize int
	// LengthFieldOffset is the byte offset, from the start of the frame,
	// where the length field begins.
	LengthFieldOffset int
	// LengthFieldLength is the length field's width in bytes: 1, 2, 3, 4,
	// or 8.
	LengthFieldLength int
	// LengthAdjustment is added to the length field's value (after the
	// field's own offset and width) to get the number of bytes following
	// the length field that belong to the frame. It may be negative.
	LengthAdjustment int
	// InitialBytesToStrip is the number of leading bytes of the complete
	// frame to discard before handing the remainder onward as the decoded
	// message — typically the header's own width, to emit only the body.
	InitialBytesToStrip int
	// FailFast, when true, raises the framing error as soon as the
	// over-length frame's size is known, discarding bytes in the
	// background as they arrive. When false, the decoder waits until the
	// entire over-length frame has arrived (and discards it) before
	// raising the error.
	FailFast bool
}

// decoder is the stateful byte-to-message handler: need-length →
// need-body → emit, per §6.5.
type decoder struct {
	pipeline.InboundAdapter

	cfg Config

	cumulative     buffer.Buffer
	discarding     bool
	toDiscard      int64
	lastOverLength int64
}

// New returns a fresh frame decoder handler for cfg.
func New(cfg Config) pipeline.Handler {
	return &decoder{cfg: cfg}
}

func (d *decoder) ChannelRead(ctx pipeline.HandlerContext, msg any) {
	in, ok := msg.(buffer.Buffer)
	if !ok {
		ctx.FireChannelRead(msg)
		return
	}
	defer in.Release()

	if err := d.append(in); err != nil {
		ctx.FireExceptionCaught(err)
		return
	}

	for {
		out, err := d.decodeNext()
		if err != nil {
			ctx.FireExceptionCaught(err)
			continue
		}
		if out == nil {
			return
		}
		ctx.FireChannelRead(out)
	}
}

func (d *decoder) append(in buffer.Buffer) error {
	if d.cumulative == nil {
		cap := in.ReadableBytes()
		if cap < 64 {
			cap = 64
		}
		b, err := buffer.Allocate(cap, 1<<20)
		if err != nil {
			return err
		}
		d.cumulative = b
	}
	_, err := d.cumulative.WriteBytes(in.Bytes())
	return err
}

// decodeNext advances the state machine by at most one frame (or one
// discard step), returning the decoded message, an error, or (nil, nil)
// when there isn't yet enough buffered data to make progress.
func (d *decoder) decodeNext() (any, error) {
	if d.cumulative == nil {
		return nil, nil
	}

	if d.discarding {
		avail := int64(d.cumulative.ReadableBytes())
		if avail == 0 {
			return nil, nil
		}
		n := d.toDiscard
		if n > avail {
			n = avail
		}
		if _, err := d.cumulative.ReadBytes(int(n)); err != nil {
			return nil, err
		}
		d.toDiscard -= n
		d.cumulative.Compact()
		if d.toDiscard > 0 {
			return nil, nil
		}
		d.discarding = false
		if !d.cfg.FailFast {
			return nil, errFrameTooLong(d.lastOverLength, d.cfg.MaxFrameSize)
		}
		return nil, nil
	}

	headerEnd := d.cfg.LengthFieldOffset + d.cfg.LengthFieldLength
	if d.cumulative.ReadableBytes() < headerEnd {
		return nil, nil
	}

	fieldValue, err := peekLengthField(d.cumulative, d.cfg.LengthFieldOffset, d.cfg.LengthFieldLength)
	if err != nil {
		return nil, err
	}

	frameLength := int64(d.cfg.LengthFieldOffset) + int64(d.cfg.LengthFieldLength) + int64(d.cfg.LengthAdjustment) + int64(fieldValue)
	if frameLength < 0 {
		return nil, errNegativeFrameLength(frameLength)
	}

	if frameLength > int64(d.cfg.MaxFrameSize) {
		d.lastOverLength = frameLength
		return d.beginDiscard(frameLength)
	}

	if int64(d.cumulative.ReadableBytes()) < frameLength {
		return nil, nil
	}

	frame, err := d.cumulative.ReadBytes(int(frameLength))
	if err != nil {
		return nil, err
	}
	d.cumulative.Compact()

	strip := d.cfg.InitialBytesToStrip
	if strip > len(frame) {
		strip = len(frame)
	}
	payload := frame[strip:]

	out, err := buffer.Allocate(len(payload), len(payload))
	if err != nil {
		return nil, err
	}
	if _, err := out.WriteBytes(payload); err != nil {
		return nil, err
	}
	return out, nil
}

// beginDiscard starts (or, for fail-fast, immediately reports and starts)
// discarding an over-length frame. fail-fast raises the error the instant
// the length is known; otherwise the error waits until the whole frame
// has actually drained out of the cumulative buffer.
func (d *decoder) beginDiscard(frameLength int64) (any, error) {
	avail := int64(d.cumulative.ReadableBytes())
	n := frameLength
	if n > avail {
		n = avail
	}
	if _, err := d.cumulative.ReadBytes(int(n)); err != nil {
		return nil, err
	}
	d.cumulative.Compact()
	remaining := frameLength - n

	if remaining <= 0 {
		return nil, errFrameTooLong(frameLength, d.cfg.MaxFrameSize)
	}

	d.discarding = true
	d.toDiscard = remaining
	if d.cfg.FailFast {
		return nil, errFrameTooLong(frameLength, d.cfg.MaxFrameSize)
	}
	return nil, nil
}

// peekLengthField reads a big-endian, width-bytes-wide unsigned integer
// starting offset bytes past the buffer's current ReaderIndex, without
// moving any cursor — the frame's total length isn't known to be fully
// buffered yet, so nothing may be consumed until it is.
func peekLengthField(buf buffer.Buffer, offset, width int) (uint64, error) {
	switch width {
	case 1, 2, 3, 4, 8:
	default:
		return 0, errInvalidLengthFieldWidth(width)
	}
	base := buf.ReaderIndex() + offset
	var v uint64
	for i := 0; i < width; i++ {
		b, err := buf.GetByte(base + i)
		if err != nil {
			return 0, err
		}
		v = v<<8 | uint64(b)
	}
	return v, nil
}
