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

package channel

import (
	"sync"
	"sync/atomic"

	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/executor"
)

// pendingWrite is one entry in the outbound buffer: a message awaiting
// flush, and the promise its eventual completion resolves.
type pendingWrite struct {
	msg     any
	promise executor.Future
	done    func(error)
}

// outboundBuffer is the ordered queue of writes waiting to be handed to
// the transport, plus the atomic byte counter that drives writability.
// The pending queue is guarded by mu; the byte counter and the writable
// bit are atomics.
type outboundBuffer struct {
	pending []pendingWrite

	lowWaterMark  int64
	highWaterMark int64

	pendingBytes atomic.Int64
	writable     atomic.Bool

	// onWritabilityChanged is invoked (still on the owning executor) the
	// instant the writable bit flips, so the channel can fire exactly one
	// pipeline event per edge.
	onWritabilityChanged func(writable bool)

	mu sync.Mutex // guards pending
}

func newOutboundBuffer(low, high int64, onChange func(writable bool)) *outboundBuffer {
	b := &outboundBuffer{lowWaterMark: low, highWaterMark: high, onWritabilityChanged: onChange}
	b.writable.Store(true)
	return b
}

func messageSize(msg any) int64 {
	switch v := msg.(type) {
	case buffer.Buffer:
		return int64(v.ReadableBytes())
	case []byte:
		return int64(len(v))
	default:
		return 0
	}
}

// enqueue appends msg to the pending queue and folds its size into the
// byte counter, flipping writability to false exactly once if this push
// crosses the high water mark.
func (b *outboundBuffer) enqueue(msg any, p executor.Future, done func(error)) {
	b.mu.Lock()
	b.pending = append(b.pending, pendingWrite{msg: msg, promise: p, done: done})
	b.mu.Unlock()

	n := b.pendingBytes.Add(messageSize(msg))
	if n > b.highWaterMark && b.writable.CompareAndSwap(true, false) {
		b.onWritabilityChanged(false)
	}
}

// drain removes every currently queued write for the caller to hand to
// the transport, leaving the queue empty.
func (b *outboundBuffer) drain() []pendingWrite {
	b.mu.Lock()
	out := b.pending
	b.pending = nil
	b.mu.Unlock()
	return out
}

// completed is called once a given write has actually been handed to (or
// failed at) the transport, releasing its share of the byte counter and
// flipping writability back to true exactly once if this drop crosses
// below the low water mark.
func (b *outboundBuffer) completed(w pendingWrite, err error) {
	n := b.pendingBytes.Add(-messageSize(w.msg))
	if n < 0 {
		n = 0
		b.pendingBytes.Store(0)
	}
	if w.done != nil {
		w.done(err)
	}
	if n <= b.lowWaterMark && b.writable.CompareAndSwap(false, true) {
		b.onWritabilityChanged(true)
	}
}

func (b *outboundBuffer) isWritable() bool { return b.writable.Load() }

func (b *outboundBuffer) pendingByteCount() int64 { return b.pendingBytes.Load() }

// failAll completes every still-queued write with err without ever
// touching the transport — used when a channel closes with writes still
// pending.
func (b *outboundBuffer) failAll(err error) {
	for _, w := range b.drain() {
		if w.done != nil {
			w.done(err)
		}
	}
}
