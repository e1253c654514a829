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

// Package loopback is an in-process channel.Transport that pipes writes
// from one side of a connected pair straight to the other side's read
// queue, with no socket involved. It exists so this module's own §8
// end-to-end scenarios (pipeline mutation during a read, framing
// recovery, back-pressure, writability edges, pool lifetime, graceful
// shutdown) can be driven deterministically in tests.
package loopback

import (
	"context"
	"sync"

	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/channel"
	"github.com/sabouaram/nettle/errs"
)

// Addr is a loopback endpoint's address: just a tag distinguishing the
// two ends of a pair.
type Addr struct {
	tag string
}

func (a Addr) Network() string { return "loopback" }
func (a Addr) String() string  { return a.tag }

// Pair builds two connected Transport halves: writes to one arrive as
// reads on the other. Neither half does any of its own buffering beyond
// a bounded queue of frames awaiting delivery, so a slow reader on one
// side applies back-pressure to the other side's Write only once that
// queue fills.
func Pair(queueDepth int) (a, b *Transport) {
	a = &Transport{local: Addr{tag: "loopback-a"}, remote: Addr{tag: "loopback-b"}}
	b = &Transport{local: Addr{tag: "loopback-b"}, remote: Addr{tag: "loopback-a"}}

	toB := make(chan buffer.Buffer, queueDepth)
	toA := make(chan buffer.Buffer, queueDepth)
	a.out, a.in = toB, toA
	b.out, b.in = toA, toB
	return a, b
}

// Transport is one half of a loopback.Pair.
type Transport struct {
	local, remote Addr

	out chan<- buffer.Buffer
	in  <-chan buffer.Buffer

	mu     sync.Mutex
	sink   channel.ReadSink
	closed bool
	done   chan struct{}
	once   sync.Once
}

func (t *Transport) LocalAddr() channel.Address  { return t.local }
func (t *Transport) RemoteAddr() channel.Address { return t.remote }

func (t *Transport) Bind(ctx context.Context, local channel.Address) error    { return nil }
func (t *Transport) Connect(ctx context.Context, remote channel.Address) error { return nil }

func (t *Transport) SupportsExecutor(ex any) bool { return true }

// Read registers sink as the delivery target. The first call starts the
// transport's single delivery goroutine (pump), which from then on
// forwards every frame that arrives to the most recently registered sink;
// later calls only replace the sink. Delivery is not paced by Read calls:
// after the first Read, frames keep arriving whether or not Read is
// called again.
func (t *Transport) Read(sink channel.ReadSink) {
	t.mu.Lock()
	t.sink = sink
	if t.done == nil {
		t.done = make(chan struct{})
		go t.pump()
	}
	t.mu.Unlock()
}

// pump is the transport's single delivery goroutine: it owns t.in and
// forwards every frame that arrives (or the peer's close) to whichever
// sink was most recently registered via Read.
func (t *Transport) pump() {
	for {
		select {
		case buf, ok := <-t.in:
			if !ok {
				t.mu.Lock()
				sink := t.sink
				t.mu.Unlock()
				if sink != nil {
					sink.ChannelInactive()
				}
				return
			}
			t.mu.Lock()
			sink := t.sink
			t.mu.Unlock()
			if sink != nil {
				sink.ChannelRead(buf)
				sink.ChannelReadComplete()
			}
		case <-t.done:
			return
		}
	}
}

// Write hands buf to the peer's read side. It blocks if the peer's
// queue is full, which is exactly the back-pressure signal a bounded
// Pair(queueDepth) is meant to apply.
func (t *Transport) Write(buf buffer.Buffer) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return errs.New(errs.KindIO, "loopback: write on closed transport")
	}
	t.out <- buf
	return nil
}

func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	done := t.done
	t.mu.Unlock()

	t.once.Do(func() { close(t.out) })
	if done != nil {
		close(done)
	}
	return nil
}
