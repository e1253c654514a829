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

package poolconn_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sabouaram/nettle/channel"
	"github.com/sabouaram/nettle/executor"
	"github.com/sabouaram/nettle/pipeline"
	"github.com/sabouaram/nettle/poolconn"
)

// fakeConn is a minimal channel.Channel double: enough identity and a
// Close that records whether it ran, nothing more.
type fakeConn struct {
	n      int
	closed atomic.Bool
}

func (f *fakeConn) ID() string                          { return "fake" }
func (f *fakeConn) ShortID() string                      { return "fake" }
func (f *fakeConn) Pipeline() pipeline.Pipeline          { return nil }
func (f *fakeConn) Executor() executor.Executor          { return nil }
func (f *fakeConn) LocalAddress() channel.Address        { return nil }
func (f *fakeConn) RemoteAddress() channel.Address       { return nil }
func (f *fakeConn) Register(ex executor.Executor) error  { return nil }
func (f *fakeConn) Deregister() error                    { return nil }
func (f *fakeConn) Bind(ctx context.Context, a channel.Address) error    { return nil }
func (f *fakeConn) Connect(ctx context.Context, a channel.Address) error { return nil }
func (f *fakeConn) Read()                                {}
func (f *fakeConn) Write(msg any) executor.Future         { return nil }
func (f *fakeConn) Flush()                                {}
func (f *fakeConn) WriteAndFlush(msg any) executor.Future { return nil }
func (f *fakeConn) IsWritable() bool                      { return true }
func (f *fakeConn) IsActive() bool                        { return !f.closed.Load() }
func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

func newCountingFactory() (poolconn.Factory, *int32) {
	var n int32
	return func(ctx context.Context) (channel.Channel, error) {
		id := atomic.AddInt32(&n, 1)
		return &fakeConn{n: int(id)}, nil
	}, &n
}

func TestPoolAcquireReleaseRoundTrips(t *testing.T) {
	factory, _ := newCountingFactory()
	p, err := poolconn.New(context.Background(), poolconn.Config{Size: 2, New: factory})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	b, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire b: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct connections")
	}

	if err := p.Release(a); err != nil {
		t.Fatalf("Release a: %v", err)
	}
	c, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire c: %v", err)
	}
	if c != a {
		t.Fatal("expected the released connection to be reused")
	}
	if a.(*fakeConn).closed.Load() {
		t.Fatal("a pooled connection must not be closed by Release")
	}

	_ = p.Release(b)
	_ = p.Release(c)
}

func TestPoolActionFailReturnsErrorWhenExhausted(t *testing.T) {
	factory, _ := newCountingFactory()
	p, err := poolconn.New(context.Background(), poolconn.Config{
		Size:           1,
		AcquireTimeout: 10 * time.Millisecond,
		TimeoutAction:  poolconn.ActionFail,
		New:            factory,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := p.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if _, err := p.Acquire(context.Background()); err == nil {
		t.Fatal("expected the second Acquire to fail with the pool exhausted")
	}
}

func TestPoolActionNewCreatesOverflowClosedOnRelease(t *testing.T) {
	factory, n := newCountingFactory()
	p, err := poolconn.New(context.Background(), poolconn.Config{
		Size:           1,
		AcquireTimeout: 10 * time.Millisecond,
		TimeoutAction:  poolconn.ActionNew,
		New:            factory,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	overflow, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("overflow Acquire: %v", err)
	}
	if atomic.LoadInt32(n) != 2 {
		t.Fatalf("expected factory invoked twice, got %d", *n)
	}

	if err := p.Release(overflow); err != nil {
		t.Fatalf("Release overflow: %v", err)
	}
	if !overflow.(*fakeConn).closed.Load() {
		t.Fatal("expected the overflow connection to be closed on Release, not pooled")
	}

	// The pool's single real slot should still be usable after the
	// overflow connection is released and discarded.
	_ = p.Release(a)
	again, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if again != a {
		t.Fatal("expected the pooled slot's connection to be reused")
	}
}

func TestPoolActionWaitBlocksUntilReleased(t *testing.T) {
	factory, _ := newCountingFactory()
	p, err := poolconn.New(context.Background(), poolconn.Config{
		Size:          1,
		TimeoutAction: poolconn.ActionWait,
		New:           factory,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var second channel.Channel
	var secondErr error
	go func() {
		defer wg.Done()
		second, secondErr = p.Acquire(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	if err := p.Release(a); err != nil {
		t.Fatalf("Release: %v", err)
	}

	wg.Wait()
	if secondErr != nil {
		t.Fatalf("waiting Acquire: %v", secondErr)
	}
	if second != a {
		t.Fatal("expected the waiter to receive the released connection")
	}
}

func TestPoolCloseAllClosesEveryConnection(t *testing.T) {
	factory, _ := newCountingFactory()
	p, err := poolconn.New(context.Background(), poolconn.Config{Size: 3, New: factory})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, _ := p.Acquire(context.Background())
	b, _ := p.Acquire(context.Background())
	_ = a
	_ = b

	if err := p.CloseAll(); err != nil {
		t.Fatalf("CloseAll: %v", err)
	}
	if !a.(*fakeConn).closed.Load() || !b.(*fakeConn).closed.Load() {
		t.Fatal("expected every connection, acquired or not, to be closed")
	}

	if _, err := p.Acquire(context.Background()); err == nil {
		t.Fatal("expected Acquire on a closed pool to fail")
	}
}
