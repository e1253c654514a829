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

// Package poolconn implements the fixed-size channel pool of §6.5:
// acquire/release/close over a bounded set of channel.Channel connections,
// with a configurable action for what happens when acquisition would have
// to wait past a deadline for the pool to free up.
package poolconn

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/sabouaram/nettle/channel"
)

// TimeoutAction selects what Acquire does once AcquireTimeout elapses
// with the pool still exhausted.
type TimeoutAction int

const (
	// ActionFail returns an error immediately.
	ActionFail TimeoutAction = iota
	// ActionNew creates a connection outside the pool's size bound,
	// returned to the caller like any other but closed (not pooled)
	// on Release.
	ActionNew
	// ActionWait keeps waiting past AcquireTimeout, with no further
	// deadline beyond whatever the caller's own context carries.
	ActionWait
)

// Factory creates one fresh connection on demand, for initial pool fill
// and for ActionNew overflow.
type Factory func(ctx context.Context) (channel.Channel, error)

// Config configures a Pool.
type Config struct {
	// Size is the fixed number of connections the pool holds.
	Size int
	// AcquireTimeout bounds how long Acquire waits for an available
	// connection before TimeoutAction takes over. Zero means no patience:
	// TimeoutAction applies immediately if nothing is free.
	AcquireTimeout time.Duration
	// TimeoutAction governs behavior once AcquireTimeout elapses.
	TimeoutAction TimeoutAction
	// MaxWaiters bounds how many goroutines may be blocked in Acquire at
	// once; beyond that, Acquire fails fast rather than growing an
	// unbounded waiter queue. Zero means unbounded.
	MaxWaiters int
	// New builds a fresh connection.
	New Factory
}

// Pool is a fixed-size pool of channel.Channel connections.
type Pool struct {
	cfg Config
	sem *semaphore.Weighted

	mu       sync.Mutex
	free     []channel.Channel
	overflow map[channel.Channel]struct{}
	all      map[channel.Channel]struct{}
	waiters  int
	closed   bool
}

// New builds a Pool and fills it with cfg.Size freshly created
// connections.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	p := &Pool{
		cfg:      cfg,
		sem:      semaphore.NewWeighted(int64(cfg.Size)),
		overflow: make(map[channel.Channel]struct{}),
		all:      make(map[channel.Channel]struct{}),
	}
	for i := 0; i < cfg.Size; i++ {
		ch, err := cfg.New(ctx)
		if err != nil {
			_ = p.CloseAll()
			return nil, err
		}
		p.free = append(p.free, ch)
		p.all[ch] = struct{}{}
	}
	return p, nil
}

// Acquire returns a connection from the pool, blocking if none is
// immediately free, per cfg.AcquireTimeout/TimeoutAction.
func (p *Pool) Acquire(ctx context.Context) (channel.Channel, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errPoolClosed()
	}
	if p.cfg.MaxWaiters > 0 && p.waiters >= p.cfg.MaxWaiters {
		p.mu.Unlock()
		return nil, errAcquireTimeout()
	}
	p.waiters++
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.waiters--
		p.mu.Unlock()
	}()

	acquired := p.tryAcquire(ctx, p.cfg.AcquireTimeout)
	if !acquired {
		switch p.cfg.TimeoutAction {
		case ActionFail:
			return nil, errAcquireTimeout()
		case ActionNew:
			ch, err := p.cfg.New(ctx)
			if err != nil {
				return nil, err
			}
			p.mu.Lock()
			p.overflow[ch] = struct{}{}
			p.all[ch] = struct{}{}
			p.mu.Unlock()
			return ch, nil
		case ActionWait:
			if err := p.sem.Acquire(ctx, 1); err != nil {
				return nil, err
			}
		}
	}

	p.mu.Lock()
	n := len(p.free)
	ch := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()
	return ch, nil
}

// tryAcquire acquires the pool's semaphore slot, waiting up to timeout
// (not waiting at all if timeout <= 0). It reports whether the slot was
// acquired within that window.
func (p *Pool) tryAcquire(ctx context.Context, timeout time.Duration) bool {
	if timeout <= 0 {
		return p.sem.TryAcquire(1)
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := p.sem.Acquire(wctx, 1)
	return err == nil
}

// Release returns ch to the pool. An overflow connection (created under
// ActionNew) is closed instead of pooled, since it was never counted
// against the pool's fixed size.
func (p *Pool) Release(ch channel.Channel) error {
	p.mu.Lock()
	if _, overflow := p.overflow[ch]; overflow {
		delete(p.overflow, ch)
		delete(p.all, ch)
		p.mu.Unlock()
		return ch.Close()
	}
	if p.closed {
		p.mu.Unlock()
		return ch.Close()
	}
	p.free = append(p.free, ch)
	p.mu.Unlock()
	p.sem.Release(1)
	return nil
}

// CloseAll closes every connection the pool ever handed out or is
// currently holding, aggregating every close error encountered rather
// than stopping at the first.
func (p *Pool) CloseAll() error {
	p.mu.Lock()
	p.closed = true
	all := make([]channel.Channel, 0, len(p.all))
	for ch := range p.all {
		all = append(all, ch)
	}
	p.all = make(map[channel.Channel]struct{})
	p.free = nil
	p.overflow = make(map[channel.Channel]struct{})
	p.mu.Unlock()

	var result *multierror.Error
	for _, ch := range all {
		if err := ch.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
