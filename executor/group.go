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

package executor

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// group is a fixed-size pool of executors with sticky key assignment: the
// same key always lands on the same member executor, so that per-key
// ordering guarantees (a channel's pipeline, most importantly) hold
// regardless of how many keys share the pool.
type group struct {
	members []Executor

	mu     sync.Mutex
	assign map[any]int
	next   int
}

// NewGroup builds a Group of size members, each constructed with cfg.
func NewGroup(size int, cfg Config) Group {
	if size < 1 {
		size = 1
	}
	g := &group{
		members: make([]Executor, size),
		assign:  make(map[any]int),
	}
	for i := range g.members {
		g.members[i] = New(cfg)
	}
	return g
}

func (g *group) Next(key any) Executor {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, ok := g.assign[key]
	if !ok {
		i = g.next % len(g.members)
		g.next++
		g.assign[key] = i
	}
	return g.members[i]
}

// ShutdownGracefully shuts every member down concurrently via an
// errgroup, so that one slow executor's quiet period doesn't serialize
// behind another's, aggregating every member's error (not just the
// first) via go-multierror so a caller can see which ones failed to
// terminate in time.
func (g *group) ShutdownGracefully(ctx context.Context, quietPeriod, timeout time.Duration) error {
	var mu sync.Mutex
	var result *multierror.Error

	var eg errgroup.Group
	for _, m := range g.members {
		m := m
		eg.Go(func() error {
			if err := m.ShutdownGracefully(ctx, quietPeriod, timeout); err != nil {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()
	return result.ErrorOrNil()
}
