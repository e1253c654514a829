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

// Package pool's Allocator is the production implementation of the
// buffer.Buffer contract's release hook: it hands out buffer.Buffer values
// backed by pooled memory instead of a fresh make([]byte, n) per call.
package pool

import (
	"sync/atomic"

	"github.com/sabouaram/nettle/buffer"
	"github.com/sabouaram/nettle/errs"
)

// Allocator is the top-level pooled buffer.Buffer source: size-class
// routing (huge/normal/small), arena sharding, thread-local caches, and
// sampling leak detection, all driven by one Config.
type Allocator struct {
	cfg    Config
	arenas []*arena
	next   uint64 // round-robin arena cursor for CacheFor

	leak *tracker
}

// New builds an Allocator from cfg, after validating it.
func New(cfg Config) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Allocator{cfg: cfg, leak: newTracker(cfg.LeakDetection)}
	a.arenas = make([]*arena, cfg.ArenaCount)
	for i := range a.arenas {
		a.arenas[i] = newArena(cfg)
	}
	return a, nil
}

// CacheFor binds a fresh per-executor Cache to the next arena in
// round-robin order. Call it once per executor at startup and reuse the
// result for every allocation that executor makes.
func (a *Allocator) CacheFor() *Cache {
	i := atomic.AddUint64(&a.next, 1) - 1
	arena := a.arenas[i%uint64(len(a.arenas))]
	return newCache(arena, a.cfg)
}

// Allocate returns a pooled Buffer of the given initial capacity, bounded
// by maxCapacity. Requests larger than one chunk bypass the pool entirely
// and fall back to a plain Go allocation (§4.1's huge class); everything
// else is served from cache, a subpage, or a chunk's buddy tree.
//
// c may be nil, in which case the allocation is served directly from a
// round-robin arena with no thread-local cache — correct, but forces every
// release to take that arena's mutex.
func (a *Allocator) Allocate(c *Cache, initial, maxCapacity int) (buffer.Buffer, error) {
	if initial > maxCapacity {
		return nil, errs.New(errs.KindAllocator, "pool: initial capacity %d exceeds max capacity %d", initial, maxCapacity)
	}
	if initial > a.cfg.ChunkSize() {
		return buffer.Allocate(initial, maxCapacity)
	}

	ar := a.arenaFor(c)
	disarm := a.leak.watch(initial)

	var al *allocation
	var err error
	if c != nil && isSmall(initial, a.cfg.PageSize) {
		if al = c.takeSmall(classElemSize(initial)); al == nil {
			al, err = ar.allocateSmall(initial)
		}
	} else if isSmall(initial, a.cfg.PageSize) {
		al, err = ar.allocateSmall(initial)
	} else if c != nil {
		// cached normal blocks are keyed by their run length, not the
		// requested size
		run := a.cfg.PageSize * nextPow2((initial+a.cfg.PageSize-1)/a.cfg.PageSize)
		if al = c.takeNormal(run); al == nil {
			al, err = ar.allocateNormal(initial)
		}
	} else {
		al, err = ar.allocateNormal(initial)
	}
	if err != nil {
		disarm()
		return nil, err
	}

	data := al.data[:initial]
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		disarm()
		if c == nil || !c.offer(al) {
			ar.free(al)
		}
	}
	return buffer.FromPool(data, maxCapacity, release), nil
}

func (a *Allocator) arenaFor(c *Cache) *arena {
	if c != nil {
		return c.arena
	}
	i := atomic.AddUint64(&a.next, 1) - 1
	return a.arenas[i%uint64(len(a.arenas))]
}

func classElemSize(n int) int {
	idx, ok := smallClassIndex(n)
	if !ok {
		return n
	}
	return smallClassSizes[idx]
}
