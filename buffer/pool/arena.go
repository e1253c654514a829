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

package pool

import (
	"sync"

	"github.com/sabouaram/nettle/errs"
)

// allocation identifies a block handed out by an arena, carrying enough
// state for arena.free to return it without any further lookup.
type allocation struct {
	data []byte

	chunk   *chunk
	nodeID  int  // normal/huge-in-chunk allocations: the buddy-tree node id
	sp      *subpage
	slot    int
	isSmall bool
}

// arena owns a list of chunks and, per small size class, a doubly linked
// free list of subpages with at least one free slot. One mutex guards the
// whole arena; Config.ArenaCount controls how many independent arenas
// exist; shards contention rather than eliminating it.
type arena struct {
	mu sync.Mutex

	cfg    Config
	chunks []*chunk

	// smallFree[i] is the head of the free-subpage list for
	// smallClassSizes[i], or nil if no subpage in this arena currently has
	// a free slot of that class.
	smallFree []*subpage
}

func newArena(cfg Config) *arena {
	return &arena{
		cfg:       cfg,
		smallFree: make([]*subpage, len(smallClassSizes)),
	}
}

func (a *arena) allocateNormal(n int) (*allocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.chunks {
		if id, offset, ok := c.allocateRun(n); ok {
			return &allocation{data: c.data[offset : offset+c.subtreeBytes(depthOf(id))], chunk: c, nodeID: id}, nil
		}
	}
	c := newChunk(a.cfg.PageSize, a.cfg.MaxOrder)
	a.chunks = append(a.chunks, c)
	id, offset, ok := c.allocateRun(n)
	if !ok {
		return nil, errs.New(errs.KindAllocator, "pool: request of %d bytes exceeds chunk size %d", n, c.size)
	}
	return &allocation{data: c.data[offset : offset+c.subtreeBytes(depthOf(id))], chunk: c, nodeID: id}, nil
}

func (a *arena) allocateSmall(n int) (*allocation, error) {
	idx, ok := smallClassIndex(n)
	if !ok {
		return nil, errs.New(errs.KindAllocator, "pool: %d bytes does not fit any small size class", n)
	}
	elemSize := smallClassSizes[idx]

	a.mu.Lock()
	defer a.mu.Unlock()

	sp := a.smallFree[idx]
	if sp == nil {
		var c *chunk
		var pageID, pageOffset int
		for _, cand := range a.chunks {
			if id, offset, ok := cand.allocatePage(); ok {
				c, pageID, pageOffset = cand, id, offset
				break
			}
		}
		if c == nil {
			c = newChunk(a.cfg.PageSize, a.cfg.MaxOrder)
			a.chunks = append(a.chunks, c)
			id, offset, ok := c.allocatePage()
			if !ok {
				return nil, errs.New(errs.KindAllocator, "pool: fresh chunk has no free page")
			}
			pageID, pageOffset = id, offset
		}
		sp = newSubpage(pageID, pageOffset, a.cfg.PageSize, elemSize)
		c.pages[pageID] = sp
		a.pushFree(idx, sp)
		sp = a.smallFree[idx]
		// the subpage we just created carries its owning chunk implicitly
		// through c; stash it on the allocation below via closure capture.
		return a.takeSlot(idx, c, sp)
	}
	// find the chunk owning sp's page by scanning: arenas are expected to
	// hold few chunks relative to allocation volume, so this is cheap
	// compared to the mutex hold it happens under.
	for _, c := range a.chunks {
		if owner, ok := c.pages[sp.chunkID]; ok && owner == sp {
			return a.takeSlot(idx, c, sp)
		}
	}
	return nil, errs.New(errs.KindAllocator, "pool: inconsistent arena state: free subpage with no owning chunk")
}

func (a *arena) takeSlot(idx int, c *chunk, sp *subpage) (*allocation, error) {
	offset, slot, ok := sp.allocate()
	if !ok {
		return nil, errs.New(errs.KindAllocator, "pool: inconsistent arena state: free-listed subpage is full")
	}
	if sp.full() {
		a.popFree(idx, sp)
	}
	return &allocation{
		data:    c.data[offset : offset+sp.elemSize],
		chunk:   c,
		sp:      sp,
		slot:    slot,
		isSmall: true,
	}, nil
}

func (a *arena) free(al *allocation) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !al.isSmall {
		al.chunk.freeRun(al.nodeID)
		return
	}

	idx, _ := smallClassIndex(al.sp.elemSize)
	wasFull := al.sp.full()
	if al.sp.freeSlot(al.slot) {
		if !wasFull {
			a.popFree(idx, al.sp)
		}
		al.chunk.freePage(al.sp.chunkID)
		return
	}
	if wasFull {
		a.pushFree(idx, al.sp)
	}
}

func (a *arena) pushFree(idx int, sp *subpage) {
	head := a.smallFree[idx]
	sp.prev = nil
	sp.next = head
	if head != nil {
		head.prev = sp
	}
	a.smallFree[idx] = sp
}

func (a *arena) popFree(idx int, sp *subpage) {
	if sp.prev != nil {
		sp.prev.next = sp.next
	} else {
		a.smallFree[idx] = sp.next
	}
	if sp.next != nil {
		sp.next.prev = sp.prev
	}
	sp.prev, sp.next = nil, nil
}
