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

import "math/bits"

// chunk is one large contiguous region managed as a complete binary tree.
// Node 1 is the root and covers the whole chunk; node id's two children are
// 2*id and 2*id+1. memoryMap[id] holds the depth of the shallowest fully
// free subtree reachable from id — equal to depth(id) while the whole
// subtree is untouched, full once nothing beneath id is free, and
// somewhere in between while partially allocated.
type chunk struct {
	pageSize int
	maxOrder int
	size     int
	full     byte // sentinel memoryMap value meaning "nothing free beneath"

	memoryMap []byte
	data      []byte

	// pages tracks, per leaf (page) id, the subpage splitting that page
	// into small-size slots, or nil if the page is either free or given
	// out whole as a normal allocation.
	pages map[int]*subpage

	freeBytes int
}

func newChunk(pageSize, maxOrder int) *chunk {
	size := pageSize << uint(maxOrder)
	n := 1 << uint(maxOrder+1)
	c := &chunk{
		pageSize:  pageSize,
		maxOrder:  maxOrder,
		size:      size,
		full:      byte(maxOrder + 1),
		memoryMap: make([]byte, n),
		data:      make([]byte, size),
		pages:     make(map[int]*subpage),
		freeBytes: size,
	}
	for id := 1; id < n; id++ {
		c.memoryMap[id] = byte(depthOf(id))
	}
	return c
}

func depthOf(id int) int {
	return bits.Len(uint(id)) - 1
}

// subtreeBytes returns the byte size of the run represented by a node at
// the given depth.
func (c *chunk) subtreeBytes(depth int) int {
	return c.size >> uint(depth)
}

// offsetOf returns the byte offset, within the chunk, of the run
// represented by node id at the given depth.
func (c *chunk) offsetOf(id, depth int) int {
	posAtDepth := id - (1 << uint(depth))
	return posAtDepth * c.subtreeBytes(depth)
}

// allocateNode finds a free node at exactly the requested depth,
// descending left-first then right, and marks it (and its whole subtree)
// fully allocated. It returns -1 if no node at that depth is free.
func (c *chunk) allocateNode(depth int) int {
	if int(c.memoryMap[1]) > depth {
		return -1
	}
	id := 1
	for depthOf(id) < depth {
		left := id << 1
		right := left + 1
		if int(c.memoryMap[left]) <= depth {
			id = left
		} else {
			id = right
		}
	}
	c.memoryMap[id] = c.full
	c.updateParentsAlloc(id)
	return id
}

func (c *chunk) updateParentsAlloc(id int) {
	for id > 1 {
		parent := id >> 1
		left := parent << 1
		right := left + 1
		v := c.memoryMap[left]
		if c.memoryMap[right] < v {
			v = c.memoryMap[right]
		}
		c.memoryMap[parent] = v
		id = parent
	}
}

// freeNode restores node id to fully free and propagates the change
// upward, coalescing with its sibling when both are now fully free.
func (c *chunk) freeNode(id int) {
	d := depthOf(id)
	c.memoryMap[id] = byte(d)
	for id > 1 {
		parent := id >> 1
		pd := depthOf(parent)
		left := parent << 1
		right := left + 1
		lv, rv := c.memoryMap[left], c.memoryMap[right]
		if int(lv) == pd+1 && int(rv) == pd+1 {
			c.memoryMap[parent] = byte(pd)
		} else if lv < rv {
			c.memoryMap[parent] = lv
		} else {
			c.memoryMap[parent] = rv
		}
		id = parent
	}
}

// allocateRun requests a contiguous run of at least n bytes, rounded up to
// a power-of-two multiple of the page size. It returns the node id (used
// later to free the run) and its byte offset within the chunk.
func (c *chunk) allocateRun(n int) (id, offset int, ok bool) {
	pages := (n + c.pageSize - 1) / c.pageSize
	if pages < 1 {
		pages = 1
	}
	normPages := nextPow2(pages)
	depth := c.maxOrder - bits.Len(uint(normPages-1))
	if normPages == 1 {
		depth = c.maxOrder
	}
	if depth < 0 {
		return 0, 0, false
	}
	id = c.allocateNode(depth)
	if id == -1 {
		return 0, 0, false
	}
	offset = c.offsetOf(id, depth)
	c.freeBytes -= c.subtreeBytes(depth)
	return id, offset, true
}

// freeRun releases a run previously obtained from allocateRun or directly
// via allocateNode at a known depth.
func (c *chunk) freeRun(id int) {
	d := depthOf(id)
	c.freeBytes += c.subtreeBytes(d)
	c.freeNode(id)
}

// allocatePage hands out exactly one full leaf page, for the caller to
// split into a subpage.
func (c *chunk) allocatePage() (id, offset int, ok bool) {
	id = c.allocateNode(c.maxOrder)
	if id == -1 {
		return 0, 0, false
	}
	offset = c.offsetOf(id, c.maxOrder)
	c.freeBytes -= c.pageSize
	return id, offset, true
}

func (c *chunk) freePage(id int) {
	c.freeBytes += c.pageSize
	c.freeNode(id)
	delete(c.pages, id)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << uint(bits.Len(uint(n-1)))
}
