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

import "github.com/bits-and-blooms/bitset"

// subpage splits one page into equal-sized slots for small allocations,
// tracking occupancy with a bitmap rather than its own buddy tree: splits
// below page size are never coalesced back into mixed-size runs, only
// slots of the same elemSize are ever handed out from a given subpage.
type subpage struct {
	chunkID  int // the owning chunk's page-node id, for freePage on drain
	offset   int // byte offset of this page within the chunk's data
	elemSize int
	numSlots int
	free     *bitset.BitSet // bit set means free

	freeCount int

	// prev/next chain this subpage into its arena's free list for its
	// size class; nil when not linked (full, or not yet linked).
	prev, next *subpage
}

func newSubpage(chunkID, offset, pageSize, elemSize int) *subpage {
	n := pageSize / elemSize
	free := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		free.Set(uint(i))
	}
	return &subpage{
		chunkID:   chunkID,
		offset:    offset,
		elemSize:  elemSize,
		numSlots:  n,
		free:      free,
		freeCount: n,
	}
}

// allocate claims the lowest-numbered free slot and returns its byte
// offset within the chunk, or ok=false if the subpage is full.
func (s *subpage) allocate() (offset int, slot int, ok bool) {
	if s.freeCount == 0 {
		return 0, 0, false
	}
	next, found := s.free.NextSet(0)
	if !found {
		return 0, 0, false
	}
	s.free.Clear(next)
	s.freeCount--
	return s.offset + int(next)*s.elemSize, int(next), true
}

// freeSlot releases a slot. It reports whether the subpage is now completely
// free (every slot available again), in which case the caller should
// consider returning the whole page to the chunk.
func (s *subpage) freeSlot(slot int) (nowEmpty bool) {
	s.free.Set(uint(slot))
	s.freeCount++
	return s.freeCount == s.numSlots
}

func (s *subpage) full() bool {
	return s.freeCount == 0
}
