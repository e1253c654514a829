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
	"container/heap"
	"time"
)

// scheduledTask is one entry in the executor's timer. Ties in deadline
// break on submission order (seq), ascending, so same-instant tasks run
// in the order they were scheduled.
type scheduledTask struct {
	deadline time.Time
	seq      uint64
	fn       Task

	// period > 0 marks a fixed-rate repeat: the next deadline is the
	// previous deadline plus period, regardless of run duration. delay > 0
	// (mutually exclusive with period in practice) marks a fixed-delay
	// repeat: the next deadline is time.Now() plus delay, computed after
	// the run completes.
	period time.Duration
	delay  time.Duration

	cancelled bool
	index     int // heap.Interface bookkeeping
}

func (s *scheduledTask) repeating() bool {
	return s.period > 0 || s.delay > 0
}

// timerHeap is a min-heap of *scheduledTask ordered by (deadline, seq).
type timerHeap []*scheduledTask

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*scheduledTask)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// timer owns the scheduled-task heap for one executor. It is only ever
// touched from the executor's own goroutine, so it needs no locking of
// its own.
type timer struct {
	h   timerHeap
	seq uint64
}

func newTimer() *timer {
	t := &timer{}
	heap.Init(&t.h)
	return t
}

// push enqueues a scheduledTask built by the caller (deadline/period/
// delay/fn/cancelled already set), assigning it the next submission
// sequence number for tie-breaking.
func (t *timer) push(st *scheduledTask) {
	t.seq++
	st.seq = t.seq
	heap.Push(&t.h, st)
}

// nextDeadline returns the earliest non-cancelled deadline, discarding any
// cancelled entries it encounters at the head along the way.
func (t *timer) nextDeadline() (time.Time, bool) {
	for t.h.Len() > 0 {
		top := t.h[0]
		if top.cancelled {
			heap.Pop(&t.h)
			continue
		}
		return top.deadline, true
	}
	return time.Time{}, false
}

// due pops and returns every task whose deadline is <= now, dropping
// cancelled entries it meets on the way. It does not reschedule repeating
// tasks; the loop does that after running each one.
func (t *timer) due(now time.Time) []*scheduledTask {
	var out []*scheduledTask
	for t.h.Len() > 0 {
		top := t.h[0]
		if top.cancelled {
			heap.Pop(&t.h)
			continue
		}
		if top.deadline.After(now) {
			break
		}
		heap.Pop(&t.h)
		out = append(out, top)
	}
	return out
}

// cancelAllPending marks every scheduled task still held in the heap —
// due or not — as cancelled, used once shutdown's quiet period elapses
// with entries that will never get a chance to run.
func (t *timer) cancelAllPending() {
	for _, st := range t.h {
		st.cancelled = true
	}
}

// reschedule re-arms a repeating task's next deadline. fixed-rate tasks
// advance from their previous deadline; fixed-delay tasks advance from
// "now" (i.e. from when the run actually finished).
func (t *timer) reschedule(st *scheduledTask, ranAt time.Time) {
	if st.cancelled {
		return
	}
	if st.period > 0 {
		st.deadline = st.deadline.Add(st.period)
		if st.deadline.Before(ranAt) {
			st.deadline = ranAt // don't spin catching up on a long stall
		}
	} else {
		st.deadline = ranAt.Add(st.delay)
	}
	heap.Push(&t.h, st)
}
