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

import "sync"

// entry is one immediate (non-scheduled) task waiting to run.
type entry struct {
	fn Task
	p  *promise // nil for fire-and-forget Execute calls
}

// taskQueue is a many-producer, single-consumer FIFO of entries, guarded
// by a plain mutex: Execute/Submit are called from arbitrary goroutines,
// drain is only ever called from the executor's own loop.
type taskQueue struct {
	mu       sync.Mutex
	items    []entry
	capacity int // 0 means unbounded
	policy   RejectionPolicy
	wake     chan struct{}
}

func newTaskQueue(cfg Config) *taskQueue {
	return &taskQueue{
		capacity: cfg.QueueCapacity,
		policy:   cfg.RejectionPolicy,
		wake:     make(chan struct{}, 1),
	}
}

// offer enqueues e, applying the rejection policy if the queue is at
// capacity. ran is set when CallerRuns executed e synchronously instead of
// queueing it — the caller must not also wait on e.p separately in that
// case, since offer already ran it.
func (q *taskQueue) offer(e entry) (accepted bool, ran bool) {
	q.mu.Lock()
	if q.capacity > 0 && len(q.items) >= q.capacity {
		switch q.policy {
		case DiscardOldest:
			q.items = q.items[1:]
		case CallerRuns:
			q.mu.Unlock()
			return false, true
		default: // RejectNewest
			q.mu.Unlock()
			return false, false
		}
	}
	q.items = append(q.items, e)
	q.mu.Unlock()
	q.signal()
	return true, false
}

func (q *taskQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// drainUpTo removes and returns up to max entries (all of them, if max <=
// 0). Called only from the executor's own goroutine.
func (q *taskQueue) drainUpTo(max int) []entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	n := len(q.items)
	if max > 0 && max < n {
		n = max
	}
	out := q.items[:n]
	q.items = q.items[n:]
	return out
}

func (q *taskQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
