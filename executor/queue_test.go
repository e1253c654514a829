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

import "testing"

func TestQueueRejectNewestWhenFull(t *testing.T) {
	q := newTaskQueue(Config{QueueCapacity: 1, RejectionPolicy: RejectNewest})
	if ok, _ := q.offer(entry{fn: func() {}}); !ok {
		t.Fatal("expected first offer to be accepted")
	}
	if ok, ran := q.offer(entry{fn: func() {}}); ok || ran {
		t.Fatalf("expected second offer to be rejected, got accepted=%v ran=%v", ok, ran)
	}
}

func TestQueueDiscardOldestMakesRoom(t *testing.T) {
	q := newTaskQueue(Config{QueueCapacity: 1, RejectionPolicy: DiscardOldest})
	var ran []int
	q.offer(entry{fn: func() { ran = append(ran, 1) }})
	q.offer(entry{fn: func() { ran = append(ran, 2) }})

	batch := q.drainUpTo(0)
	if len(batch) != 1 {
		t.Fatalf("expected exactly one surviving entry, got %d", len(batch))
	}
	batch[0].fn()
	if len(ran) != 1 || ran[0] != 2 {
		t.Fatalf("expected the newer entry to survive, got %v", ran)
	}
}

func TestQueueCallerRunsExecutesSynchronously(t *testing.T) {
	q := newTaskQueue(Config{QueueCapacity: 1, RejectionPolicy: CallerRuns})
	q.offer(entry{fn: func() {}})
	_, ran := q.offer(entry{fn: func() {}})
	if !ran {
		t.Fatal("expected CallerRuns to report ran=true instead of queueing")
	}
	if q.len() != 1 {
		t.Fatalf("expected queue to still hold only the first entry, got %d", q.len())
	}
}

func TestQueueUnboundedAcceptsEverything(t *testing.T) {
	q := newTaskQueue(Config{QueueCapacity: 0})
	for i := 0; i < 100; i++ {
		if ok, _ := q.offer(entry{fn: func() {}}); !ok {
			t.Fatalf("expected unbounded queue to accept entry %d", i)
		}
	}
	if q.len() != 100 {
		t.Fatalf("expected 100 entries, got %d", q.len())
	}
}

func TestQueueDrainUpToCapsBatchSize(t *testing.T) {
	q := newTaskQueue(Config{})
	for i := 0; i < 10; i++ {
		q.offer(entry{fn: func() {}})
	}
	batch := q.drainUpTo(3)
	if len(batch) != 3 {
		t.Fatalf("expected a batch of 3, got %d", len(batch))
	}
	if q.len() != 7 {
		t.Fatalf("expected 7 remaining, got %d", q.len())
	}
}
