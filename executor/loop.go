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
	"sync/atomic"
	"time"
)

// loop is the executor's sole worker goroutine: drain pending schedule
// registrations into the timer, run every due scheduled task, drain the
// immediate queue (bounded by MaxTasksPerTick), then park until the next
// deadline, a new submission, or ParkInterval, whichever comes first.
func (e *exec) loop() {
	atomic.StoreInt64(&e.ownerID, goroutineID())
	t := newTimer()

	lastActivity := time.Now()

	for {
		e.adoptPending(t)

		for _, st := range t.due(time.Now()) {
			if st.cancelled {
				continue
			}
			_ = runTask(st.fn)
			lastActivity = time.Now()
			if st.repeating() {
				t.reschedule(st, lastActivity)
			}
		}

		if e.drainImmediate() > 0 {
			lastActivity = time.Now()
		}

		if e.runStateValue() == stateShuttingDown && e.quietElapsed(lastActivity) {
			e.cancelRemaining(t)
			e.finish()
			return
		}

		e.park(t)
	}
}

// adoptPending moves every scheduleAt registration queued since the last
// tick into the timer, which only the loop goroutine ever touches.
func (e *exec) adoptPending(t *timer) {
	e.schedMu.Lock()
	pending := e.pendingSched
	e.pendingSched = nil
	e.schedMu.Unlock()
	for _, st := range pending {
		if !st.cancelled {
			t.push(st)
		}
	}
}

// drainImmediate runs every (or up to MaxTasksPerTick) queued Execute/
// Submit task and reports how many ran.
func (e *exec) drainImmediate() int {
	batch := e.q.drainUpTo(e.cfg.MaxTasksPerTick)
	for _, it := range batch {
		err := runTask(it.fn)
		if it.p != nil {
			it.p.complete(err)
		}
	}
	return len(batch)
}

// park blocks until there's reason to loop again: a wake signal (new
// submission or schedule registration), the next scheduled deadline, or
// ParkInterval — whichever is soonest. ParkInterval is the ceiling so a
// shutdown request is never missed for longer than that.
func (e *exec) park(t *timer) {
	wait := e.cfg.ParkInterval
	if wait <= 0 {
		wait = time.Second
	}
	if deadline, ok := t.nextDeadline(); ok {
		if d := time.Until(deadline); d < wait {
			if d < 0 {
				d = 0
			}
			wait = d
		}
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-e.q.wake:
	case <-timer.C:
	}
}

// quietElapsed reports whether the loop has gone quietPeriod without
// immediate work. A scheduled task whose deadline hasn't arrived yet does
// not, by itself, keep the executor from being quiet — due tasks already
// ran earlier this tick and reset lastActivity, so anything still pending
// here is simply not due yet. cancelRemaining deals with it once shutdown
// actually proceeds.
func (e *exec) quietElapsed(lastActivity time.Time) bool {
	if e.q.len() > 0 {
		return false
	}
	qp := time.Duration(e.quietPeriod.Load())
	return time.Since(lastActivity) >= qp
}

// cancelRemaining marks every scheduled task the executor is still
// holding — whether adopted into the timer or still waiting in
// pendingSched — as cancelled. Called once the quiet period has elapsed
// during shutdown: those tasks will never get a chance to run. The
// Cancelable returned by Schedule exposes only Cancel, so the caller
// cannot observe this outcome through it.
func (e *exec) cancelRemaining(t *timer) {
	t.cancelAllPending()
	e.schedMu.Lock()
	for _, st := range e.pendingSched {
		st.cancelled = true
	}
	e.pendingSched = nil
	e.schedMu.Unlock()
}

func (e *exec) finish() {
	e.state.Store(uint32(stateTerminated))
	close(e.stopped)
}
