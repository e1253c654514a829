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
	"sync"
	"sync/atomic"
	"time"
)

type runState uint32

const (
	stateRunning runState = iota
	stateShuttingDown
	stateTerminated
)

// exec is the single-threaded event executor. Its own goroutine is the
// only reader of q and t; everything else communicates with it through
// taskQueue (mutex-guarded) or the pendingSched slice (also
// mutex-guarded), never by touching the timer heap directly.
type exec struct {
	cfg Config
	q   *taskQueue

	ownerID int64 // goroutine identity surrogate, see InExecutor

	state atomic.Uint32

	schedMu      sync.Mutex
	pendingSched []*scheduledTask

	shutdownOnce sync.Once
	stopped      chan struct{} // closed once the loop goroutine exits
	wantShutdown atomic.Bool
	quietPeriod  atomic.Int64 // nanoseconds, set by ShutdownGracefully
}

// New starts a new Executor running its worker loop on a fresh goroutine.
func New(cfg Config) Executor {
	e := &exec{
		cfg:     cfg,
		q:       newTaskQueue(cfg),
		stopped: make(chan struct{}),
	}
	e.state.Store(uint32(stateRunning))
	go e.loop()
	return e
}

func (e *exec) runStateValue() runState {
	return runState(e.state.Load())
}

func (e *exec) Execute(fn Task) error {
	_, err := e.submit(fn, false)
	return err
}

func (e *exec) Submit(fn Task) (Future, error) {
	return e.submit(fn, true)
}

func (e *exec) submit(fn Task, wantFuture bool) (Future, error) {
	if e.runStateValue() != stateRunning && !e.InExecutor() {
		return nil, errShuttingDown()
	}
	var p *promise
	if wantFuture {
		p = newPromise()
	}
	accepted, ran := e.q.offer(entry{fn: fn, p: p})
	if ran {
		err := runTask(fn)
		if p != nil {
			p.complete(err)
		}
		return p, nil
	}
	if !accepted {
		return nil, errQueueFull(e.cfg.QueueCapacity)
	}
	return p, nil
}

func (e *exec) Schedule(delay time.Duration, fn Task) (Cancelable, error) {
	return e.scheduleAt(time.Now().Add(delay), 0, 0, fn)
}

func (e *exec) ScheduleAtFixedRate(initialDelay, period time.Duration, fn Task) (Cancelable, error) {
	return e.scheduleAt(time.Now().Add(initialDelay), period, 0, fn)
}

func (e *exec) ScheduleWithFixedDelay(initialDelay, delay time.Duration, fn Task) (Cancelable, error) {
	return e.scheduleAt(time.Now().Add(initialDelay), 0, delay, fn)
}

func (e *exec) scheduleAt(deadline time.Time, period, delay time.Duration, fn Task) (Cancelable, error) {
	if e.runStateValue() != stateRunning {
		return nil, errShuttingDown()
	}
	st := &scheduledTask{deadline: deadline, fn: fn, period: period, delay: delay}

	e.schedMu.Lock()
	e.pendingSched = append(e.pendingSched, st)
	e.schedMu.Unlock()
	e.q.signal()

	return &cancelable{cancelled: &st.cancelled}, nil
}

func (e *exec) InExecutor() bool {
	return goroutineID() == atomic.LoadInt64(&e.ownerID)
}

func (e *exec) IsShutdown() bool {
	return e.runStateValue() != stateRunning
}

func (e *exec) IsTerminated() bool {
	return e.runStateValue() == stateTerminated
}
