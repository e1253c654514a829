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

// Package executor implements the single-threaded event executor: one
// goroutine per executor draining a task queue and a scheduled-task timer
// in deadline order, with a quiet-period graceful shutdown and a group
// abstraction for multiplexing many channels over a fixed pool of
// executors with stable, sticky assignment.
package executor

import (
	"context"
	"time"
)

// Task is a unit of work submitted to an Executor. It runs on the
// executor's own goroutine; it must never block on anything the executor
// itself needs to make progress.
type Task func()

// Cancelable is returned by Schedule and its variants. Cancel prevents a
// not-yet-run (or not-yet-next-run, for repeating tasks) task from firing;
// it has no effect on a task already executing.
type Cancelable interface {
	Cancel()
}

// Future represents the eventual result of a Task submitted through
// Submit. It is safe to read from multiple goroutines.
type Future interface {
	// Done returns a channel closed once the task has finished, whether
	// normally, with a panic recovered as an error, or because the
	// executor shut down before running it.
	Done() <-chan struct{}
	// Err returns the task's error, or nil if it completed normally. It
	// must only be read after Done is closed.
	Err() error
}

// Executor runs tasks one at a time, in submission order, on a single
// goroutine, per §4.2. Scheduling and state queries are safe to call from
// any goroutine; Task bodies themselves run exclusively on the executor's
// own goroutine.
type Executor interface {
	// Execute enqueues fn to run as soon as the executor is free. It
	// returns an error if the executor is shutting down or its queue is
	// full (depending on Config.RejectionPolicy).
	Execute(fn Task) error

	// Submit is like Execute but returns a Future observing completion.
	Submit(fn Task) (Future, error)

	// Schedule runs fn once after delay.
	Schedule(delay time.Duration, fn Task) (Cancelable, error)

	// ScheduleAtFixedRate runs fn every period, starting after the initial
	// delay, independent of how long each invocation takes (runs may
	// overlap in wall-clock terms if fn is slower than period; the
	// executor itself stays single-threaded, so overlapping invocations
	// queue behind one another rather than running concurrently).
	ScheduleAtFixedRate(initialDelay, period time.Duration, fn Task) (Cancelable, error)

	// ScheduleWithFixedDelay runs fn again `delay` after the previous
	// invocation finished, rather than on a fixed wall-clock cadence.
	ScheduleWithFixedDelay(initialDelay, delay time.Duration, fn Task) (Cancelable, error)

	// InExecutor reports whether the calling goroutine is this executor's
	// own worker goroutine.
	InExecutor() bool

	// ShutdownGracefully stops accepting new tasks, runs every task
	// already queued (and every scheduled task whose deadline falls
	// within quietPeriod of now), waiting quietPeriod after the last task
	// it ran to see if more arrive, up to a hard ceiling of timeout. It
	// returns once the executor has fully stopped, or ctx is done, or the
	// timeout elapses.
	ShutdownGracefully(ctx context.Context, quietPeriod, timeout time.Duration) error

	// IsShutdown reports whether ShutdownGracefully has been called.
	IsShutdown() bool

	// IsTerminated reports whether the executor's goroutine has exited.
	IsTerminated() bool
}

// Group multiplexes a fixed pool of Executors, assigning each of a
// caller's keys (typically a channel id) to the same Executor for the
// lifetime of that key, so that per-key single-threading is preserved
// across a pool sized independently of key count.
type Group interface {
	// Next returns the Executor assigned to key, creating the assignment
	// on first use and reusing it on every subsequent call with the same
	// key.
	Next(key any) Executor

	// ShutdownGracefully shuts every member executor down in parallel,
	// each with the same quiet period and timeout, waits for all of them,
	// and returns every member's error aggregated into one (nil if none
	// failed).
	ShutdownGracefully(ctx context.Context, quietPeriod, timeout time.Duration) error
}
