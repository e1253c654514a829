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
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	"github.com/sabouaram/nettle/errs"
)

// RejectionPolicy selects what Execute/Submit do when the task queue is at
// QueueCapacity. Schedule and its variants hold their tasks apart from that
// queue, so neither QueueCapacity nor the policy applies to them.
type RejectionPolicy uint8

const (
	// RejectNewest fails the incoming submission immediately, leaving the
	// queue untouched. The default: back-pressure the caller rather than
	// silently drop older, already-accepted work.
	RejectNewest RejectionPolicy = iota
	// DiscardOldest drops the task at the head of the queue to make room,
	// then enqueues the new one.
	DiscardOldest
	// CallerRuns executes the task synchronously on the calling goroutine
	// instead of enqueueing it.
	CallerRuns
)

// Config carries every recognized executor option from §6.4.
type Config struct {
	// QueueCapacity bounds the number of pending immediate tasks. Zero
	// means unbounded; a positive value enables RejectionPolicy. The queue
	// is a growable slice either way.
	QueueCapacity int `validate:"gte=0"`

	// RejectionPolicy controls what happens when QueueCapacity is reached.
	RejectionPolicy RejectionPolicy `validate:"lte=2"`

	// MaxTasksPerTick bounds how many immediate tasks are drained from the
	// queue between two scans of the scheduled-task timer, preventing a
	// burst of Execute calls from starving due scheduled work
	// indefinitely. Zero means unbounded (drain the whole queue first).
	MaxTasksPerTick int `validate:"gte=0"`

	// ParkInterval is how long the worker goroutine blocks waiting for new
	// work when both the queue and the timer are empty, before checking
	// shutdown state again. It bounds shutdown latency when nothing else
	// wakes the loop.
	ParkInterval time.Duration `validate:"gte=0"`
}

// Validate checks that the configuration is internally consistent: no
// negative capacities or intervals, and a recognized RejectionPolicy.
func (c Config) Validate() error {
	err := libval.New().Struct(c)
	if err == nil {
		return nil
	}

	if e, ok := err.(*libval.InvalidValidationError); ok {
		return errs.Wrap(errs.KindRejection, e, "executor: invalid configuration")
	}

	var msg string
	for _, e := range err.(libval.ValidationErrors) {
		msg += fmt.Sprintf("field '%s' fails constraint '%s'; ", e.StructNamespace(), e.ActualTag())
	}
	return errs.New(errs.KindRejection, "executor: %s", msg)
}

// Default returns reasonable defaults: an unbounded queue, no per-tick
// cap, and a one-second park interval.
func Default() Config {
	return Config{
		QueueCapacity:   0,
		RejectionPolicy: RejectNewest,
		MaxTasksPerTick: 0,
		ParkInterval:    time.Second,
	}
}
