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

package channel

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	"github.com/sabouaram/nettle/errs"
)

// Config configures a single Channel. New validates it as given; zero-value
// fields are not replaced by Default()'s values.
type Config struct {
	// AutoRead, when true, has the transport issue a fresh Read() after
	// every ChannelReadComplete. When false, inbound reads only happen in
	// response to an explicit Read() call — typically issued by a
	// collaborating flow-control handler.
	AutoRead bool

	// LowWaterMark and HighWaterMark bound the outbound buffer's pending-
	// byte count: crossing HighWaterMark on the way up flips writability
	// to false; dropping to or below LowWaterMark flips it back to true.
	LowWaterMark  int64 `validate:"gte=0,ltfield=HighWaterMark"`
	HighWaterMark int64 `validate:"gt=0,gtfield=LowWaterMark"`

	// CloseDrainTimeout bounds how long a graceful Close waits for queued
	// outbound writes to flush before failing the rest and forcing the
	// transport closed.
	CloseDrainTimeout time.Duration `validate:"gte=0"`
}

// Validate checks that the configuration is internally consistent: both
// water marks non-negative and ordered (low < high), and a non-negative
// drain timeout.
func (c Config) Validate() error {
	err := libval.New().Struct(c)
	if err == nil {
		return nil
	}

	if e, ok := err.(*libval.InvalidValidationError); ok {
		return errs.Wrap(errs.KindLifecycle, e, "channel: invalid configuration")
	}

	var msg string
	for _, e := range err.(libval.ValidationErrors) {
		msg += fmt.Sprintf("field '%s' fails constraint '%s'; ", e.StructNamespace(), e.ActualTag())
	}
	return errs.New(errs.KindLifecycle, "channel: %s", msg)
}

// Default returns the package's documented defaults: auto-read on, water
// marks at 32 KiB/64 KiB (§9 Open Questions), and a 5 second drain window
// on close.
func Default() Config {
	return Config{
		AutoRead:          true,
		LowWaterMark:      32 * 1024,
		HighWaterMark:     64 * 1024,
		CloseDrainTimeout: 5 * time.Second,
	}
}
