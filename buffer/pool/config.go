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

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"

	"github.com/sabouaram/nettle/errs"
)

// LeakLevel selects the leak detector's sampling rate and the amount of
// detail captured per sampled allocation, mirroring the four levels
// recognized by §6.3 of the runtime's configuration surface.
type LeakLevel uint8

const (
	// LeakDisabled samples nothing; the leak detector never runs.
	LeakDisabled LeakLevel = iota
	// LeakSimple samples 1 in 100 allocations and records only that an
	// allocation happened, with no origin trace.
	LeakSimple
	// LeakAdvanced samples 1 in 20 allocations and captures an origin
	// stack trace for each.
	LeakAdvanced
	// LeakParanoid samples every allocation and captures an origin stack
	// trace for each. Intended for tests, not production traffic.
	LeakParanoid
)

// sampleDenominator returns 1-in-N: a sampled allocation occurs once every
// N calls. LeakDisabled returns 0, meaning "never".
func (l LeakLevel) sampleDenominator() int {
	switch l {
	case LeakSimple:
		return 100
	case LeakAdvanced:
		return 20
	case LeakParanoid:
		return 1
	default:
		return 0
	}
}

// capturesTrace reports whether this level records an origin stack trace
// for each sampled allocation, rather than merely counting it.
func (l LeakLevel) capturesTrace() bool {
	return l == LeakAdvanced || l == LeakParanoid
}

// Config carries every recognized pool configuration option from §6.3.
type Config struct {
	// ArenaCount is the number of independent arenas (lock domains).
	// Defaults to 2x a reasonable worker count when zero; see Default.
	ArenaCount int `validate:"gt=0"`

	// PageSize is the leaf page size in bytes; must be a power of two.
	PageSize int `validate:"gt=0,pow2"`

	// MaxOrder is the chunk tree depth; chunk size = PageSize << MaxOrder.
	MaxOrder int `validate:"gte=0,lte=20"`

	// SmallCacheSize is the per-executor cache capacity, in entries, for
	// small (sub-page) allocations.
	SmallCacheSize int `validate:"gte=0"`

	// NormalCacheSize is the per-executor cache capacity, in entries, for
	// normal (page-or-larger) allocations.
	NormalCacheSize int `validate:"gte=0"`

	// CacheTrimInterval is the number of freed blocks offered to a cache
	// between automatic cache trim passes; allocations are not counted.
	// Zero disables the periodic trim.
	CacheTrimInterval int `validate:"gte=0"`

	// LeakDetection selects the leak detector's sampling level.
	LeakDetection LeakLevel
}

// validatePow2 reports whether an int field's value is a power of two.
func validatePow2(fl libval.FieldLevel) bool {
	v := fl.Field().Int()
	return v > 0 && v&(v-1) == 0
}

// Default returns the recommended configuration: 8 KiB pages, an 11-level
// chunk tree (8 KiB << 11 = 16 MiB chunks), 256-entry small/normal caches
// trimmed every 8192 allocations, simple leak detection, and two arenas per
// expected worker (workerCount defaults to 4 when <= 0).
func Default(workerCount int) Config {
	if workerCount <= 0 {
		workerCount = 4
	}
	return Config{
		ArenaCount:        workerCount * 2,
		PageSize:          8 * 1024,
		MaxOrder:          11,
		SmallCacheSize:    256,
		NormalCacheSize:   256,
		CacheTrimInterval: 8192,
		LeakDetection:     LeakSimple,
	}
}

// Validate checks that the configuration describes a usable pool: a
// power-of-two page size, a non-negative chunk depth, and a positive arena
// count.
func (c Config) Validate() error {
	val := libval.New()
	if err := val.RegisterValidation("pow2", validatePow2); err != nil {
		return errs.Wrap(errs.KindAllocator, err, "pool: registering validator")
	}

	err := val.Struct(c)
	if err == nil {
		return nil
	}

	if e, ok := err.(*libval.InvalidValidationError); ok {
		return errs.Wrap(errs.KindAllocator, e, "pool: invalid configuration")
	}

	var msg string
	for _, e := range err.(libval.ValidationErrors) {
		msg += fmt.Sprintf("field '%s' fails constraint '%s'; ", e.StructNamespace(), e.ActualTag())
	}
	return errs.New(errs.KindAllocator, "pool: %s", msg)
}

// ChunkSize returns the full size, in bytes, of one chunk: PageSize shifted
// left by MaxOrder.
func (c Config) ChunkSize() int {
	return c.PageSize << uint(c.MaxOrder)
}
