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

package pool_test

import (
	"testing"

	"github.com/sabouaram/nettle/buffer/pool"
)

func TestAllocatorServesSmallAllocations(t *testing.T) {
	cfg := pool.Default(1)
	cfg.PageSize = 1024
	cfg.MaxOrder = 2
	a, err := pool.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c := a.CacheFor()

	b, err := a.Allocate(c, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if b.Capacity() != 64 {
		t.Fatalf("expected capacity 64, got %d", b.Capacity())
	}
	_, _ = b.WriteBytes([]byte("hello small world!!!"[:20]))
	if ok, err := b.Release(); err != nil || !ok {
		t.Fatalf("expected deallocating release, got %v %v", ok, err)
	}
}

func TestAllocatorServesNormalAllocations(t *testing.T) {
	cfg := pool.Default(1)
	cfg.PageSize = 1024
	cfg.MaxOrder = 4
	a, err := pool.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c := a.CacheFor()

	b, err := a.Allocate(c, 2048, 2048)
	if err != nil {
		t.Fatal(err)
	}
	if b.Capacity() != 2048 {
		t.Fatalf("expected capacity 2048, got %d", b.Capacity())
	}
	if ok, _ := b.Release(); !ok {
		t.Fatal("expected deallocating release")
	}
}

func TestAllocatorHugeRequestBypassesPool(t *testing.T) {
	cfg := pool.Default(1)
	cfg.PageSize = 1024
	cfg.MaxOrder = 2 // 4 KiB chunk

	a, err := pool.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := a.Allocate(nil, 8192, 8192) // bigger than one chunk
	if err != nil {
		t.Fatal(err)
	}
	if b.Capacity() != 8192 {
		t.Fatalf("expected capacity 8192, got %d", b.Capacity())
	}
}

func TestAllocatorCacheReusesFreedBlockWithoutArenaMutex(t *testing.T) {
	cfg := pool.Default(1)
	cfg.PageSize = 1024
	cfg.MaxOrder = 2
	a, err := pool.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c := a.CacheFor()

	b1, _ := a.Allocate(c, 32, 32)
	if _, err := b1.Release(); err != nil {
		t.Fatal(err)
	}
	b2, err := a.Allocate(c, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if b2.Capacity() != 32 {
		t.Fatalf("expected capacity 32, got %d", b2.Capacity())
	}
}

func TestAllocatorRejectsInitialLargerThanMax(t *testing.T) {
	a, err := pool.New(pool.Default(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Allocate(nil, 128, 64); err == nil {
		t.Fatal("expected an error")
	}
}
