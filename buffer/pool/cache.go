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

// Cache is a single executor's thread-local view onto one arena: it keeps
// recently freed blocks, bucketed by size, so that repeat allocations of
// the same size are satisfied without ever taking the arena's mutex. A
// Cache belongs to exactly one executor at a time; nothing about it is
// safe for concurrent use from more than one goroutine.
type Cache struct {
	arena *arena
	cfg   Config

	small  map[int][]*allocation // keyed by elemSize
	normal map[int][]*allocation // keyed by exact allocation byte length

	sinceTrim int
}

// NewCache binds a cache to the arena selected for this executor. Callers
// obtain one from Allocator.CacheFor rather than constructing it directly.
func newCache(a *arena, cfg Config) *Cache {
	return &Cache{
		arena:  a,
		cfg:    cfg,
		small:  make(map[int][]*allocation),
		normal: make(map[int][]*allocation),
	}
}

func (c *Cache) takeSmall(elemSize int) *allocation {
	bucket := c.small[elemSize]
	if len(bucket) == 0 {
		return nil
	}
	al := bucket[len(bucket)-1]
	c.small[elemSize] = bucket[:len(bucket)-1]
	return al
}

func (c *Cache) takeNormal(size int) *allocation {
	bucket := c.normal[size]
	if len(bucket) == 0 {
		return nil
	}
	al := bucket[len(bucket)-1]
	c.normal[size] = bucket[:len(bucket)-1]
	return al
}

// offer tries to park a freed allocation in the cache instead of returning
// it to the arena. It reports whether the cache accepted it.
func (c *Cache) offer(al *allocation) bool {
	c.sinceTrim++
	if c.sinceTrim >= c.cfg.CacheTrimInterval && c.cfg.CacheTrimInterval > 0 {
		c.trim()
	}
	if al.isSmall {
		bucket := c.small[al.sp.elemSize]
		if len(bucket) >= c.cfg.SmallCacheSize {
			return false
		}
		c.small[al.sp.elemSize] = append(bucket, al)
		return true
	}
	size := len(al.data)
	bucket := c.normal[size]
	if len(bucket) >= c.cfg.NormalCacheSize {
		return false
	}
	c.normal[size] = append(bucket, al)
	return true
}

// trim drains every cached entry back to the arena. It is called only from
// offer, every CacheTrimInterval offers. Nothing calls it when an executor
// shuts down, so blocks cached at that point stay in the Cache and are not
// returned to the arena.
func (c *Cache) trim() {
	c.sinceTrim = 0
	for size, bucket := range c.small {
		for _, al := range bucket {
			c.arena.free(al)
		}
		delete(c.small, size)
	}
	for size, bucket := range c.normal {
		for _, al := range bucket {
			c.arena.free(al)
		}
		delete(c.normal, size)
	}
}
