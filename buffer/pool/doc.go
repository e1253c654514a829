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

// Package pool implements the slab/page/subpage pooled Buffer allocator:
// a buddy-tree chunk allocator for page-and-larger requests, a bitmap
// subpage splitter for small requests, per-arena lock domains, and a
// per-executor thread-local cache that satisfies repeat allocations of the
// same size without ever touching an arena's mutex.
//
// # Size classes
//
// Three size classes are handled differently:
//
//   - huge: larger than one chunk. Allocated directly from the Go heap and
//     released straight back to the garbage collector; the pool's
//     structures are bypassed entirely.
//   - normal: anything up to one chunk that is not small. Served from a
//     chunk's buddy tree, rounded up to the next page-multiple power of two.
//   - small: at most 2048 bytes (the largest size class) and under half a
//     page. Served from a subpage — a single page
//     split into equal-sized slots tracked by a bitmap — grouped by size
//     class so that same-sized requests reuse the same subpage's free
//     slots.
//
// # Arenas
//
// Config.ArenaCount independent arenas each own their own chunk list and
// subpage pools behind their own mutex, so that concurrent allocators
// contend on a lock domain sized to roughly twice the executor count
// rather than on one global lock.
//
// # Thread-local cache
//
// Each executor gets a Cache bound to one arena. A release first offers
// the freed block to the calling executor's cache; only a cache miss
// touches the arena's mutex. Caches are trimmed periodically; a cache is
// not drained back to the arena when its executor shuts down.
package pool
