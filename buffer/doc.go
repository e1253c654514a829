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

// Package buffer implements the runtime's reference-counted byte container:
// a linear octet region with an independent reader index and writer index,
// a capacity that can grow up to a fixed max-capacity, and an atomic
// reference count governing its lifetime.
//
// Buffer is the unit every other package in this module moves around:
// transports allocate one per read, codecs slice and duplicate views over
// it, and the pipeline passes it from handler to handler until something
// releases the last reference.
//
// # Cursors
//
// Every Buffer keeps two cursors. ReaderIndex advances on every Read*
// call; WriterIndex advances on every Write* call. The invariant
//
//	0 <= ReaderIndex() <= WriterIndex() <= Capacity() <= MaxCapacity()
//
// holds after every operation; violating it returns an error instead of
// panicking or silently clamping.
//
// # Reference counting
//
// A freshly allocated Buffer starts with a reference count of 1. Retain
// increments it; Release decrements it and returns true exactly once, the
// moment the count reaches zero, at which point the buffer is deallocated
// (returned to its owning pool, or simply dropped for GC). Any operation on
// a buffer after that moment returns a RefCount-kind error instead of
// touching freed memory.
//
// # Views
//
// Slice and Duplicate both return a Buffer that shares the same backing
// storage and co-owns the reference count: releasing a view decrements the
// count exactly like releasing the root would, and the storage is only
// reclaimed once every view (root included) has released.
package buffer
