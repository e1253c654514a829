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

// smallClassSizes lists the element sizes, in bytes, of every small size
// class: powers of two from 16 bytes up to 2048. A request that fits one
// of these classes and is under half a page (see isSmall) is rounded up to
// the smallest class that fits; any larger request is served as a normal
// (page-granularity) allocation instead of a subpage slot, since splitting
// would no longer save meaningful space.
var smallClassSizes = []int{16, 32, 64, 128, 256, 512, 1024, 2048}

// smallClassIndex returns the index into smallClassSizes of the smallest
// class that can hold n bytes, or ok=false if n doesn't fit any small
// class (either 0, negative, or too large).
func smallClassIndex(n int) (idx int, ok bool) {
	if n <= 0 {
		return 0, false
	}
	for i, sz := range smallClassSizes {
		if n <= sz {
			return i, true
		}
	}
	return 0, false
}

func isSmall(n, pageSize int) bool {
	if n <= 0 || n >= pageSize/2 {
		return false
	}
	_, ok := smallClassIndex(n)
	return ok
}
