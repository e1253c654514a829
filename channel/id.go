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
	"strings"

	"github.com/hashicorp/go-uuid"
)

// ID is a channel's opaque 128-bit identity. The zero value is not a valid
// ID; always obtain one from newID.
type ID struct {
	raw string
}

func newID() (ID, error) {
	u, err := uuid.GenerateUUID()
	if err != nil {
		return ID{}, err
	}
	return ID{raw: u}, nil
}

// String returns the long printable form: the full 36-character UUID.
func (id ID) String() string {
	return id.raw
}

// Short returns an abbreviated printable form: the UUID's first group,
// good enough for log lines and test output without the visual noise of
// the full value.
func (id ID) Short() string {
	if i := strings.IndexByte(id.raw, '-'); i > 0 {
		return id.raw[:i]
	}
	return id.raw
}
