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

import "github.com/sabouaram/nettle/errs"

func errAlreadyRegistered(id string) error {
	return errs.New(errs.KindLifecycle, "channel %s: already registered to an executor", id)
}

func errNotRegistered(id string) error {
	return errs.New(errs.KindLifecycle, "channel %s: not registered to an executor", id)
}

func errRegisterAfterActive(id string) error {
	return errs.New(errs.KindLifecycle, "channel %s: cannot re-register after activation", id)
}

func errAlreadyActive(id string) error {
	return errs.New(errs.KindLifecycle, "channel %s: already active", id)
}

func errNotActive(id string) error {
	return errs.New(errs.KindLifecycle, "channel %s: not active", id)
}

func errClosed(id string) error {
	return errs.New(errs.KindLifecycle, "channel %s: closed", id)
}

func errWriteAfterClose(id string) error {
	return errs.New(errs.KindIO, "channel %s: write after close", id)
}
