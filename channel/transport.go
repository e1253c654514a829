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
	"context"

	"github.com/sabouaram/nettle/buffer"
)

// Address is a transport-specific endpoint identity (host:port, a unix
// socket path, an in-process loopback tag). Network is the transport's own
// name for its address family ("tcp", "unix", "loopback", ...).
type Address interface {
	Network() string
	String() string
}

// Transport is what a concrete transport (TCP, Unix, an in-process
// loopback pair) supplies a Channel with, per §6.1. Every method here is
// expected to do non-blocking I/O and route its result back through the
// ReadSink passed to Read rather than returning it directly —
// the channel's executor is the only goroutine allowed to see the result.
type Transport interface {
	// LocalAddr returns the transport's local endpoint, or nil before bind/
	// connect.
	LocalAddr() Address
	// RemoteAddr returns the transport's peer endpoint, or nil before
	// connect, or for a transport with no notion of a peer.
	RemoteAddr() Address

	// Bind starts listening/accepting (or is a no-op for connection-
	// oriented client transports).
	Bind(ctx context.Context, local Address) error
	// Connect establishes the connection, honoring ctx's deadline.
	Connect(ctx context.Context, remote Address) error

	// Read requests the transport to deliver its next chunk of inbound
	// data (or accepted connection, for a listener) to sink.ChannelRead,
	// followed by sink.ChannelReadComplete. It must not block the caller;
	// actual I/O happens on the transport's own goroutine(s), with results
	// marshalled onto the channel's executor before touching sink.
	Read(sink ReadSink)
	// Write sends buf's readable bytes. It takes ownership of one
	// reference on buf (the caller must not also release it).
	Write(buf buffer.Buffer) error
	// Close releases any OS-level resources. Idempotent.
	Close() error

	// SupportsExecutor reports whether this transport implementation is
	// compatible with running under ex — most transports accept any
	// executor, but one built atop a particular reactor (epoll, kqueue)
	// may require a matching executor type.
	SupportsExecutor(ex any) bool
}

// ReadSink is the callback surface a Transport delivers inbound data and
// lifecycle notifications through. A Channel implements it and is
// responsible for marshalling every call onto its own executor before
// touching the pipeline.
type ReadSink interface {
	ChannelRead(msg any)
	ChannelReadComplete()
	ChannelInactive()
	ExceptionCaught(err error)
}
