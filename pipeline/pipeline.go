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

package pipeline

import (
	"sync"

	"github.com/sabouaram/nettle/executor"
)

const (
	headName = "__head__"
	tailName = "__tail__"
)

// pipe is the Pipeline implementation: a doubly linked list of nodes
// bounded by a fixed head and tail sentinel. head terminates outbound
// propagation by invoking the channel's real transport operations; tail
// terminates inbound propagation, logging any exception nothing else
// claimed.
type pipe struct {
	ch   Channel
	head *node
	tail *node

	mu    sync.Mutex
	names map[string]*node
}

// New builds a Pipeline bound to ch, wiring its head sentinel's outbound
// operations to the three transport actions a channel provides.
func New(ch Channel, transportWrite func(msg any, promise executor.Future), transportFlush, transportClose func()) Pipeline {
	head := newNode(headName, &headHandler{write: transportWrite, flush: transportFlush, closeFn: transportClose})
	tail := newNode(tailName, &tailHandler{})
	head.next, tail.prev = tail, head

	p := &pipe{ch: ch, head: head, tail: tail, names: map[string]*node{headName: head, tailName: tail}}
	head.p, tail.p = p, p
	return p
}

func (p *pipe) Channel() Channel { return p.ch }

func (p *pipe) Get(name string) (Handler, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n, ok := p.names[name]
	if !ok {
		return nil, false
	}
	return n.handler, true
}

// Context returns the named handler's HandlerContext — the same ctx its
// own methods receive — so an external caller (a channel reacting to a
// user's explicit read() call, say) can invoke a capability the handler
// exposes beyond the standard Handler contract while still propagating
// through Fire*/Write from that handler's own position in the chain.
func (p *pipe) Context(name string) (HandlerContext, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n, ok := p.names[name]
	if !ok {
		return nil, false
	}
	return n, true
}

func (p *pipe) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.names))
	for cur := p.head; cur != nil; cur = cur.next {
		out = append(out, cur.name)
	}
	return out
}

func (p *pipe) AddFirst(name string, h Handler) error {
	return p.insertAfter(p.head, name, h)
}

func (p *pipe) AddLast(name string, h Handler) error {
	return p.insertAfter(p.tail.prev, name, h)
}

func (p *pipe) AddBefore(existing, name string, h Handler) error {
	p.mu.Lock()
	anchor, ok := p.names[existing]
	p.mu.Unlock()
	if !ok {
		return errNoSuchHandler(existing)
	}
	return p.insertAfter(anchor.prev, name, h)
}

func (p *pipe) AddAfter(existing, name string, h Handler) error {
	p.mu.Lock()
	anchor, ok := p.names[existing]
	p.mu.Unlock()
	if !ok {
		return errNoSuchHandler(existing)
	}
	return p.insertAfter(anchor, name, h)
}

func (p *pipe) insertAfter(anchor *node, name string, h Handler) error {
	if name == headName || name == tailName {
		return errReservedName(name)
	}
	return p.runSync(func() error {
		p.mu.Lock()
		if _, dup := p.names[name]; dup {
			p.mu.Unlock()
			return errDuplicateName(name)
		}
		n := newNode(name, h)
		n.p = p
		nxt := anchor.next
		anchor.next, n.prev = n, anchor
		n.next, nxt.prev = nxt, n
		p.names[name] = n
		p.mu.Unlock()

		h.HandlerAdded(n)
		return nil
	})
}

func (p *pipe) Remove(name string) error {
	if name == headName || name == tailName {
		return errReservedName(name)
	}
	return p.runSync(func() error {
		p.mu.Lock()
		n, ok := p.names[name]
		if !ok {
			p.mu.Unlock()
			return errNoSuchHandler(name)
		}
		n.prev.next = n.next
		n.next.prev = n.prev
		delete(p.names, name)
		p.mu.Unlock()

		n.handler.HandlerRemoved(n)
		return nil
	})
}

func (p *pipe) Replace(oldName, newName string, h Handler) error {
	return p.runSync(func() error {
		p.mu.Lock()
		old, ok := p.names[oldName]
		if !ok {
			p.mu.Unlock()
			return errNoSuchHandler(oldName)
		}
		if oldName != newName {
			if _, dup := p.names[newName]; dup {
				p.mu.Unlock()
				return errDuplicateName(newName)
			}
		}
		n := newNode(newName, h)
		n.p = p
		n.prev, n.next = old.prev, old.next
		old.prev.next, old.next.prev = n, n
		delete(p.names, oldName)
		p.names[newName] = n
		p.mu.Unlock()

		old.handler.HandlerRemoved(old)
		h.HandlerAdded(n)
		return nil
	})
}

func (p *pipe) FireChannelRegistered()   { p.head.FireChannelRegistered() }
func (p *pipe) FireChannelUnregistered() { p.head.FireChannelUnregistered() }
func (p *pipe) FireChannelActive()       { p.head.FireChannelActive() }
func (p *pipe) FireChannelInactive()     { p.head.FireChannelInactive() }
func (p *pipe) FireChannelRead(msg any)  { p.head.FireChannelRead(msg) }
func (p *pipe) FireChannelReadComplete() { p.head.FireChannelReadComplete() }
func (p *pipe) FireUserEventTriggered(evt any) { p.head.FireUserEventTriggered(evt) }
func (p *pipe) FireExceptionCaught(err error)  { p.head.FireExceptionCaught(err) }

func (p *pipe) Write(msg any, promise executor.Future) { p.tail.Write(msg, promise) }
func (p *pipe) Flush()                                 { p.tail.Flush() }
func (p *pipe) Close()                                 { p.tail.Close() }
