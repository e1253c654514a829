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

package pipeline_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/nettle/executor"
	"github.com/sabouaram/nettle/pipeline"
)

// fakeChannel is the minimal pipeline.Channel a test pipeline needs.
type fakeChannel struct {
	id     string
	ex     executor.Executor
	closed bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{id: "test-channel", ex: executor.New(executor.Default())}
}

func (c *fakeChannel) ID() string                 { return c.id }
func (c *fakeChannel) Executor() executor.Executor { return c.ex }
func (c *fakeChannel) Close() error                { c.closed = true; return nil }
func (c *fakeChannel) IsActive() bool              { return !c.closed }

// recordingHandler appends its own name to a shared, mutex-guarded log
// every time it sees a read, then forwards the event onward.
type recordingHandler struct {
	pipeline.InboundAdapter
	name string
	log  *[]string
	mu   *sync.Mutex
}

func (h *recordingHandler) ChannelRead(ctx pipeline.HandlerContext, msg any) {
	h.mu.Lock()
	*h.log = append(*h.log, h.name)
	h.mu.Unlock()
	ctx.FireChannelRead(msg)
}

// panicInboundHandler panics when it sees a read, to exercise exception
// propagation starting from the failing handler itself.
type panicInboundHandler struct {
	pipeline.InboundAdapter
}

func (panicInboundHandler) ChannelRead(ctx pipeline.HandlerContext, msg any) {
	panic("boom")
}

// catchHandler records any exception routed to it.
type catchHandler struct {
	pipeline.InboundAdapter
	mu  sync.Mutex
	got error
	who string
}

func (h *catchHandler) ExceptionCaught(ctx pipeline.HandlerContext, err error) {
	h.mu.Lock()
	h.got = err
	h.who = ctx.Name()
	h.mu.Unlock()
}

func (h *catchHandler) read() (error, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.got, h.who
}

var _ = Describe("Pipeline", func() {
	var (
		ch *fakeChannel
		p  pipeline.Pipeline
	)

	BeforeEach(func() {
		ch = newFakeChannel()
		p = pipeline.New(ch, func(msg any, promise executor.Future) {}, func() {}, func() {})
	})

	It("fires inbound reads in add order from head to tail", func() {
		var log []string
		var mu sync.Mutex

		Expect(p.AddLast("a", &recordingHandler{name: "a", log: &log, mu: &mu})).To(Succeed())
		Expect(p.AddLast("b", &recordingHandler{name: "b", log: &log, mu: &mu})).To(Succeed())
		Expect(p.AddLast("c", &recordingHandler{name: "c", log: &log, mu: &mu})).To(Succeed())

		p.FireChannelRead("hello")

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), log...)
		}).Should(Equal([]string{"a", "b", "c"}))
	})

	It("AddFirst/AddBefore/AddAfter place handlers at the expected position", func() {
		var log []string
		var mu sync.Mutex
		rec := func(n string) *recordingHandler { return &recordingHandler{name: n, log: &log, mu: &mu} }

		Expect(p.AddLast("b", rec("b"))).To(Succeed())
		Expect(p.AddFirst("a", rec("a"))).To(Succeed())
		Expect(p.AddAfter("b", "c", rec("c"))).To(Succeed())
		Expect(p.AddBefore("b", "ab", rec("ab"))).To(Succeed())

		Expect(p.Names()).To(Equal([]string{"__head__", "a", "ab", "b", "c", "__tail__"}))
	})

	It("skips nodes that don't implement the capability being fired", func() {
		var log []string
		var mu sync.Mutex

		// asOutboundOnly only implements OutboundHandler, so it must not
		// appear in inbound traversal.
		outboundOnly := &recordingHandler{name: "outbound-only", log: &log, mu: &mu}
		var asOutboundOnly pipeline.Handler = struct {
			pipeline.OutboundAdapter
		}{}
		_ = outboundOnly

		Expect(p.AddLast("out", asOutboundOnly)).To(Succeed())
		Expect(p.AddLast("in", &recordingHandler{name: "in", log: &log, mu: &mu})).To(Succeed())

		p.FireChannelRead("x")

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), log...)
		}).Should(Equal([]string{"in"}))
	})

	It("resumes exception propagation from the node that panicked, not from the head", func() {
		var log []string
		var mu sync.Mutex
		catcher := &catchHandler{}

		Expect(p.AddLast("pre", &recordingHandler{name: "pre", log: &log, mu: &mu})).To(Succeed())
		Expect(p.AddLast("boom", panicInboundHandler{})).To(Succeed())
		Expect(p.AddLast("catch", catcher)).To(Succeed())

		p.FireChannelRead("x")

		Eventually(func() error {
			err, _ := catcher.read()
			return err
		}).ShouldNot(BeNil())

		_, who := catcher.read()
		Expect(who).To(Equal("catch"))

		// "pre" sits upstream of the panicking handler: if propagation had
		// restarted from the head instead of from "boom", it would see
		// ChannelRead a second time.
		mu.Lock()
		defer mu.Unlock()
		Expect(log).To(Equal([]string{"pre"}))
	})

	It("does not panic when an exception reaches the tail unclaimed", func() {
		Expect(p.AddLast("boom", panicInboundHandler{})).To(Succeed())

		Expect(func() { p.FireChannelRead("x") }).NotTo(Panic())
	})

	It("rejects duplicate names and unknown anchors", func() {
		Expect(p.AddLast("a", &pipeline.InboundAdapter{})).To(Succeed())
		Expect(p.AddLast("a", &pipeline.InboundAdapter{})).To(HaveOccurred())
		Expect(p.AddAfter("missing", "b", &pipeline.InboundAdapter{})).To(HaveOccurred())
	})

	It("rejects mutation against the reserved sentinel names", func() {
		Expect(p.Remove("__head__")).To(HaveOccurred())
		Expect(p.Remove("__tail__")).To(HaveOccurred())
	})

	It("removes a handler so later events skip it", func() {
		var log []string
		var mu sync.Mutex

		Expect(p.AddLast("a", &recordingHandler{name: "a", log: &log, mu: &mu})).To(Succeed())
		Expect(p.AddLast("b", &recordingHandler{name: "b", log: &log, mu: &mu})).To(Succeed())
		Expect(p.Remove("a")).To(Succeed())

		p.FireChannelRead("x")

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), log...)
		}).Should(Equal([]string{"b"}))
	})

	It("replaces a handler in place, preserving position", func() {
		var log []string
		var mu sync.Mutex

		Expect(p.AddLast("a", &recordingHandler{name: "a", log: &log, mu: &mu})).To(Succeed())
		Expect(p.AddLast("b", &recordingHandler{name: "b", log: &log, mu: &mu})).To(Succeed())
		Expect(p.Replace("a", "a2", &recordingHandler{name: "a2", log: &log, mu: &mu})).To(Succeed())

		Expect(p.Names()).To(Equal([]string{"__head__", "a2", "b", "__tail__"}))

		p.FireChannelRead("x")
		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), log...)
		}).Should(Equal([]string{"a2", "b"}))
	})

	It("lets a handler mutate the pipeline from outside the channel's executor", func() {
		// AddLast is called from the spec goroutine, never having hopped
		// onto ch.ex — runSync must marshal the mutation there itself.
		done := make(chan struct{})
		go func() {
			defer close(done)
			Expect(p.AddLast("late", &pipeline.InboundAdapter{})).To(Succeed())
		}()
		Eventually(done, time.Second).Should(BeClosed())
		Expect(p.Names()).To(ContainElement("late"))
	})
})
