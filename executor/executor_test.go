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

package executor_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/nettle/executor"
)

var _ = Describe("Executor", func() {
	Context("Execute", func() {
		It("runs submitted tasks in order, one at a time", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			var order []int32
			var n atomic.Int32
			for i := 0; i < 5; i++ {
				i := i
				Expect(e.Execute(func() {
					order = append(order, int32(i))
					n.Add(1)
				})).ToNot(HaveOccurred())
			}

			Eventually(func() int32 { return n.Load() }, time.Second).Should(Equal(int32(5)))
			Expect(order).To(Equal([]int32{0, 1, 2, 3, 4}))
		})

		It("reports InExecutor true only from within its own tasks", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			Expect(e.InExecutor()).To(BeFalse())

			var inside atomic.Bool
			done := make(chan struct{})
			_ = e.Execute(func() {
				inside.Store(e.InExecutor())
				close(done)
			})
			Eventually(done, time.Second).Should(BeClosed())
			Expect(inside.Load()).To(BeTrue())
		})
	})

	Context("Submit", func() {
		It("completes the returned future once the task runs", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			f, err := e.Submit(func() {})
			Expect(err).ToNot(HaveOccurred())
			Eventually(f.Done(), time.Second).Should(BeClosed())
			Expect(f.Err()).ToNot(HaveOccurred())
		})

		It("recovers a panicking task into the future's error", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			f, _ := e.Submit(func() { panic("boom") })
			Eventually(f.Done(), time.Second).Should(BeClosed())
			Expect(f.Err()).To(HaveOccurred())
		})
	})

	Context("Schedule", func() {
		It("runs a delayed task once", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			var ran atomic.Bool
			_, err := e.Schedule(10*time.Millisecond, func() { ran.Store(true) })
			Expect(err).ToNot(HaveOccurred())

			Consistently(func() bool { return ran.Load() }, 5*time.Millisecond).Should(BeFalse())
			Eventually(func() bool { return ran.Load() }, time.Second).Should(BeTrue())
		})

		It("cancels a not-yet-run task", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			var ran atomic.Bool
			c, _ := e.Schedule(20*time.Millisecond, func() { ran.Store(true) })
			c.Cancel()

			Consistently(func() bool { return ran.Load() }, 100*time.Millisecond).Should(BeFalse())
		})

		It("repeats at a fixed rate until cancelled", func() {
			e := executor.New(executor.Default())
			defer e.ShutdownGracefully(context.Background(), 0, time.Second)

			var count atomic.Int32
			c, _ := e.ScheduleAtFixedRate(0, 5*time.Millisecond, func() { count.Add(1) })

			Eventually(func() int32 { return count.Load() }, time.Second).Should(BeNumerically(">=", 3))
			c.Cancel()
		})
	})

	Context("ShutdownGracefully", func() {
		It("stops accepting new submissions immediately", func() {
			e := executor.New(executor.Default())
			_ = e.ShutdownGracefully(context.Background(), 0, 200*time.Millisecond)

			Eventually(e.IsShutdown, time.Second).Should(BeTrue())
			_, err := e.Submit(func() {})
			Expect(err).To(HaveOccurred())
		})

		It("drains queued work before terminating", func() {
			e := executor.New(executor.Default())
			var ran atomic.Bool
			_ = e.Execute(func() {
				time.Sleep(10 * time.Millisecond)
				ran.Store(true)
			})

			err := e.ShutdownGracefully(context.Background(), 0, time.Second)
			Expect(err).ToNot(HaveOccurred())
			Expect(ran.Load()).To(BeTrue())
			Expect(e.IsTerminated()).To(BeTrue())
		})

		It("fails with a timeout error when the quiet period is never reached", func() {
			e := executor.New(executor.Default())
			_, _ = e.ScheduleAtFixedRate(0, time.Millisecond, func() {})

			err := e.ShutdownGracefully(context.Background(), time.Hour, 50*time.Millisecond)
			Expect(err).To(HaveOccurred())
		})

		It("terminates within timeout past a far-future scheduled task, cancelling it", func() {
			e := executor.New(executor.Default())
			var ran atomic.Bool
			_, err := e.Schedule(24*time.Hour, func() { ran.Store(true) })
			Expect(err).ToNot(HaveOccurred())

			err = e.ShutdownGracefully(context.Background(), 0, time.Second)
			Expect(err).ToNot(HaveOccurred())
			Expect(e.IsTerminated()).To(BeTrue())
			Expect(ran.Load()).To(BeFalse())
		})
	})
})

var _ = Describe("Group", func() {
	It("assigns the same key to the same executor every time", func() {
		g := executor.NewGroup(4, executor.Default())
		defer g.ShutdownGracefully(context.Background(), 0, time.Second)

		a := g.Next("channel-1")
		b := g.Next("channel-1")
		Expect(a).To(BeIdenticalTo(b))
	})

	It("shuts every member down", func() {
		g := executor.NewGroup(3, executor.Default())
		err := g.ShutdownGracefully(context.Background(), 0, time.Second)
		Expect(err).ToNot(HaveOccurred())
	})
})
