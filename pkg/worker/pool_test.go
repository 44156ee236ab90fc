package worker_test

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seniormoment/seniormoment/pkg/worker"
)

var _ = Describe("Pool", func() {
	var p *worker.Pool

	AfterEach(func() {
		if p != nil {
			p.Close()
		}
	})

	Describe("AddWork", func() {
		It("should run work and deliver the result", func() {
			p = worker.NewPool(1)

			future := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result worker.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal("done"))
		})

		It("should deliver the work error", func() {
			p = worker.NewPool(1)
			boom := errors.New("boom")

			future := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				return nil, boom
			})

			var result worker.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(boom))
		})
	})

	Describe("Concurrency", func() {
		// Given a pool with a single slot
		// When several pieces of work are submitted
		// Then no two of them run at the same time
		It("should never run more work than it has slots", func() {
			p = worker.NewPool(1)

			var active, peak atomic.Int32
			futures := make([]*worker.Future[worker.Result[any]], 0, 5)
			for range 5 {
				futures = append(futures, p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
					n := active.Add(1)
					for {
						old := peak.Load()
						if n <= old || peak.CompareAndSwap(old, n) {
							break
						}
					}
					time.Sleep(20 * time.Millisecond)
					active.Add(-1)
					return nil, nil
				}))
			}

			for _, f := range futures {
				Eventually(f.C(), 2*time.Second).Should(Receive())
			}
			Expect(peak.Load()).To(Equal(int32(1)))
		})

		It("should run work in submission order on a single slot", func() {
			p = worker.NewPool(1)

			order := make(chan int, 3)
			for i := range 3 {
				idx := i
				p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
					order <- idx
					return nil, nil
				})
			}

			Eventually(func() int { return len(order) }, 2*time.Second).Should(Equal(3))
			Expect(<-order).To(Equal(0))
			Expect(<-order).To(Equal(1))
			Expect(<-order).To(Equal(2))
		})
	})

	Describe("Panic recovery", func() {
		It("should turn a panic into an error and keep serving", func() {
			p = worker.NewPool(1)

			future := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				panic("kaboom")
			})

			var result worker.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("worker panicked: kaboom")))

			next := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				return 1, nil
			})
			Eventually(next.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal(1))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			p = worker.NewPool(1)

			cancelled := make(chan bool, 1)
			future := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})
			time.Sleep(50 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when the caller context is cancelled", func() {
			p = worker.NewPool(1)
			ctx, cancel := context.WithCancel(context.Background())

			cancelled := make(chan bool, 1)
			p.AddWork(ctx, func(ctx context.Context) (any, error) {
				<-ctx.Done()
				cancelled <- true
				return nil, ctx.Err()
			})
			cancel()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when the pool is closed", func() {
			p = worker.NewPool(1)

			cancelled := make(chan bool, 1)
			p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})
			time.Sleep(50 * time.Millisecond)
			p.Close()
			p = nil

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			p = worker.NewPool(1)
			p.Close()

			future := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result worker.Result[any]
			Eventually(future.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should fail queued work on Close", func() {
			p = worker.NewPool(1)

			unblock := make(chan struct{})
			p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				<-ctx.Done()
				<-unblock
				return nil, nil
			})
			queued := p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				return "never", nil
			})

			go func() {
				time.Sleep(50 * time.Millisecond)
				close(unblock)
			}()
			p.Close()
			p = nil

			var result worker.Result[any]
			Eventually(queued.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			p = worker.NewPool(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			})
			Eventually(started, time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				p.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, time.Second).Should(BeClosed())
			p = nil
		})

		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			p = worker.NewPool(4)

			for range 200 {
				p.AddWork(context.Background(), func(ctx context.Context) (any, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				})
			}

			time.Sleep(100 * time.Millisecond)
			p.Close()
			p = nil

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})
})
