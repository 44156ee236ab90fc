package funnel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seniormoment/seniormoment/pkg/funnel"
)

var _ = Describe("Heartbeat", func() {
	It("should default the interval", func() {
		Expect(funnel.NewHeartbeat(0).Interval()).To(Equal(funnel.DefaultHeartbeatInterval))
		Expect(funnel.NewHeartbeat(-time.Second).Interval()).To(Equal(funnel.DefaultHeartbeatInterval))
		Expect(funnel.NewHeartbeat(10 * time.Millisecond).Interval()).To(Equal(10 * time.Millisecond))
	})

	It("should call every ticker on each beat", func() {
		var a, b atomic.Int32
		hb := funnel.NewHeartbeat(time.Hour,
			funnel.TickerFunc(func(time.Time) { a.Add(1) }),
		)
		hb.Add(funnel.TickerFunc(func(time.Time) { b.Add(1) }))

		hb.Beat(time.Now())
		hb.Beat(time.Now())

		Expect(a.Load()).To(Equal(int32(2)))
		Expect(b.Load()).To(Equal(int32(2)))
	})

	It("should survive a panicking ticker", func() {
		var after atomic.Int32
		hb := funnel.NewHeartbeat(time.Hour,
			funnel.TickerFunc(func(time.Time) { panic("bad ticker") }),
			funnel.TickerFunc(func(time.Time) { after.Add(1) }),
		)

		Expect(func() { hb.Beat(time.Now()) }).NotTo(Panic())
		Expect(after.Load()).To(Equal(int32(1)))
	})

	It("should tick periodically until stopped", func() {
		var ticks atomic.Int32
		hb := funnel.NewHeartbeat(5*time.Millisecond, funnel.TickerFunc(func(time.Time) { ticks.Add(1) }))

		Expect(hb.Start(context.Background())).To(Succeed())
		Eventually(ticks.Load).Should(BeNumerically(">=", 3))

		hb.Stop()
		stopped := ticks.Load()
		Consistently(ticks.Load, 30*time.Millisecond).Should(Equal(stopped))
	})

	It("should stop when its context is cancelled", func() {
		var ticks atomic.Int32
		hb := funnel.NewHeartbeat(5*time.Millisecond, funnel.TickerFunc(func(time.Time) { ticks.Add(1) }))

		ctx, cancel := context.WithCancel(context.Background())
		Expect(hb.Start(ctx)).To(Succeed())
		Eventually(ticks.Load).Should(BeNumerically(">=", 1))

		cancel()
		hb.Stop()
		stopped := ticks.Load()
		Consistently(ticks.Load, 30*time.Millisecond).Should(Equal(stopped))
	})

	It("should refuse a second Start", func() {
		hb := funnel.NewHeartbeat(time.Hour)
		Expect(hb.Start(context.Background())).To(Succeed())
		defer hb.Stop()

		err := hb.Start(context.Background())
		Expect(errors.Is(err, funnel.ErrInvalidState)).To(BeTrue())
	})

	It("should allow a restart after Stop", func() {
		hb := funnel.NewHeartbeat(time.Hour)
		Expect(hb.Start(context.Background())).To(Succeed())
		hb.Stop()
		Expect(hb.Start(context.Background())).To(Succeed())
		hb.Stop()
	})

	// Given an item left pending because the resource was held
	// When the resource frees up and the heartbeat fires
	// Then the pending item starts without any other trigger
	It("should start work left pending by a busy resource", func() {
		var busy atomic.Bool
		busy.Store(true)
		f := funnel.New(funnel.WithBusyGate(busy.Load))
		defer f.Close()

		it := newItem("missed wake-up")
		Expect(f.Submit(it)).To(Succeed())
		Expect(f.Busy()).To(BeFalse())

		hb := funnel.NewHeartbeat(5*time.Millisecond, f)
		Expect(hb.Start(context.Background())).To(Succeed())
		defer hb.Stop()

		Consistently(f.Busy, 30*time.Millisecond).Should(BeFalse())
		busy.Store(false)
		Eventually(f.Busy).Should(BeTrue())
		Expect(f.Status().Running.Name).To(Equal("missed wake-up"))
	})
})
