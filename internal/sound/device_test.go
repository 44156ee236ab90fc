package sound_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seniormoment/seniormoment/internal/sound"
)

var _ = Describe("SimulatedDevice", func() {
	var dev *sound.SimulatedDevice

	BeforeEach(func() {
		dev = sound.NewSimulatedDevice(sound.WithWordDuration(5 * time.Millisecond))
	})

	It("should be busy while a clip plays", func() {
		done := make(chan error, 1)
		err := dev.Play(context.Background(), sound.Clip{Name: "short", Length: 30 * time.Millisecond}, func(err error) { done <- err })
		Expect(err).NotTo(HaveOccurred())

		Expect(dev.Busy()).To(BeTrue())
		Eventually(done).Should(Receive(BeNil()))
		Expect(dev.Busy()).To(BeFalse())
	})

	It("should refuse a second operation while busy", func() {
		Expect(dev.Play(context.Background(), sound.Clip{Name: "long", Length: time.Second}, nil)).To(Succeed())

		err := dev.Say(context.Background(), "hello", nil)
		Expect(err).To(MatchError(sound.ErrDeviceBusy))
	})

	It("should be busy while held from outside", func() {
		dev.Hold()
		dev.Hold()
		Expect(dev.Busy()).To(BeTrue())
		Expect(dev.Record(context.Background(), time.Millisecond, nil)).To(MatchError(sound.ErrDeviceBusy))

		dev.Release()
		Expect(dev.Busy()).To(BeTrue())
		dev.Release()
		dev.Release()
		Expect(dev.Busy()).To(BeFalse())
	})

	It("should stop early when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		Expect(dev.Play(ctx, sound.Clip{Name: "long", Length: time.Hour}, func(err error) { done <- err })).To(Succeed())

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
		Expect(dev.Busy()).To(BeFalse())
	})

	It("should speak for a time proportional to the words", func() {
		done := make(chan error, 1)
		start := time.Now()
		Expect(dev.Say(context.Background(), "one two three four", func(err error) { done <- err })).To(Succeed())

		Eventually(done).Should(Receive(BeNil()))
		Expect(time.Since(start)).To(BeNumerically(">=", 20*time.Millisecond))
	})

	It("should record what it did", func() {
		done := make(chan error, 1)
		Expect(dev.Play(context.Background(), sound.Clip{Name: "beep", Length: time.Millisecond}, func(err error) { done <- err })).To(Succeed())
		Eventually(done).Should(Receive())

		Expect(dev.History()).To(Equal([]string{"play:beep"}))
	})

	It("should fall back to the default clip", func() {
		Expect(sound.LookupClip("no-such-clip").Name).To(Equal(sound.DefaultClip))
		Expect(sound.LookupClip("chime").Name).To(Equal("chime"))
		Expect(sound.KnownClip("buzzer")).To(BeTrue())
		Expect(sound.KnownClip("kazoo")).To(BeFalse())
	})
})
