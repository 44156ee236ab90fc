package sound_test

import (
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seniormoment/seniormoment/internal/models"
	"github.com/seniormoment/seniormoment/internal/sound"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

var _ = Describe("Player", func() {
	var (
		dev    *sound.SimulatedDevice
		f      *funnel.Funnel
		player *sound.Player
	)

	short := sound.Clip{Name: "short", Length: 20 * time.Millisecond}

	BeforeEach(func() {
		dev = sound.NewSimulatedDevice(sound.WithWordDuration(10 * time.Millisecond))
		f = funnel.New(funnel.WithAdvanceOnComplete(true))
		player = sound.NewPlayer(f, dev)
	})

	AfterEach(func() {
		f.Close()
	})

	It("should release the funnel when the sound ends", func() {
		done := make(chan error, 1)
		item, err := player.Play(short, func(err error) { done <- err })
		Expect(err).NotTo(HaveOccurred())
		Expect(item.Priority()).To(Equal(sound.PriorityAlarm))

		Expect(f.Busy()).To(BeTrue())
		Eventually(done).Should(Receive(BeNil()))
		Eventually(f.Busy).Should(BeFalse())
	})

	// Given a clip, a speech and a recording queued while the device plays
	// When each sound ends
	// Then the next one starts in priority order and never overlaps
	It("should play queued sounds one at a time in priority order", func() {
		var mu sync.Mutex
		var finished []string
		record := func(name string) func(error) {
			return func(error) {
				mu.Lock()
				defer mu.Unlock()
				finished = append(finished, name)
			}
		}

		_, err := player.Play(short, record("first"))
		Expect(err).NotTo(HaveOccurred())
		_, err = player.Play(short, record("alarm"))
		Expect(err).NotTo(HaveOccurred())
		_, err = player.Say("hi there", record("say"))
		Expect(err).NotTo(HaveOccurred())
		_, err = player.Record(10*time.Millisecond, record("record"))
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), finished...)
		}, 2*time.Second).Should(Equal([]string{"first", "record", "say", "alarm"}))
		Expect(dev.History()).To(Equal([]string{"play:short", "record:10ms", "say:hi there", "play:short"}))
	})

	// Given the device is held by something outside the funnel
	// When a sound is queued
	// Then it backs off with a lower priority value and plays once released
	It("should back off while the device is held", func() {
		dev.Hold()
		done := make(chan error, 1)
		item, err := player.Say("wait for me", func(err error) { done <- err })
		Expect(err).NotTo(HaveOccurred())

		Eventually(item.Priority).Should(BeNumerically("<", sound.PrioritySay))
		Eventually(f.Len).Should(Equal(1))
		Expect(f.Busy()).To(BeFalse())

		dev.Release()
		f.TryStartNext()
		Eventually(done).Should(Receive(BeNil()))
		Expect(dev.History()).To(Equal([]string{"say:wait for me"}))
	})

	It("should cancel a queued sound", func() {
		_, err := player.Play(short, nil)
		Expect(err).NotTo(HaveOccurred())
		queued, err := player.Say("never", nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(player.Cancel(queued)).To(BeTrue())
		Expect(player.Cancel(queued)).To(BeFalse())
		Expect(player.Cancel(nil)).To(BeFalse())
		Expect(queued.Context().Err()).To(HaveOccurred())
	})

	Describe("Submit", func() {
		It("should route requests by kind", func() {
			item, err := player.Submit(models.SoundRequest{Kind: models.SoundKindSay, Text: "hello", Priority: 42}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Priority()).To(Equal(42))
			Expect(item.Name()).To(Equal("say"))
		})

		It("should reject invalid requests", func() {
			_, err := player.Submit(models.SoundRequest{Kind: models.SoundKindSay}, nil)
			Expect(errors.Is(err, funnel.ErrInvalidArgument)).To(BeTrue())

			_, err = player.Submit(models.SoundRequest{Kind: models.SoundKindRecord}, nil)
			Expect(errors.Is(err, funnel.ErrInvalidArgument)).To(BeTrue())

			_, err = player.Submit(models.SoundRequest{Kind: "whistle"}, nil)
			Expect(errors.Is(err, funnel.ErrInvalidArgument)).To(BeTrue())
		})

		It("should play the default clip for unknown names", func() {
			item, err := player.Submit(models.SoundRequest{Kind: models.SoundKindPlay, Clip: "kazoo"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Name()).To(Equal("play " + sound.DefaultClip))
		})
	})
})

var _ = Describe("Player cancel", func() {
	It("should stop a sound that is playing", func() {
		dev := sound.NewSimulatedDevice()
		f := funnel.New()
		defer f.Close()
		player := sound.NewPlayer(f, dev)

		done := make(chan error, 1)
		item, err := player.Play(sound.Clip{Name: "endless", Length: time.Hour}, func(err error) { done <- err })
		Expect(err).NotTo(HaveOccurred())
		Eventually(dev.Busy).Should(BeTrue())

		Expect(player.Cancel(item)).To(BeFalse())
		Eventually(done).Should(Receive(HaveOccurred()))
		Eventually(f.Busy).Should(BeFalse())
		Expect(dev.Busy()).To(BeFalse())
	})
})

var _ = Describe("Player run timeout", func() {
	// Given a recording that outlives the run timeout while the device gates the funnel
	// When the heartbeat keeps ticking
	// Then the run is released and the device is stopped
	It("should release a sound that holds the device too long", func() {
		dev := sound.NewSimulatedDevice()
		f := funnel.New(funnel.WithBusyGate(dev.Busy), funnel.WithRunTimeout(50*time.Millisecond))
		defer f.Close()
		player := sound.NewPlayer(f, dev)

		done := make(chan error, 1)
		item, err := player.Record(time.Hour, func(err error) { done <- err })
		Expect(err).NotTo(HaveOccurred())
		Eventually(dev.Busy).Should(BeTrue())

		Eventually(func() bool {
			f.Tick(time.Now())
			return f.Busy()
		}, time.Second, 20*time.Millisecond).Should(BeFalse())

		Expect(item.Context().Err()).To(HaveOccurred())
		Eventually(done).Should(Receive(HaveOccurred()))
		Eventually(dev.Busy).Should(BeFalse())
	})
})
