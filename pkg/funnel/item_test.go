package funnel_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seniormoment/seniormoment/pkg/funnel"
)

var _ = Describe("WorkItem", func() {
	Context("NewWorkItem", func() {
		It("should reject a nil action", func() {
			it, err := funnel.NewWorkItem(nil, nil, "nothing")
			Expect(it).To(BeNil())
			Expect(errors.Is(err, funnel.ErrInvalidArgument)).To(BeTrue())
		})

		It("should apply defaults", func() {
			it := newItem("beep")

			Expect(it.Name()).To(Equal("beep"))
			Expect(it.Priority()).To(Equal(funnel.DefaultPriority))
			Expect(it.Params()).NotTo(BeNil())
			Expect(it.Params()).To(BeEmpty())
			Expect(it.Age()).To(BeNumerically(">=", 0))
			Expect(it.Context().Err()).NotTo(HaveOccurred())
		})

		It("should fall back to the id as name", func() {
			it := newItem("")
			Expect(it.Name()).To(Equal(it.ID().String()))
		})

		It("should keep the caller parameters", func() {
			it, err := funnel.NewWorkItem(hold, []any{"clip.wav", 3}, "play")
			Expect(err).NotTo(HaveOccurred())
			Expect(it.Params()).To(Equal([]any{"clip.wav", 3}))
		})

		It("should derive the cancellation context from the parent", func() {
			parent, cancel := context.WithCancel(context.Background())
			it := newItem("child", funnel.WithParent(parent))

			cancel()
			Eventually(it.Context().Done()).Should(BeClosed())
		})
	})

	Context("SortKey", func() {
		// Given two items of equal priority built a few milliseconds apart
		// When their sort keys are compared
		// Then the older one sorts first
		It("should order equal priorities by age", func() {
			x := newItem("X")
			time.Sleep(3 * time.Millisecond)
			y := newItem("Y")

			Expect(x.SortKey()).To(BeNumerically("<", y.SortKey()))
		})

		It("should put priority before age", func() {
			older := newItem("older", funnel.WithPriority(100))
			time.Sleep(2 * time.Millisecond)
			newer := newItem("newer", funnel.WithPriority(50))

			Expect(newer.SortKey()).To(BeNumerically("<", older.SortKey()))
		})
	})

	Context("LowerPriority", func() {
		It("should decrease the priority value by step", func() {
			it := newItem("alarm", funnel.WithPriority(110))

			Expect(it.LowerPriority(funnel.PriorityStep)).To(Equal(105))
			Expect(it.Priority()).To(Equal(105))
		})

		It("should clamp at the floor", func() {
			it := newItem("alarm", funnel.WithPriority(33))

			Expect(it.LowerPriority(5)).To(Equal(funnel.PriorityFloor))
			Expect(it.LowerPriority(5)).To(Equal(funnel.PriorityFloor))
		})

		It("should leave items already below the floor alone", func() {
			it := newItem("urgent", funnel.WithPriority(10))

			Expect(it.LowerPriority(5)).To(Equal(10))
		})

		It("should ignore a non-positive step", func() {
			it := newItem("alarm")

			Expect(it.LowerPriority(0)).To(Equal(funnel.DefaultPriority))
			Expect(it.LowerPriority(-5)).To(Equal(funnel.DefaultPriority))
		})
	})

	Context("Cancel", func() {
		It("should cancel the item's context", func() {
			it := newItem("record")
			it.Cancel()

			Expect(it.Context().Err()).To(MatchError(context.Canceled))
		})
	})
})
