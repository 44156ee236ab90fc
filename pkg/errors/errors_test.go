package errors_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/seniormoment/seniormoment/pkg/errors"
)

var _ = Describe("Errors", func() {
	It("should recognize a wrapped not found error", func() {
		err := fmt.Errorf("get alarm: %w", srvErrors.NewAlarmNotFoundError("abc"))

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`alarm "abc" not found`))
		Expect(srvErrors.IsInvalidStateError(err)).To(BeFalse())
	})

	It("should describe the rejected operation", func() {
		err := srvErrors.NewInvalidStateError("alarm", "ringing", "pause")

		Expect(srvErrors.IsInvalidStateError(err)).To(BeTrue())
		Expect(err.Error()).To(Equal(`cannot pause alarm in state "ringing"`))
	})

	It("should unwrap validation errors", func() {
		cause := errors.New("must be positive")
		err := srvErrors.NewValidationError("duration", cause)

		Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeFalse())
	})
})
