package mark_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
)

var _ = Describe("Mark", func() {
	var testMark mark.Mark
	var otherMark mark.Mark

	BeforeEach(func() {
		testMark = mark.NewMark("TestMark")
		otherMark = mark.NewMark("OtherMark")
	})

	It("recognizes a marked error", func() {
		err := mark.Message(testMark, "something happened")

		Expect(mark.Is(err, testMark)).To(BeTrue())
		Expect(mark.Is(err, otherMark)).To(BeFalse())
	})

	It("keeps the mark through wrapping", func() {
		base := errors.New("root cause")
		marked := mark.Wrap(base, testMark, "context")
		wrapped := errors.Wrap(marked, "more context")

		Expect(mark.Is(wrapped, testMark)).To(BeTrue())
	})

	It("does not mark unrelated errors", func() {
		err := errors.New("plain error")

		Expect(mark.Is(err, testMark)).To(BeFalse())
	})
})
