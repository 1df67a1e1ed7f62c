package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bofa/internal/session"
)

var _ = Describe("Dispatcher", func() {
	var d *session.Dispatcher[string]

	BeforeEach(func() {
		var err error
		d, err = session.NewDispatcher(
			session.Choice[string]{Weight: 0.34, Value: "A"},
			session.Choice[string]{Weight: 0.33, Value: "B"},
			session.Choice[string]{Weight: 0.33, Value: "C"},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Len()).To(Equal(3))
	})

	DescribeTable("picks by cumulative weight",
		func(roll float64, want string) {
			Expect(d.Pick(roll)).To(Equal(want))
		},
		Entry("zero", 0.0, "A"),
		Entry("just below the first threshold", 0.3399, "A"),
		Entry("on the first threshold", 0.34, "B"),
		Entry("just below the second threshold", 0.6699, "B"),
		Entry("on the second threshold", 0.67, "C"),
		Entry("top of the range", 0.9999, "C"),
		Entry("out of range", 1.5, "C"),
	)

	It("scales unnormalised weights", func() {
		w, err := session.NewDispatcher(
			session.Choice[int]{Weight: 1, Value: 1},
			session.Choice[int]{Weight: 3, Value: 2},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Pick(0.24)).To(Equal(1))
		Expect(w.Pick(0.25)).To(Equal(2))
	})

	It("rejects an empty table", func() {
		_, err := session.NewDispatcher[string]()
		Expect(err).To(MatchError(session.ErrEmptyDispatcher))
	})

	It("rejects non-positive weights", func() {
		_, err := session.NewDispatcher(
			session.Choice[string]{Weight: 1, Value: "A"},
			session.Choice[string]{Weight: 0, Value: "B"},
		)
		Expect(err).To(MatchError(session.ErrBadWeight))
	})
})
