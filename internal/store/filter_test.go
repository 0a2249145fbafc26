package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/resort-catalog/internal/models"
	"github.com/kubev2v/resort-catalog/internal/store"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

var _ = Describe("Filter", func() {
	var (
		ctx context.Context
		s   *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = openStore(ctx)
		Expect(s.Features().Add(ctx, models.Feature{Name: "spa"})).To(Succeed())
		Expect(s.Features().Add(ctx, models.Feature{Name: "golf"})).To(Succeed())
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	DescribeTable("rejects invalid conditions",
		func(cond store.Condition) {
			_, err := s.Features().Filter(ctx, cond)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsInvalidFilterError(err)).To(BeTrue())
		},
		Entry("unknown column", store.Condition{Column: "price", Op: store.OpEq, Value: 1}),
		Entry("injected column", store.Condition{Column: "name; DROP TABLE features", Op: store.OpEq, Value: "x"}),
		Entry("unknown operator", store.Condition{Column: "name", Op: "GLOB", Value: "s*"}),
		Entry("list without IN", store.Condition{Column: "name", Op: store.OpEq, Value: []string{"spa"}}),
		Entry("IN without list", store.Condition{Column: "name", Op: store.OpIn, Value: "spa"}),
	)

	DescribeTable("accepts every supported operator",
		func(op store.Operator, value any, expected []string) {
			features, err := s.Features().Filter(ctx, store.Condition{Column: "name", Op: op, Value: value})
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(features))
			for _, f := range features {
				names = append(names, f.Name)
			}
			Expect(names).To(Equal(expected))
		},
		Entry("=", store.OpEq, "spa", []string{"spa"}),
		Entry("==", store.Operator("=="), "spa", []string{"spa"}),
		Entry("!=", store.OpNotEq, "spa", []string{"golf"}),
		Entry("<>", store.Operator("<>"), "spa", []string{"golf"}),
		Entry("<", store.OpLt, "spa", []string{"golf"}),
		Entry("<=", store.OpLtEq, "spa", []string{"spa", "golf"}),
		Entry(">", store.OpGt, "golf", []string{"spa"}),
		Entry(">=", store.OpGtEq, "golf", []string{"spa", "golf"}),
		Entry("LIKE", store.OpLike, "g%", []string{"golf"}),
		Entry("lowercase like", store.Operator("like"), "s%", []string{"spa"}),
		Entry("IN", store.OpIn, []string{"spa", "golf"}, []string{"spa", "golf"}),
	)

	// Given a value carrying SQL
	// When we filter on it
	// Then the value should be bound literally and the table left intact
	It("should bind values as arguments", func() {
		// Act
		features, err := s.Features().Filter(ctx, store.Eq("name", "spa' OR '1'='1"))

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(features).To(BeEmpty())
		Expect(countRows(ctx, s, "features")).To(Equal(2))
	})

	Context("ParseOperator", func() {
		It("should parse known operators", func() {
			op, ok := store.ParseOperator(" in ")
			Expect(ok).To(BeTrue())
			Expect(op).To(Equal(store.OpIn))
		})

		It("should reject unknown operators", func() {
			_, ok := store.ParseOperator("~")
			Expect(ok).To(BeFalse())
		})
	})
})
