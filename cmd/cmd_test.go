package cmd_test

import (
	"bytes"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/resort-catalog/cmd"
	"github.com/kubev2v/resort-catalog/internal/store"
)

var _ = Describe("ParseConditions", func() {
	It("should parse column:op:value expressions", func() {
		conds, err := cmd.ParseConditions([]string{"price:<:9000", "name:like:r%"})
		Expect(err).NotTo(HaveOccurred())
		Expect(conds).To(Equal([]store.Condition{
			{Column: "price", Op: store.OpLt, Value: "9000"},
			{Column: "name", Op: store.OpLike, Value: "r%"},
		}))
	})

	It("should split IN values on commas", func() {
		conds, err := cmd.ParseConditions([]string{"name:in:rixos,asteria"})
		Expect(err).NotTo(HaveOccurred())
		Expect(conds[0].Op).To(Equal(store.OpIn))
		Expect(conds[0].Value).To(Equal([]string{"rixos", "asteria"}))
	})

	It("should keep colons inside the value", func() {
		conds, err := cmd.ParseConditions([]string{"name:=:a:b"})
		Expect(err).NotTo(HaveOccurred())
		Expect(conds[0].Value).To(Equal("a:b"))
	})

	DescribeTable("rejects malformed expressions",
		func(expr string) {
			_, err := cmd.ParseConditions([]string{expr})
			Expect(err).To(HaveOccurred())
		},
		Entry("missing value", "price:<"),
		Entry("missing column", ":=:x"),
		Entry("unknown operator", "name:~:x"),
	)
})

var _ = Describe("Commands", func() {
	var dbPath string

	run := func(args ...string) (string, error) {
		out := &bytes.Buffer{}
		root := cmd.NewRootCommand()
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs(append([]string{"--db-path", dbPath, "--log-level", "error"}, args...))
		err := root.Execute()
		return out.String(), err
	}

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "resorts.db")
	})

	// Given a fresh path
	// When we run migrate
	// Then the database should be created and the roles listed
	It("should migrate and list roles", func() {
		// Act
		out, err := run("migrate")

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("is up to date"))

		out, err = run("list", "roles")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("admin"))
		Expect(out).To(ContainSubstring("user"))
	})

	// Given an empty users table
	// When we add users
	// Then the first should be free and the next require an admin
	It("should gate user creation behind an admin", func() {
		// Act & Assert
		out, err := run("add-user", "root", "--password", "secret", "--role", "admin")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("user root created"))

		_, err = run("add-user", "guest", "--password", "guest")
		Expect(err).To(MatchError("authentication failed"))

		_, err = run("add-user", "guest", "--password", "guest", "--as", "root", "--as-password", "secret")
		Expect(err).NotTo(HaveOccurred())

		out, err = run("list", "users", "--where", "role:=:user")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("guest"))
		Expect(out).NotTo(ContainSubstring("root"))
	})

	// Given a migrated database
	// When we list with an unknown column
	// Then the command should fail
	It("should reject an invalid filter", func() {
		_, err := run("list", "features", "--where", "price:=:1")
		Expect(err).To(HaveOccurred())
	})

	// Given a migrated database
	// When we list an unknown entity
	// Then the command should fail
	It("should reject an unknown entity", func() {
		_, err := run("list", "hotels")
		Expect(err).To(HaveOccurred())
	})
})
