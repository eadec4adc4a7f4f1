package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

var _ = Describe("Translate Command", func() {
	execute := func(args ...string) (string, error) {
		cmd := NewTranslateCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return strings.TrimSpace(out.String()), err
	}

	It("should print the statement", func() {
		out, err := execute(
			"--table", "users",
			"--filter", `{"$or": [{"age": 1}, {"$and": [{"name": "john"}, {"age": {"$gt": 18}}]}]}`,
			"--projection", `{"name": 1, "age": 1}`,
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("SELECT name, age FROM users WHERE age = 1 OR (name = 'john' AND age > 18);"))
	})

	It("should select everything without filter and projection", func() {
		out, err := execute("--table", "users")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("SELECT * FROM users;"))
	})

	It("should accept YAML documents", func() {
		out, err := execute("--table", "users", "--filter", "name: {$in: [john, bob]}")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("SELECT * FROM users WHERE name IN ('john', 'bob');"))
	})

	It("should require a table", func() {
		_, err := execute("--filter", `{"a": 1}`)
		Expect(err).To(MatchError(ContainSubstring("table must be set")))
	})

	It("should report malformed filters", func() {
		_, err := execute("--table", "users", "--filter", `{"$gt": 1}`)
		Expect(srvErrors.IsUnknownQueryShapeError(err)).To(BeTrue())
	})

	Context("with a catalog", func() {
		var catalog string

		BeforeEach(func() {
			catalog = filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
			Expect(os.WriteFile(catalog, []byte(`
tables:
  - name: users
    fields:
      - {name: name, type: string}
      - {name: age, type: number}
`), 0o644)).To(Succeed())
		})

		It("should check fields against the schema", func() {
			_, err := execute("--catalog", catalog, "--table", "users", "--filter", `{"nme": "john"}`)
			Expect(srvErrors.IsUnknownFieldError(err)).To(BeTrue())
		})

		It("should check value kinds against the schema", func() {
			_, err := execute("--catalog", catalog, "--table", "users", "--filter", `{"age": "19"}`)
			Expect(srvErrors.IsFieldKindMismatchError(err)).To(BeTrue())
		})

		It("should reject unknown tables", func() {
			_, err := execute("--catalog", catalog, "--table", "teams")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should translate valid queries", func() {
			out, err := execute("--catalog", catalog, "--table", "users", "--filter", `{"age": {"$lte": 30}}`, "--projection", `{"age": 0, "name": 1}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("SELECT name FROM users WHERE age <= 30;"))
		})
	})
})
