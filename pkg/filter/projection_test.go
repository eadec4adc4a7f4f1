package filter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
	"github.com/kubev2v/docsql/pkg/filter"
	"github.com/kubev2v/docsql/pkg/schema"
)

var _ = Describe("Projection", func() {
	type testCase struct {
		name   string
		input  any
		output string
	}

	tests := []testCase{
		{name: "absent", input: nil, output: "*"},
		{name: "nil document", input: filter.D(nil), output: "*"},
		{name: "one field by number", input: filter.D{{"name", 1}}, output: "name"},
		{name: "one field by boolean", input: filter.D{{"name", true}}, output: "name"},
		{name: "several fields", input: filter.D{{"name", true}, {"age", true}}, output: "name, age"},
		{name: "insertion order", input: filter.D{{"name", 1}, {"_id", 1}}, output: "name, _id"},
		{name: "excluded by zero", input: filter.D{{"name", 0}, {"age", 1}}, output: "age"},
		{name: "excluded by false", input: filter.D{{"name", false}, {"age", 1}}, output: "age"},
		{name: "excluded by nil", input: filter.D{{"name", nil}, {"age", 1}}, output: "age"},
		{name: "float flags", input: filter.D{{"name", 0.0}, {"age", 0.5}}, output: "age"},
		{name: "mixed", input: filter.D{{"name", 1}, {"age", false}, {"isEmployed", 1}}, output: "name, isEmployed"},
		{name: "map in sorted order", input: filter.M{"name": 1, "age": 1, "_id": 0}, output: "age, name"},
		{name: "nothing selected", input: filter.D{{"name", false}}, output: "NULL"},
		{name: "all zero", input: filter.D{{"name", 0}, {"age", 0}}, output: "NULL"},
		{name: "empty document", input: filter.D{}, output: "NULL"},
	}

	for _, test := range tests {
		test := test
		It("should compile projection: "+test.name, func() {
			out, err := filter.CompileProjection(test.input)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(test.output))
		})
	}

	It("should return columns individually", func() {
		columns, err := filter.ProjectionColumns(filter.Include("name", "_id"))
		Expect(err).ToNot(HaveOccurred())
		Expect(columns).To(Equal([]string{"name", "_id"}))
	})

	It("should reject flags that are not booleans or numbers", func() {
		_, err := filter.CompileProjection(filter.D{{"name", "yes"}})
		Expect(srvErrors.IsUnsupportedValueTypeError(err)).To(BeTrue())
	})

	It("should reject a projection that is not an object", func() {
		_, err := filter.CompileProjection([]any{"name"})
		Expect(srvErrors.IsMalformedNodeError(err)).To(BeTrue())
	})

	It("should reject fields missing from the schema", func() {
		s := schema.MustNew(schema.Field{Name: "name", Kind: schema.String})

		_, err := filter.CompileProjection(filter.D{{"name", 1}, {"salary", 1}}, filter.WithSchema(s))
		Expect(srvErrors.IsUnknownFieldError(err)).To(BeTrue())

		_, err = filter.CompileProjection(filter.D{{"name", 1}, {"salary", 0}}, filter.WithSchema(s))
		Expect(srvErrors.IsUnknownFieldError(err)).To(BeTrue())
	})
})
