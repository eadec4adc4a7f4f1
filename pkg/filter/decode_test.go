package filter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
	"github.com/kubev2v/docsql/pkg/filter"
)

var _ = Describe("Decode", func() {
	It("should keep key order of JSON objects", func() {
		doc, err := filter.Decode([]byte(`{"name": 1, "_id": 1, "age": 0}`))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(Equal(filter.D{{"name", 1}, {"_id", 1}, {"age", 0}}))
	})

	It("should decode nested filters", func() {
		doc, err := filter.Decode([]byte(`{"$or": [{"age": 1}, {"$and": [{"name": "john"}, {"age": {"$gt": 18.5}}]}]}`))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(Equal(filter.D{{"$or", []any{
			filter.D{{"age", 1}},
			filter.D{{"$and", []any{
				filter.D{{"name", "john"}},
				filter.D{{"age", filter.D{{"$gt", 18.5}}}},
			}}},
		}}}))
	})

	It("should decode YAML documents", func() {
		doc, err := filter.Decode([]byte("name:\n  $in: [alice, bob]\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(Equal(filter.D{{"name", filter.D{{"$in", []any{"alice", "bob"}}}}}))
	})

	It("should keep quoted scalars as strings", func() {
		doc, err := filter.Decode([]byte(`{"flag": "true", "n": "21", "b": true}`))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(Equal(filter.D{{"flag", "true"}, {"n", "21"}, {"b", true}}))
	})

	It("should decode null as nil", func() {
		doc, err := filter.Decode([]byte(`{"age": {"$gt": null}}`))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(Equal(filter.D{{"age", filter.D{{"$gt", nil}}}}))
	})

	It("should return nil for empty input", func() {
		doc, err := filter.Decode([]byte(""))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(BeNil())

		sql, err := filter.Compile(doc)
		Expect(err).ToNot(HaveOccurred())
		Expect(sql).To(BeEmpty())
	})

	It("should reject numbers without a finite value", func() {
		for _, src := range []string{`{"age": 1e400}`, `{"age": {"$in": [1, -1e400]}}`, "age: .inf", "age: .nan"} {
			_, err := filter.Decode([]byte(src))
			Expect(srvErrors.IsUnsupportedValueTypeError(err)).To(BeTrue(), "source: %s", src)
		}
	})

	It("should keep quoted out of range numbers as strings", func() {
		doc, err := filter.Decode([]byte(`{"code": "1e400"}`))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(Equal(filter.D{{"code", "1e400"}}))
	})

	It("should fail on invalid syntax", func() {
		_, err := filter.Decode([]byte(`{"name": `))
		Expect(err).To(HaveOccurred())
	})

	It("should feed the compiler", func() {
		doc, err := filter.Decode([]byte(`{"$and": [{"name": {"$gt": "a"}}, {"age": 2}, {"$or": [{"name": "b"}, {"age": {"$in": [2, 3]}}, {"isEmployed": true}]}]}`))
		Expect(err).ToNot(HaveOccurred())

		sql, err := filter.Compile(doc)
		Expect(err).ToNot(HaveOccurred())
		Expect(sql).To(Equal("name > 'a' AND age = 2 AND (name = 'b' OR age IN (2, 3) OR isEmployed = TRUE)"))
	})
})
