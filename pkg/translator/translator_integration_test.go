package translator_test

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duckdb/duckdb-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/docsql/pkg/filter"
	"github.com/kubev2v/docsql/pkg/translator"
	"github.com/kubev2v/docsql/test"
)

var _ = Describe("Translator Integration with DuckDB", func() {
	var (
		ctx   context.Context
		db    *sql.DB
		users *translator.Translator
	)

	BeforeEach(func() {
		ctx = context.Background()

		connector, err := duckdb.NewConnector("", nil)
		Expect(err).ToNot(HaveOccurred())

		db = sql.OpenDB(connector)
		Expect(db.Ping()).To(Succeed())

		Expect(test.CreateUsers(ctx, db)).To(Succeed())
		Expect(test.InsertUsers(ctx, db)).To(Succeed())

		users, err = translator.New(test.UsersTable, test.UserSchema)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	// queryIDs runs the translated statement and returns the sorted _id column.
	queryIDs := func(f any) ([]int, error) {
		stmt, err := users.Find(f, filter.Include("_id"))
		if err != nil {
			return nil, err
		}

		rows, err := db.QueryContext(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w\nSQL: %s", err, stmt)
		}
		defer rows.Close()

		var ids []int
		for rows.Next() {
			var id float64
			if err := rows.Scan(&id); err != nil {
				return nil, err
			}
			ids = append(ids, int(id))
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		return sortInts(ids), nil
	}

	Context("Equality", func() {
		It("should find users by name", func() {
			ids, err := queryIDs(filter.D{{Key: "name", Value: "john"}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{1, 2, 3}))
		})

		It("should find users by boolean", func() {
			ids, err := queryIDs(filter.D{{Key: "isEmployed", Value: true}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{2, 4, 6, 8}))
		})

		It("should return nothing for a missing name", func() {
			ids, err := queryIDs(filter.D{{Key: "name", Value: "nobody"}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})
	})

	Context("Comparison", func() {
		It("should compare numbers", func() {
			ids, err := queryIDs(filter.D{{Key: "age", Value: filter.D{{Key: "$gte", Value: 21}}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{4, 7, 8}))
		})

		It("should compare strings", func() {
			ids, err := queryIDs(filter.D{{Key: "name", Value: filter.D{{Key: "$lt", Value: "b"}}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{4}))
		})

		It("should exclude with $ne", func() {
			ids, err := queryIDs(filter.D{{Key: "name", Value: filter.D{{Key: "$ne", Value: "john"}}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{4, 5, 6, 7, 8}))
		})
	})

	Context("Membership", func() {
		It("should match any listed value", func() {
			ids, err := queryIDs(filter.D{{Key: "name", Value: filter.D{{Key: "$in", Value: []any{"alice", "bob"}}}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{4, 5}))
		})

		It("should match nothing for an empty list", func() {
			ids, err := queryIDs(filter.D{{Key: "name", Value: filter.D{{Key: "$in", Value: []any{}}}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})
	})

	Context("Combinators", func() {
		It("should respect nested grouping", func() {
			ids, err := queryIDs(filter.D{{Key: "$or", Value: []any{
				filter.D{{Key: "age", Value: 1}},
				filter.D{{Key: "$and", Value: []any{filter.D{{Key: "name", Value: "john"}}, filter.D{{Key: "age", Value: filter.D{{Key: "$gt", Value: 18}}}}}}},
			}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{1, 2}))
		})

		It("should evaluate mixed combinators", func() {
			ids, err := queryIDs(filter.D{{Key: "$and", Value: []any{
				filter.D{{Key: "name", Value: filter.D{{Key: "$gt", Value: "a"}}}},
				filter.D{{Key: "age", Value: filter.D{{Key: "$lt", Value: 20}}}},
				filter.D{{Key: "$or", Value: []any{
					filter.D{{Key: "name", Value: "b"}},
					filter.D{{Key: "age", Value: filter.D{{Key: "$in", Value: []any{2, 3}}}}},
					filter.D{{Key: "isEmployed", Value: true}},
				}}},
			}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{2, 5, 6}))
		})
	})

	Context("Projection", func() {
		It("should run a statement that selects nothing", func() {
			stmt, err := users.Find(filter.D{{Key: "name", Value: "bob"}}, filter.D{{Key: "name", Value: 0}})
			Expect(err).ToNot(HaveOccurred())
			Expect(stmt).To(Equal("SELECT NULL FROM users WHERE name = 'bob';"))

			var v sql.NullString
			Expect(db.QueryRowContext(ctx, stmt).Scan(&v)).To(Succeed())
			Expect(v.Valid).To(BeFalse())
		})
	})

	Context("Bound statements", func() {
		boundIDs := func(f any) ([]int, error) {
			stmt, args, err := users.Select(f, filter.Include("_id"))
			if err != nil {
				return nil, err
			}
			rows, err := db.QueryContext(ctx, stmt, args...)
			if err != nil {
				return nil, fmt.Errorf("query failed: %w\nSQL: %s", err, stmt)
			}
			defer rows.Close()

			var ids []int
			for rows.Next() {
				var id float64
				if err := rows.Scan(&id); err != nil {
					return nil, err
				}
				ids = append(ids, int(id))
			}
			return sortInts(ids), rows.Err()
		}

		It("should return the same rows as the text statement", func() {
			filters := []any{
				filter.D{{Key: "name", Value: "john"}},
				filter.D{{Key: "isEmployed", Value: true}},
				filter.D{{Key: "age", Value: filter.D{{Key: "$gte", Value: 21}}}},
				filter.D{{Key: "age", Value: filter.D{{Key: "$lte", Value: 3}}}},
				filter.D{{Key: "name", Value: filter.D{{Key: "$ne", Value: "john"}}}},
				filter.D{{Key: "name", Value: filter.D{{Key: "$in", Value: []any{"alice", "bob"}}}}},
				filter.D{{Key: "name", Value: filter.D{{Key: "$in", Value: []any{}}}}},
				filter.D{{Key: "$or", Value: []any{
					filter.D{{Key: "age", Value: 1}},
					filter.D{{Key: "$and", Value: []any{filter.D{{Key: "name", Value: "john"}}, filter.D{{Key: "age", Value: filter.D{{Key: "$gt", Value: 18}}}}}}},
				}}},
			}
			for _, f := range filters {
				want, err := queryIDs(f)
				Expect(err).ToNot(HaveOccurred())

				got, err := boundIDs(f)
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(want), "filter: %v", f)
			}
		})

		It("should treat quotes in values as data", func() {
			ids, err := boundIDs(filter.D{{Key: "name", Value: "x'; DROP TABLE users; SELECT 'pwned"}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(BeEmpty())

			ids, err = boundIDs(filter.D{{Key: "name", Value: filter.D{{Key: "$ne", Value: "' OR '1'='1"}}}})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}))
		})
	})

	Context("Literals", func() {
		It("should read strings back", func() {
			for _, s := range []string{"john", "", "with space", "42"} {
				lit, err := filter.FormatValue(s)
				Expect(err).ToNot(HaveOccurred())

				var back string
				Expect(db.QueryRowContext(ctx, "SELECT "+lit).Scan(&back)).To(Succeed())
				Expect(back).To(Equal(s))
			}
		})

		It("should read numbers back", func() {
			for _, n := range []float64{0, -7, 3.25, 1e-3, 123456789} {
				lit, err := filter.FormatValue(n)
				Expect(err).ToNot(HaveOccurred())

				var back float64
				Expect(db.QueryRowContext(ctx, "SELECT CAST("+lit+" AS DOUBLE)").Scan(&back)).To(Succeed())
				Expect(back).To(Equal(n))
			}
		})

		It("should read booleans back", func() {
			for _, b := range []bool{true, false} {
				lit, err := filter.FormatValue(b)
				Expect(err).ToNot(HaveOccurred())

				var back bool
				Expect(db.QueryRowContext(ctx, "SELECT "+lit).Scan(&back)).To(Succeed())
				Expect(back).To(Equal(b))
			}
		})
	})
})

func sortInts(in []int) []int {
	for i := 1; i < len(in); i++ {
		for j := i; j > 0 && in[j] < in[j-1]; j-- {
			in[j], in[j-1] = in[j-1], in[j]
		}
	}
	return in
}
