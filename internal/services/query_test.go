package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/docsql/internal/models"
	"github.com/kubev2v/docsql/internal/services"
	"github.com/kubev2v/docsql/internal/store"
	srvErrors "github.com/kubev2v/docsql/pkg/errors"
	"github.com/kubev2v/docsql/pkg/filter"
	"github.com/kubev2v/docsql/pkg/schema"
)

const catalogYAML = `
tables:
  - name: users
    fields:
      - {name: _id, type: number}
      - {name: name, type: string}
      - {name: age, type: number}
      - {name: isEmployed, type: boolean}
    rows:
      - {_id: 1, name: john, age: 1, isEmployed: false}
      - {_id: 2, name: john, age: 19, isEmployed: true}
      - {_id: 3, name: alice, age: 21, isEmployed: true}
  - name: teams
    fields:
      - {name: title, type: string}
`

var _ = Describe("QueryService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		srv *services.QueryService
	)

	BeforeEach(func() {
		ctx = context.Background()

		catalog, err := schema.ParseCatalog([]byte(catalogYAML))
		Expect(err).NotTo(HaveOccurred())

		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		srv, err = services.NewQueryService(catalog, store.NewStore(db), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Seed(ctx)).To(Succeed())
	})

	AfterEach(func() {
		srv.Close()
		db.Close()
	})

	It("should list the catalog tables", func() {
		tables := srv.Tables()
		Expect(tables).To(HaveLen(2))
		Expect(tables[0].Name).To(Equal("users"))
		Expect(tables[1].Name).To(Equal("teams"))
	})

	Describe("Translate", func() {
		It("should translate a query", func() {
			stmt, err := srv.Translate(models.Query{
				Table:      "users",
				Filter:     filter.D{{Key: "name", Value: "john"}},
				Projection: filter.Include("name", "age"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(stmt).To(Equal("SELECT name, age FROM users WHERE name = 'john';"))
		})

		It("should return not found for unknown tables", func() {
			_, err := srv.Translate(models.Query{Table: "missing"})
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should check fields against the table schema", func() {
			_, err := srv.Translate(models.Query{Table: "teams", Filter: filter.D{{Key: "name", Value: "x"}}})
			Expect(srvErrors.IsUnknownFieldError(err)).To(BeTrue())
			Expect(srvErrors.IsQueryError(err)).To(BeTrue())
		})
	})

	Describe("Find", func() {
		It("should run the translated statement", func() {
			rs, err := srv.Find(ctx, models.Query{
				Table:      "users",
				Filter:     filter.D{{Key: "$or", Value: []any{filter.D{{Key: "age", Value: 1}}, filter.D{{Key: "age", Value: filter.D{{Key: "$gt", Value: 20}}}}}}},
				Projection: filter.Include("_id", "name"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Statement).To(Equal("SELECT _id, name FROM users WHERE age = 1 OR age > 20;"))
			Expect(rs.Columns).To(Equal([]string{"_id", "name"}))
			Expect(rs.Rows).To(ConsistOf(
				[]any{float64(1), "john"},
				[]any{float64(3), "alice"},
			))
		})

		It("should select everything without filter and projection", func() {
			rs, err := srv.Find(ctx, models.Query{Table: "users"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Statement).To(Equal("SELECT * FROM users;"))
			Expect(rs.Len()).To(Equal(3))
		})

		It("should match nothing for an empty membership list", func() {
			rs, err := srv.Find(ctx, models.Query{
				Table:  "users",
				Filter: filter.D{{Key: "name", Value: filter.D{{Key: "$in", Value: []any{}}}}},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(0))
		})

		It("should bind values instead of running them as SQL", func() {
			injected := "x'; DROP TABLE users; SELECT 'pwned"

			rs, err := srv.Find(ctx, models.Query{Table: "users", Filter: filter.D{{Key: "name", Value: injected}}})
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Statement).To(Equal("SELECT * FROM users WHERE name = '" + injected + "';"))
			Expect(rs.Columns).To(Equal([]string{"_id", "name", "age", "isEmployed"}))
			Expect(rs.Len()).To(Equal(0))

			rs, err = srv.Find(ctx, models.Query{Table: "users"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(3))
		})

		It("should bind quotes inside operator and membership values", func() {
			rs, err := srv.Find(ctx, models.Query{
				Table: "users",
				Filter: filter.D{{Key: "$or", Value: []any{
					filter.D{{Key: "name", Value: filter.D{{Key: "$in", Value: []any{"o'brien", "alice"}}}}},
					filter.D{{Key: "name", Value: filter.D{{Key: "$gt", Value: "z' OR '1'='1"}}}},
				}}},
				Projection: filter.Include("_id"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Rows).To(Equal([][]any{{float64(3)}}))
		})

		It("should not run malformed queries", func() {
			_, err := srv.Find(ctx, models.Query{
				Table:  "users",
				Filter: filter.D{{Key: "$gt", Value: 1}},
			})
			Expect(srvErrors.IsUnknownQueryShapeError(err)).To(BeTrue())
		})

		It("should honour the caller context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := srv.Find(cctx, models.Query{Table: "users"})
			Expect(err).To(HaveOccurred())
		})
	})
})
