package translator

import (
	"fmt"

	"github.com/kubev2v/docsql/pkg/filter"
	"github.com/kubev2v/docsql/pkg/schema"
)

// Translator turns document filters over one table into SELECT statements.
// It holds no mutable state and is safe for concurrent use.
type Translator struct {
	table  string
	schema *schema.Schema
}

// New binds a translator to a table. Filters and projections are checked
// against s; a nil schema disables the checks.
func New(table string, s *schema.Schema) (*Translator, error) {
	if table == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}
	return &Translator{table: table, schema: s}, nil
}

func (t *Translator) Table() string {
	return t.table
}

func (t *Translator) Schema() *schema.Schema {
	return t.schema
}

// Find returns the SELECT statement for filter and projection. Both may be
// nil. The statement is never executed.
func (t *Translator) Find(query any, projection any) (string, error) {
	opts := t.options()

	projectionSql, err := filter.CompileProjection(projection, opts...)
	if err != nil {
		return "", fmt.Errorf("projection: %w", err)
	}

	filterSql, err := filter.Compile(query, opts...)
	if err != nil {
		return "", fmt.Errorf("filter: %w", err)
	}

	return Assemble(t.table, projectionSql, filterSql)
}

func (t *Translator) options() []filter.Option {
	if t.schema == nil {
		return nil
	}
	return []filter.Option{filter.WithSchema(t.schema)}
}
