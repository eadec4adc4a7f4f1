package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/docsql/internal/models"
	"github.com/kubev2v/docsql/pkg/schema"
)

// TableStore materializes catalog tables and runs translated statements.
type TableStore struct {
	db QueryInterceptor
}

func NewTableStore(db QueryInterceptor) *TableStore {
	return &TableStore{db: db}
}

// Create creates the table if it does not exist. Column types follow the
// schema kinds.
func (s *TableStore) Create(ctx context.Context, name string, sch *schema.Schema) error {
	fields := sch.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("table %q has no fields", name)
	}

	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, fmt.Sprintf("%s %s", quoteIdent(f.Name), f.Kind.Sql()))
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(name), strings.Join(columns, ", "))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table %q: %w", name, err)
	}
	return nil
}

// Insert adds one row. Missing columns are left NULL.
func (s *TableStore) Insert(ctx context.Context, name string, row map[string]any) error {
	if len(row) == 0 {
		return nil
	}

	values := make(map[string]any, len(row))
	for column, v := range row {
		values[quoteIdent(column)] = v
	}

	query, args, err := sq.Insert(quoteIdent(name)).SetMap(values).ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting into %q: %w", name, err)
	}
	return nil
}

// Seed creates the table and inserts its catalog rows.
func (s *TableStore) Seed(ctx context.Context, t schema.Table) error {
	if err := s.Create(ctx, t.Name, t.Schema); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := s.Insert(ctx, t.Name, row); err != nil {
			return err
		}
	}
	return nil
}

// Query runs a single statement with its placeholder arguments and collects
// every row. Input holding more than one statement is refused.
func (s *TableStore) Query(ctx context.Context, statement string, args ...any) (models.ResultSet, error) {
	rs := models.ResultSet{Statement: statement}

	if err := singleStatement(statement); err != nil {
		return rs, err
	}

	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return rs, err
	}
	defer rows.Close()

	rs.Columns, err = rows.Columns()
	if err != nil {
		return rs, err
	}

	rs.Rows = [][]any{}
	for rows.Next() {
		values := make([]any, len(rs.Columns))
		ptrs := make([]any, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return rs, err
		}
		rs.Rows = append(rs.Rows, values)
	}

	return rs, rows.Err()
}

// singleStatement fails when a semicolon outside quotes is followed by
// anything but whitespace.
func singleStatement(statement string) error {
	var quote rune
	for i, r := range statement {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ';':
			if strings.TrimSpace(statement[i+1:]) != "" {
				return fmt.Errorf("statement holds more than one command: %q", statement)
			}
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
