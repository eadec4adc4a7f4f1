package translator

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Assemble builds "SELECT <projection> FROM <table>[ WHERE <filter>];".
// The WHERE clause is omitted when filterSql is empty.
func Assemble(table, projectionSql, filterSql string) (string, error) {
	if table == "" {
		return "", fmt.Errorf("table name cannot be empty")
	}

	builder := sq.Select(projectionSql).From(table)
	if filterSql != "" {
		builder = builder.Where(filterSql)
	}

	query, _, err := builder.ToSql()
	if err != nil {
		return "", err
	}

	return query + ";", nil
}
