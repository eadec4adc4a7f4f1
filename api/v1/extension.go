package v1

import (
	"bytes"
	"fmt"

	"github.com/kubev2v/docsql/internal/models"
	"github.com/kubev2v/docsql/pkg/filter"
	"github.com/kubev2v/docsql/pkg/schema"
)

// NewTableFromModel converts a catalog table to an API Table.
func NewTableFromModel(t schema.Table) Table {
	fields := t.Schema.Fields()
	out := Table{
		Name:   t.Name,
		Fields: make([]Field, 0, len(fields)),
	}
	for _, f := range fields {
		out.Fields = append(out.Fields, Field{Name: f.Name, Type: f.Kind.String()})
	}
	return out
}

func NewTableList(tables []schema.Table) TableList {
	l := TableList{Tables: make([]Table, 0, len(tables))}
	for _, t := range tables {
		l.Tables = append(l.Tables, NewTableFromModel(t))
	}
	return l
}

func NewFindResponse(rs models.ResultSet) FindResponse {
	rows := rs.Rows
	if rows == nil {
		rows = [][]any{}
	}
	columns := rs.Columns
	if columns == nil {
		columns = []string{}
	}
	return FindResponse{
		Sql:     rs.Statement,
		Columns: columns,
		Rows:    rows,
		Total:   len(rows),
	}
}

// ParseQueryRequest decodes a request body. It does not go through
// encoding/json so that projection key order survives. An empty body is
// an empty request.
func ParseQueryRequest(body []byte) (QueryRequest, error) {
	var req QueryRequest

	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	doc, err := filter.Decode(body)
	if err != nil {
		return req, err
	}
	if doc == nil {
		return req, nil
	}

	d, ok := doc.(filter.D)
	if !ok {
		return req, fmt.Errorf("request body must be an object")
	}

	for _, e := range d {
		switch e.Key {
		case "filter":
			req.Filter = e.Value
		case "projection":
			req.Projection = e.Value
		default:
			return req, fmt.Errorf("unknown request member %q", e.Key)
		}
	}

	return req, nil
}

func (r QueryRequest) ToModel(table string) models.Query {
	return models.Query{
		Table:      table,
		Filter:     r.Filter,
		Projection: r.Projection,
	}
}
