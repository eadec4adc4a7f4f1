package translator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/docsql/pkg/filter"
)

// Select returns the statement for filter and projection with every value
// bound as a placeholder argument and every identifier quoted. Find renders
// the same query as plain text; Select is the form that gets executed.
func (t *Translator) Select(query any, projection any) (string, []any, error) {
	opts := t.options()

	columns, err := filter.ProjectionColumns(projection, opts...)
	if err != nil {
		return "", nil, fmt.Errorf("projection: %w", err)
	}

	builder := sq.Select(quoteColumns(columns)...).From(quoteIdent(t.table))
	if !filter.IsAbsent(query) {
		node, err := filter.Parse(query, opts...)
		if err != nil {
			return "", nil, fmt.Errorf("filter: %w", err)
		}
		where, err := Sqlizer(node)
		if err != nil {
			return "", nil, fmt.Errorf("filter: %w", err)
		}
		builder = builder.Where(where)
	}

	return builder.ToSql()
}

// Sqlizer converts a parsed filter into squirrel expressions with bound
// arguments.
func Sqlizer(node filter.Node) (sq.Sqlizer, error) {
	switch n := node.(type) {
	case *filter.Expression:
		return expressionSqlizer(n)
	case *filter.MultiOp:
		parts := make([]sq.Sqlizer, 0, len(n.Nodes))
		for _, child := range n.Nodes {
			part, err := Sqlizer(child)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		}
		if n.Op.Sql() == "OR" {
			return sq.Or(parts), nil
		}
		return sq.And(parts), nil
	default:
		return nil, fmt.Errorf("cannot bind %s node %s", node.Kind(), node)
	}
}

func expressionSqlizer(e *filter.Expression) (sq.Sqlizer, error) {
	column := quoteIdent(e.Field)

	switch op := e.Operand.(type) {
	case *filter.Literal:
		return sq.Eq{column: bindValue(op.Value)}, nil
	case *filter.TableOp:
		values := make([]any, 0, len(op.Values))
		for _, v := range op.Values {
			values = append(values, bindValue(v.Value))
		}
		// squirrel renders an empty list as (1=0)
		return sq.Eq{column: values}, nil
	case *filter.SingleOp:
		v := bindValue(op.Value.Value)
		switch op.Op.Sql() {
		case "<":
			return sq.Lt{column: v}, nil
		case "<=":
			return sq.LtOrEq{column: v}, nil
		case ">":
			return sq.Gt{column: v}, nil
		case ">=":
			return sq.GtOrEq{column: v}, nil
		case "<>":
			return sq.NotEq{column: v}, nil
		}
		return nil, fmt.Errorf("cannot bind operator %s", op.Op)
	default:
		return nil, fmt.Errorf("cannot bind operand %s", e.Operand)
	}
}

// bindValue reduces a scalar to the driver's base types.
func bindValue(v any) any {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, _ := n.Float64()
		return f
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return float64(u)
		}
		return int64(u)
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return v
	}
}

func quoteColumns(columns []string) []string {
	if len(columns) == 1 && (columns[0] == "*" || columns[0] == "NULL") {
		return columns
	}
	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		quoted = append(quoted, quoteIdent(c))
	}
	return quoted
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
