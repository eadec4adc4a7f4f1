package filter

import (
	"fmt"
	"strings"
)

// Node is a classified filter node.
type Node interface {
	Kind() NodeKind
	// String returns a debug representation in document notation.
	String() string
	// Sql returns the SQL text of the node.
	Sql() string
	// Doc converts the node back to its document representation.
	Doc() D
}

// Operand is the right-hand side of an Expression.
type Operand interface {
	String() string
	Sql() string
	value() any
}

// Literal is a scalar value already rendered as SQL.
type Literal struct {
	Value any
	sql   string
}

func newLiteral(v any) (*Literal, error) {
	sql, err := FormatValue(v)
	if err != nil {
		return nil, err
	}
	return &Literal{Value: v, sql: sql}, nil
}

func (l *Literal) String() string {
	return formatAny(l.Value)
}

// Sql of a bare literal operand is an equality.
func (l *Literal) Sql() string {
	return "= " + l.sql
}

func (l *Literal) value() any {
	return l.Value
}

// Expression is {field: operand}.
type Expression struct {
	Field   string
	Operand Operand
}

func (e *Expression) Kind() NodeKind {
	return ExpressionNodeKind
}

func (e *Expression) String() string {
	return fmt.Sprintf("{%s: %s}", e.Field, e.Operand.String())
}

func (e *Expression) Sql() string {
	// x IN () is rejected by most engines; an empty list never matches.
	if t, ok := e.Operand.(*TableOp); ok && len(t.Values) == 0 {
		return "FALSE"
	}
	return e.Field + " " + e.Operand.Sql()
}

func (e *Expression) Doc() D {
	return D{{Key: e.Field, Value: e.Operand.value()}}
}

// SingleOp is {$lt|$lte|$gt|$gte|$ne: value}.
type SingleOp struct {
	Op    Token
	Value *Literal
}

func (s *SingleOp) Kind() NodeKind {
	return SingleOpNodeKind
}

func (s *SingleOp) String() string {
	return fmt.Sprintf("{%s: %s}", s.Op, s.Value.String())
}

func (s *SingleOp) Sql() string {
	return s.Op.Sql() + " " + s.Value.sql
}

func (s *SingleOp) Doc() D {
	return D{{Key: s.Op.String(), Value: s.Value.Value}}
}

func (s *SingleOp) value() any {
	return s.Doc()
}

// TableOp is {$in: [values]}.
type TableOp struct {
	Op     Token
	Values []*Literal
}

func (t *TableOp) Kind() NodeKind {
	return TableOpNodeKind
}

func (t *TableOp) String() string {
	parts := make([]string, 0, len(t.Values))
	for _, v := range t.Values {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("{%s: [%s]}", t.Op, strings.Join(parts, ", "))
}

func (t *TableOp) Sql() string {
	parts := make([]string, 0, len(t.Values))
	for _, v := range t.Values {
		parts = append(parts, v.sql)
	}
	return fmt.Sprintf("%s (%s)", t.Op.Sql(), strings.Join(parts, ", "))
}

func (t *TableOp) Doc() D {
	values := make([]any, 0, len(t.Values))
	for _, v := range t.Values {
		values = append(values, v.Value)
	}
	return D{{Key: t.Op.String(), Value: values}}
}

func (t *TableOp) value() any {
	return t.Doc()
}

// MultiOp is {$or|$and: [nodes]}. Nodes are Expressions or MultiOps.
type MultiOp struct {
	Op    Token
	Nodes []Node
}

func (m *MultiOp) Kind() NodeKind {
	return MultiOpNodeKind
}

func (m *MultiOp) String() string {
	parts := make([]string, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		parts = append(parts, n.String())
	}
	return fmt.Sprintf("{%s: [%s]}", m.Op, strings.Join(parts, ", "))
}

// Sql joins the children with the combinator keyword. Nested combinators
// are wrapped in parentheses, expressions are not.
func (m *MultiOp) Sql() string {
	parts := make([]string, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		if n.Kind() == MultiOpNodeKind {
			parts = append(parts, "("+n.Sql()+")")
			continue
		}
		parts = append(parts, n.Sql())
	}
	return strings.Join(parts, " "+m.Op.Sql()+" ")
}

func (m *MultiOp) Doc() D {
	nodes := make([]any, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		nodes = append(nodes, n.Doc())
	}
	return D{{Key: m.Op.String(), Value: nodes}}
}
