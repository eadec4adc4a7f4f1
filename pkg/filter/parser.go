package filter

import (
	"reflect"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
	"github.com/kubev2v/docsql/pkg/schema"
)

// Option configures Parse, Compile and the projection functions.
type Option func(*options)

type options struct {
	schema *schema.Schema
}

// WithSchema checks field names and value kinds against s.
func WithSchema(s *schema.Schema) Option {
	return func(o *options) {
		o.schema = s
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// parseError carries a typed error through a panic.
type parseError struct {
	err error
}

type parser struct {
	options
}

// Parse classifies node and lowers it into a Node tree.
//
// Parse uses panic/recover internally so recursive-descent methods can
// signal errors without threading (Node, error) through every call.
// parseError panics are caught here and returned as normal errors;
// any other panic (bug) is re-raised.
func Parse(node any, opts ...Option) (n Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(parseError); ok {
				n = nil
				err = pe.err
			} else {
				panic(r)
			}
		}
	}()

	p := parser{options: newOptions(opts)}
	n = p.query(node)

	return n, nil
}

// Compile returns the SQL condition for node, or "" when node is absent.
func Compile(node any, opts ...Option) (string, error) {
	if IsAbsent(node) {
		return "", nil
	}

	n, err := Parse(node, opts...)
	if err != nil {
		return "", err
	}

	return n.Sql(), nil
}

// query parses the top level node.
//
// expression | combinator
func (p *parser) query(node any) Node {
	switch p.classify(node) {
	case ExpressionNodeKind:
		return p.expression(node)
	case MultiOpNodeKind:
		return p.combinator(node)
	default:
		panic(p.fail(srvErrors.NewUnknownQueryShapeError(node)))
	}
}

// combinator parses a logical node.
//
// { ( "$or" | "$and" ) : [ ( expression | combinator )+ ] }
func (p *parser) combinator(node any) *MultiOp {
	key, val := p.entry(node)

	items, ok := toList(val)
	if !ok {
		panic(p.fail(srvErrors.NewMalformedNodeError(node, key+" expects a list")))
	}
	if len(items) == 0 {
		panic(p.fail(srvErrors.NewMalformedNodeError(node, key+" expects a non-empty list")))
	}

	m := &MultiOp{Op: lookupToken(key), Nodes: make([]Node, 0, len(items))}
	for _, item := range items {
		switch p.classify(item) {
		case MultiOpNodeKind:
			m.Nodes = append(m.Nodes, p.combinator(item))
		case ExpressionNodeKind:
			m.Nodes = append(m.Nodes, p.expression(item))
		default:
			panic(p.fail(srvErrors.NewMalformedNodeError(item, "argument of "+key+" is neither a combinator nor an expression")))
		}
	}

	return m
}

// expression parses a field condition.
//
// { FIELD : value | single-operator | "$in"-operator }
func (p *parser) expression(node any) *Expression {
	field, operand := p.entry(node)
	p.field(field)

	if !isDocument(operand) {
		lit := p.literal(operand)
		p.check(field, operand)
		return &Expression{Field: field, Operand: lit}
	}

	switch p.classify(operand) {
	case SingleOpNodeKind:
		op := p.singleOp(operand)
		p.check(field, op.Value.Value)
		return &Expression{Field: field, Operand: op}
	case TableOpNodeKind:
		op := p.tableOp(operand)
		for _, v := range op.Values {
			p.check(field, v.Value)
		}
		return &Expression{Field: field, Operand: op}
	default:
		panic(p.fail(srvErrors.NewMalformedNodeError(operand, "sub-documents are not supported as operands of "+field)))
	}
}

// singleOp parses a comparison operator.
//
// { ( "$lt" | "$lte" | "$gt" | "$gte" | "$ne" ) : value }
func (p *parser) singleOp(node any) *SingleOp {
	key, val := p.entry(node)
	return &SingleOp{Op: lookupToken(key), Value: p.literal(val)}
}

// tableOp parses a membership operator.
//
// { "$in" : [ value* ] }
func (p *parser) tableOp(node any) *TableOp {
	key, val := p.entry(node)

	items, ok := toList(val)
	if !ok {
		panic(p.fail(srvErrors.NewMalformedNodeError(node, key+" expects a list")))
	}

	t := &TableOp{Op: lookupToken(key), Values: make([]*Literal, 0, len(items))}
	for _, item := range items {
		t.Values = append(t.Values, p.literal(item))
	}

	return t
}

// classify panics if node is not a one-key document.
func (p *parser) classify(node any) NodeKind {
	kind, err := Classify(node)
	if err != nil {
		panic(p.fail(err))
	}
	return kind
}

// entry returns the key and value of a one-key document. A nil value is
// a missing operand.
func (p *parser) entry(node any) (string, any) {
	key, val, err := soleEntry(node)
	if err != nil {
		panic(p.fail(err))
	}
	if val == nil {
		panic(p.fail(srvErrors.NewMissingOperandError(key, node)))
	}
	return key, val
}

func (p *parser) literal(v any) *Literal {
	lit, err := newLiteral(v)
	if err != nil {
		panic(p.fail(err))
	}
	return lit
}

// field panics if the schema does not declare name.
func (p *parser) field(name string) {
	if p.schema == nil {
		return
	}
	if _, ok := p.schema.Lookup(name); !ok {
		panic(p.fail(srvErrors.NewUnknownFieldError(name)))
	}
}

// check panics if v does not match the schema kind of field.
func (p *parser) check(field string, v any) {
	if p.schema == nil {
		return
	}
	if err := p.schema.Check(field, v); err != nil {
		panic(p.fail(err))
	}
}

func (p *parser) fail(err error) parseError {
	return parseError{err: err}
}

// toList accepts []any and any other slice or array type.
func toList(v any) ([]any, bool) {
	if isDocument(v) {
		return nil, false
	}
	if items, ok := v.([]any); ok {
		return items, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
