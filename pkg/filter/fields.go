package filter

// Scalar is the set of Go types a field can be compared against.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Field is a typed field reference. The type parameter pins the kind of
// value the field is compared with, so mismatches fail to compile.
//
// Usage:
//
//	var (
//		Name = filter.Field[string]("name")
//		Age  = filter.Field[int]("age")
//	)
//	f := filter.Or(Age.Eq(1), filter.And(Name.Eq("john"), Age.Gt(18)))
type Field[T Scalar] string

// Name returns the field name.
func (f Field[T]) Name() string { return string(f) }

// Eq returns {field: v}.
func (f Field[T]) Eq(v T) D {
	return D{{Key: string(f), Value: v}}
}

// Ne returns {field: {$ne: v}}.
func (f Field[T]) Ne(v T) D { return f.op(notEqual, v) }

// Lt returns {field: {$lt: v}}.
func (f Field[T]) Lt(v T) D { return f.op(less, v) }

// Lte returns {field: {$lte: v}}.
func (f Field[T]) Lte(v T) D { return f.op(lte, v) }

// Gt returns {field: {$gt: v}}.
func (f Field[T]) Gt(v T) D { return f.op(greater, v) }

// Gte returns {field: {$gte: v}}.
func (f Field[T]) Gte(v T) D { return f.op(gte, v) }

// In returns {field: {$in: [vs...]}}.
func (f Field[T]) In(vs ...T) D {
	values := make([]any, 0, len(vs))
	for _, v := range vs {
		values = append(values, v)
	}
	return D{{Key: string(f), Value: D{{Key: in.String(), Value: values}}}}
}

func (f Field[T]) op(tok Token, v T) D {
	return D{{Key: string(f), Value: D{{Key: tok.String(), Value: v}}}}
}

// Or returns {$or: [nodes...]}.
func Or(nodes ...D) D {
	return combine(or, nodes)
}

// And returns {$and: [nodes...]}.
func And(nodes ...D) D {
	return combine(and, nodes)
}

func combine(tok Token, nodes []D) D {
	items := make([]any, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, n)
	}
	return D{{Key: tok.String(), Value: items}}
}

// Include returns a projection selecting names in order.
func Include(names ...string) D {
	d := make(D, 0, len(names))
	for _, name := range names {
		d = append(d, E{Key: name, Value: 1})
	}
	return d
}
