package schema

import (
	"fmt"
	"strings"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

// operatorPrefix marks keys that the filter grammar reserves for operators.
const operatorPrefix = "$"

// Field is a named column of a table.
type Field struct {
	Name string
	Kind Kind
}

// Schema maps field names to the scalar kind they accept.
// It is immutable once built.
type Schema struct {
	fields []Field
	index  map[string]Kind
}

// New validates the fields and builds a Schema.
// A field whose name starts with '$' would be classified as an operator by
// the filter grammar, so it is rejected with a ReservedFieldError.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]Kind, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field name cannot be empty")
		}
		if strings.HasPrefix(f.Name, operatorPrefix) {
			return nil, srvErrors.NewReservedFieldError(f.Name)
		}
		if f.Kind == Unknown {
			return nil, fmt.Errorf("field %q has no kind", f.Name)
		}
		if _, found := s.index[f.Name]; found {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		s.fields = append(s.fields, f)
		s.index[f.Name] = f.Kind
	}

	return s, nil
}

// MustNew is like New but panics on error. Meant for package-level schemas.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the kind declared for name.
func (s *Schema) Lookup(name string) (Kind, bool) {
	k, ok := s.index[name]
	return k, ok
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Check validates that value may be compared against field.
func (s *Schema) Check(field string, value any) error {
	kind, ok := s.Lookup(field)
	if !ok {
		return srvErrors.NewUnknownFieldError(field)
	}
	if !kind.Accepts(value) {
		return srvErrors.NewFieldKindMismatchError(field, kind.String(), value)
	}
	return nil
}
