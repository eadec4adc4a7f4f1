package filter

import (
	"strings"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

const (
	allColumns = "*"
	// noColumns keeps the statement valid when every field is excluded.
	// The query then returns one NULL per row, which is almost always a
	// caller mistake but is passed through rather than rejected.
	noColumns = "NULL"
)

// ProjectionColumns returns the columns selected by projection.
//
// An absent projection selects "*". Otherwise every key whose flag is true
// or a non-zero number is kept, in document order for D and sorted order
// for maps. When nothing is kept the single column "NULL" is returned.
func ProjectionColumns(projection any, opts ...Option) ([]string, error) {
	if IsAbsent(projection) {
		return []string{allColumns}, nil
	}

	d, ok := entries(projection)
	if !ok {
		return nil, srvErrors.NewMalformedNodeError(projection, "projection is not an object")
	}

	o := newOptions(opts)

	columns := make([]string, 0, len(d))
	for _, e := range d {
		if o.schema != nil {
			if _, found := o.schema.Lookup(e.Key); !found {
				return nil, srvErrors.NewUnknownFieldError(e.Key)
			}
		}

		include, err := truthy(e.Value)
		if err != nil {
			return nil, err
		}
		if include {
			columns = append(columns, e.Key)
		}
	}

	if len(columns) == 0 {
		return []string{noColumns}, nil
	}

	return columns, nil
}

// CompileProjection returns the column list of a SELECT statement.
func CompileProjection(projection any, opts ...Option) (string, error) {
	columns, err := ProjectionColumns(projection, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(columns, ", "), nil
}
