package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

// FormatValue renders a scalar as SQL literal text.
//
// Strings are quoted but embedded quotes are left as they are. Numbers use
// their shortest decimal form and booleans become TRUE or FALSE. Anything
// else fails with an UnsupportedValueTypeError.
func FormatValue(v any) (string, error) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return "", srvErrors.NewUnsupportedValueTypeError(v)
		}
		return n.String(), nil
	}

	if v == nil {
		return "", srvErrors.NewUnsupportedValueTypeError(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return fmt.Sprintf("'%s'", rv.String()), nil
	case reflect.Bool:
		if rv.Bool() {
			return "TRUE", nil
		}
		return "FALSE", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", srvErrors.NewUnsupportedValueTypeError(v)
		}
		return strconv.FormatFloat(f, 'f', -1, rv.Type().Bits()), nil
	default:
		return "", srvErrors.NewUnsupportedValueTypeError(v)
	}
}

// truthy evaluates a projection flag. Zero numbers and false exclude the
// field, nil excludes it as well.
func truthy(v any) (bool, error) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return false, srvErrors.NewUnsupportedValueTypeError(v)
		}
		return f != 0, nil
	}

	if v == nil {
		return false, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f), nil
	default:
		return false, srvErrors.NewUnsupportedValueTypeError(v)
	}
}
