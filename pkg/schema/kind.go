package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Kind is the scalar kind a field accepts.
type Kind int

const (
	Unknown Kind = iota
	String
	Number
	Boolean
)

var kindNames = map[Kind]string{
	Unknown: "unknown",
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Sql returns the column type used when a table is materialized.
func (k Kind) Sql() string {
	switch k {
	case String:
		return "VARCHAR"
	case Number:
		return "DOUBLE"
	case Boolean:
		return "BOOLEAN"
	default:
		return ""
	}
}

// ParseKind is case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if k != Unknown && strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return Unknown, fmt.Errorf("unknown field kind %q", s)
}

// KindOf returns the kind of a Go value, or Unknown.
func KindOf(v any) Kind {
	if _, ok := v.(json.Number); ok {
		return Number
	}
	if v == nil {
		return Unknown
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number
	default:
		return Unknown
	}
}

// Accepts reports whether v may be compared against a field of kind k.
func (k Kind) Accepts(v any) bool {
	return k != Unknown && KindOf(v) == k
}
