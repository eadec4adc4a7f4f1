package filter

import (
	"fmt"
	"slices"
	"strings"
)

// E is a single key/value entry of an ordered document.
type E struct {
	Key   string
	Value any
}

// D is an ordered document. Filter nodes are documents with exactly one
// entry; projections use the order of D to order the selected columns.
type D []E

// M is an unordered document. It is accepted wherever D is, projections
// built from M select columns in sorted key order.
type M map[string]any

func (d D) String() string {
	parts := make([]string, 0, len(d))
	for _, e := range d {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Key, formatAny(e.Value)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatAny(v any) string {
	switch x := v.(type) {
	case D:
		return x.String()
	case string:
		return fmt.Sprintf("%q", x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, formatAny(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// isDocument reports whether v is one of the accepted object shapes.
func isDocument(v any) bool {
	switch v.(type) {
	case D, M, map[string]any:
		return true
	default:
		return false
	}
}

// IsAbsent reports whether v stands for "no document at all".
func IsAbsent(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case D:
		return x == nil
	case M:
		return x == nil
	case map[string]any:
		return x == nil
	default:
		return false
	}
}

// entries returns the entries of a document. Unordered maps are returned
// in sorted key order so that output is deterministic.
func entries(v any) (D, bool) {
	switch x := v.(type) {
	case D:
		return x, true
	case M:
		return sortedEntries(x), true
	case map[string]any:
		return sortedEntries(x), true
	default:
		return nil, false
	}
}

func sortedEntries(m map[string]any) D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	d := make(D, 0, len(keys))
	for _, k := range keys {
		d = append(d, E{Key: k, Value: m[k]})
	}
	return d
}
