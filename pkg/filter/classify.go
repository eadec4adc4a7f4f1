package filter

import (
	"slices"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

// NodeKind is one of the four productions of the filter grammar.
type NodeKind int

const (
	InvalidNodeKind NodeKind = iota
	ExpressionNodeKind
	SingleOpNodeKind
	TableOpNodeKind
	MultiOpNodeKind
)

func (k NodeKind) String() string {
	switch k {
	case ExpressionNodeKind:
		return "expression"
	case SingleOpNodeKind:
		return "singleArgumentOperator"
	case TableOpNodeKind:
		return "tableArgumentOperator"
	case MultiOpNodeKind:
		return "multiArgumentOperator"
	default:
		return "invalid"
	}
}

// Classify determines which grammar production node belongs to.
// node must be a document (D, M or map[string]any) with exactly one key,
// otherwise a MalformedNodeError is returned.
func Classify(node any) (NodeKind, error) {
	key, _, err := soleEntry(node)
	if err != nil {
		return InvalidNodeKind, err
	}
	return classifyKey(key), nil
}

// classifyKey applies the priority order: combinators, single-argument
// operators, $in, and finally field names.
func classifyKey(key string) NodeKind {
	tok := lookupToken(key)
	switch {
	case slices.Contains(multiArgumentTokens, tok):
		return MultiOpNodeKind
	case slices.Contains(singleArgumentTokens, tok):
		return SingleOpNodeKind
	case slices.Contains(tableArgumentTokens, tok):
		return TableOpNodeKind
	default:
		return ExpressionNodeKind
	}
}

// soleEntry returns the only key and value of a one-key document.
func soleEntry(node any) (string, any, error) {
	if !isDocument(node) {
		return "", nil, srvErrors.NewMalformedNodeError(node, "node is not an object")
	}

	d, _ := entries(node)
	if len(d) != 1 {
		return "", nil, srvErrors.NewMalformedNodeError(node, "node should have exactly one key")
	}

	return d[0].Key, d[0].Value, nil
}
