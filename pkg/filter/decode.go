package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

// Decode reads a JSON or YAML document into D, []any and scalar values.
// Key order is kept, which matters for projections. Empty input decodes
// to nil, the absent document.
func Decode(src []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return fromNode(&root)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		d := make(D, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: document keys must be scalars", k.Line)
			}
			val, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			d = append(d, E{Key: k.Value, Value: val})
		}
		return d, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if err := checkNumber(n, v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node", n.Line)
	}
}

// checkNumber rejects numbers that have no finite float64 value. YAML
// resolves an out of range plain number such as 1e400 to a string, so
// untagged plain scalars are parsed again here.
func checkNumber(n *yaml.Node, v any) error {
	switch x := v.(type) {
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return srvErrors.NewUnsupportedValueTypeError(n.Value)
		}
	case string:
		if n.Style != 0 {
			return nil
		}
		if _, err := strconv.ParseFloat(n.Value, 64); errors.Is(err, strconv.ErrRange) {
			return srvErrors.NewUnsupportedValueTypeError(n.Value)
		}
	}
	return nil
}
