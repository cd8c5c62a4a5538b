package specdoc

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// decodeYAMLNode converts a parsed YAML node tree into the generic tree
// shape, preserving mapping key order via the node's Content slice
// rather than yaml's own map[string]any unmarshaling (which loses
// order the same way encoding/json's does).
func decodeYAMLNode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// Empty document.
		return nil, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}
	return nodeToValue(root)
}

func nodeToValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := NewOMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				key = keyNode.Value
			}
			val, err := nodeToValue(valNode)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := nodeToValue(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return normalizeScalar(v), nil
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %v", n.Kind)
	}
}

// normalizeScalar narrows integral scalar types to float64 so AsNumber
// callers throughout the engine don't need to special-case int vs int64
// vs float64 depending on how a given YAML value was spelled.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v
	}
}
