// yaml.go decodes config-file pattern entries.
//
// Declarative tag lists in config.yaml mix bare strings and structured
// {id, type, label} mappings. Decoding happens here, once, at the boundary;
// the rest of the system only ever sees the tagged union.

package pattern

import "gopkg.in/yaml.v3"

// FromYAML decodes one pattern entry from a YAML node. Unknown node shapes
// decode to a non-matching literal so a single bad entry cannot poison the
// rest of the pattern list.
func FromYAML(node *yaml.Node) Pattern {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err == nil {
			return Parse(s)
		}
	case yaml.MappingNode:
		var obj struct {
			ID    string `yaml:"id"`
			Type  string `yaml:"type"`
			Label string `yaml:"label"`
		}
		if err := node.Decode(&obj); err == nil {
			return Pattern{Kind: KindFields, ID: obj.ID, Type: obj.Type, Label: obj.Label}
		}
	}
	return Pattern{Kind: KindLiteral}
}

// ListFromYAML decodes a sequence of pattern entries.
func ListFromYAML(nodes []yaml.Node) []Pattern {
	patterns := make([]Pattern, 0, len(nodes))
	for i := range nodes {
		patterns = append(patterns, FromYAML(&nodes[i]))
	}
	return patterns
}
