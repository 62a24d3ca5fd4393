package mapping

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// PropertyList is a list of property names. In YAML it is written either as
// a sequence or as one scalar holding comma-separated names:
//
//	ignore: draft
//	ignore: draft, notes
//	ignore: [draft, notes]
type PropertyList []string

// UnmarshalYAML accepts a scalar or a sequence of scalars. Names are
// trimmed and blank entries dropped.
func (l *PropertyList) UnmarshalYAML(node *yaml.Node) error {
	var raw []string

	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		raw = strings.Split(s, ",")
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: expected a property name or a list of names", node.Line)
	}

	out := PropertyList{}

	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}

	*l = out

	return nil
}

// MarshalYAML writes a single name as a scalar and longer lists in flow
// style.
func (l PropertyList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, name := range l {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name})
	}

	return seq, nil
}

// Contains reports whether the list names the property.
func (l PropertyList) Contains(name string) bool {
	return slices.Contains(l, name)
}
