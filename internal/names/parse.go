package names

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a name-list document. The top level must be a mapping
// of category to a sequence of names; JSON documents are accepted as well.
// Content rules (blank names, empty categories) are left to Load.
func ParseYAML(data []byte) (map[string][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyCatalog
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNameList, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyCatalog
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of category to names (line %d)", ErrInvalidNameList, root.Line)
	}

	out := make(map[string][]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := resolve(root.Content[i]), resolve(root.Content[i+1])

		if !isString(k) {
			return nil, fmt.Errorf("%w: category key must be a string (line %d)", ErrInvalidNameList, k.Line)
		}
		if _, dup := out[k.Value]; dup {
			return nil, fmt.Errorf("%w: category %q defined twice (line %d)", ErrInvalidNameList, k.Value, k.Line)
		}
		if v.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: category %q must be a list of names (line %d)", ErrInvalidNameList, k.Value, v.Line)
		}

		list := make([]string, 0, len(v.Content))
		for _, item := range v.Content {
			item = resolve(item)
			if !isString(item) {
				return nil, fmt.Errorf("%w: category %q: name must be a string (line %d)", ErrInvalidNameList, k.Value, item.Line)
			}
			list = append(list, item.Value)
		}
		out[k.Value] = list
	}

	return out, nil
}

// resolve follows alias nodes (*name) to the node they reference.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// isString reports whether n is a non-null scalar. Scalars that YAML would
// resolve to numbers or booleans are taken verbatim as text.
func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() != "!!null"
}
