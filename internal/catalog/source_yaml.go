package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// readYAML accepts either a top-level list of records or a document with
// a "records" list.
func readYAML(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, ErrEmptyCatalog
	}

	var docs []map[string]string
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&docs)
	case yaml.MappingNode:
		var wrapped struct {
			Records []map[string]string `yaml:"records"`
		}
		err = root.Decode(&wrapped)
		docs = wrapped.Records
	default:
		return nil, fmt.Errorf("%s: expected a list of records", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return fromFields(docs)
}
