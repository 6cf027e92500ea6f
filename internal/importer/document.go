package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"asistencia/internal/domain"
)

// entryList is the wrapped document form: {"entries": [...]}.
type entryList struct {
	Entries []domain.Entry `json:"entries" yaml:"entries"`
}

// parseYAML accepts either a top-level sequence of entries or a mapping with
// an "entries" key.
func parseYAML(r io.Reader) ([]record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, malformed(domain.ImportFormatYAML, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var entries []domain.Entry
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&entries); err != nil {
			return nil, malformed(domain.ImportFormatYAML, err)
		}
	case yaml.MappingNode:
		var list entryList
		if err := root.Decode(&list); err != nil {
			return nil, malformed(domain.ImportFormatYAML, err)
		}
		entries = list.Entries
	default:
		return nil, malformed(domain.ImportFormatYAML, errors.New("expected a list of entries"))
	}
	return sequential(entries), nil
}

// parseJSON accepts the same two shapes as parseYAML.
func parseJSON(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed(domain.ImportFormatJSON, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var entries []domain.Entry
	switch data[0] {
	case '[':
		err = json.Unmarshal(data, &entries)
	case '{':
		var list entryList
		err = json.Unmarshal(data, &list)
		entries = list.Entries
	default:
		err = fmt.Errorf("unexpected %q at start of document", data[0])
	}
	if err != nil {
		return nil, malformed(domain.ImportFormatJSON, err)
	}
	return sequential(entries), nil
}
