package cmd

import (
	"bytes"
	"fmt"
	"os"

	"bookdesk/internal/core/application/usecases/commands"

	"gopkg.in/yaml.v3"
)

type rosterFile struct {
	Students []commands.StudentRecord `yaml:"students"`
}

// ReadRoster parses a YAML roster. The file is either a list of records or a
// mapping with a "students" list.
func ReadRoster(path string) ([]commands.StudentRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRoster(raw)
}

func parseRoster(raw []byte) ([]commands.StudentRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	if doc.Content[0].Kind == yaml.SequenceNode {
		var records []commands.StudentRecord
		if err := doc.Content[0].Decode(&records); err != nil {
			return nil, fmt.Errorf("parse roster: %w", err)
		}
		return records, nil
	}

	var file rosterFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return file.Students, nil
}
