package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// FactsTraverser reads raw definitions produced by an external parser.
//
// A facts file holds a JSON array of raw definitions, or a single raw
// definition object.
type FactsTraverser struct{}

// NewFactsTraverser creates a new facts traverser.
func NewFactsTraverser() *FactsTraverser {
	return &FactsTraverser{}
}

// Language returns the language this traverser handles.
func (f *FactsTraverser) Language() string {
	return "facts"
}

// Extensions returns the facts file extension.
func (f *FactsTraverser) Extensions() []string {
	return []string{".facts.json"}
}

// Traverse decodes the raw definitions stored in the file.
func (f *FactsTraverser) Traverse(_ context.Context, file SourceFile) ([]RawDefinition, error) {
	content := bytes.TrimSpace(file.Content)
	if len(content) == 0 {
		return nil, nil
	}

	var definitions []RawDefinition
	if content[0] == '{' {
		var single RawDefinition
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("decoding facts in %s: %w", file.RelPath, err)
		}
		definitions = append(definitions, single)
	} else if err := json.Unmarshal(content, &definitions); err != nil {
		return nil, fmt.Errorf("decoding facts in %s: %w", file.RelPath, err)
	}

	for i, d := range definitions {
		switch d.Kind {
		case KindClass, KindInterface:
		case "":
			definitions[i].Kind = KindClass
		default:
			return nil, fmt.Errorf("decoding facts in %s: unknown kind %q for %s", file.RelPath, d.Kind, d.Name)
		}
	}
	return definitions, nil
}
