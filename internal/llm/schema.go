package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Schema constrains a reply to the shape of a Go type.
type Schema struct {
	Name   string
	sample any
	newFn  func() any
}

// SchemaFor builds a schema from T. Parsed results hold a *T.
func SchemaFor[T any](name string) *Schema {
	var zero T
	return &Schema{
		Name:   name,
		sample: zero,
		newFn:  func() any { return new(T) },
	}
}

// Sample returns a zero value of the schema type for schema generation.
func (s *Schema) Sample() any {
	return s.sample
}

// Definition renders the schema type as a JSON schema document. Every
// field is required and no additional properties are allowed.
func (s *Schema) Definition() (*jsonschema.Definition, error) {
	definition, err := jsonschema.GenerateSchemaForType(s.sample)
	if err != nil {
		return nil, fmt.Errorf("generate schema %q: %w", s.Name, err)
	}
	return definition, nil
}

func (s *Schema) decode(content string) (any, error) {
	target := s.newFn()
	if err := json.Unmarshal([]byte(cleanJSON(content)), target); err != nil {
		return nil, &DecodeError{Payload: content, Err: err}
	}
	return target, nil
}

func decodeObject(content string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(cleanJSON(content)), &out); err != nil {
		return nil, &DecodeError{Payload: content, Err: err}
	}
	return out, nil
}

// cleanJSON strips a surrounding markdown code fence some models add even in
// JSON mode.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}
