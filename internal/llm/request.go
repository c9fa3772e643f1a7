package llm

import (
	"encoding/json"
	"fmt"
)

// Request is a single text generation call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	JSONResponse bool
	Schema       *Schema
}

// VisionRequest is a generation call that carries images. Exactly one of
// ImageURLs and Images must be set.
type VisionRequest struct {
	Request
	ImageURLs []string
	Images    [][]byte
}

// Result is the parsed reply of a generation call.
//
// Response is a string for plain calls, a map[string]any when JSONResponse is
// set, or a pointer to the schema type when Schema is set.
type Result struct {
	Response     any    `json:"response"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	UserPrompt   string `json:"user_prompt,omitempty"`
}

// Text returns the response as a string, or "" when it is structured.
func (r *Result) Text() string {
	s, _ := r.Response.(string)
	return s
}

// Decode copies the structured response into v.
func (r *Result) Decode(v any) error {
	if s, ok := r.Response.(string); ok {
		if err := json.Unmarshal([]byte(cleanJSON(s)), v); err != nil {
			return &DecodeError{Payload: s, Err: err}
		}
		return nil
	}
	raw, err := json.Marshal(r.Response)
	if err != nil {
		return fmt.Errorf("failed to re-encode response: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &DecodeError{Payload: string(raw), Err: err}
	}
	return nil
}
