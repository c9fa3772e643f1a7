package llm

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidModel     = errors.New("invalid model")
	ErrInvalidFidelity  = errors.New("fidelity must be 'low' or 'high'")
	ErrInvalidParameter = errors.New("invalid generation parameter")
	ErrEmptyPrompt      = errors.New("user prompt is required")
	ErrMissingImages    = errors.New("either image URLs or inline images are required")
	ErrAmbiguousImages  = errors.New("image URLs and inline images are mutually exclusive")
	ErrEmptyResponse    = errors.New("provider returned no content")
)

// DecodeError reports a provider reply that could not be decoded as JSON.
type DecodeError struct {
	Payload string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
