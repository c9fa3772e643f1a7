package llm

import (
	"context"
)

// Role of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Format selects how the provider should shape its reply.
type Format int

const (
	FormatText Format = iota
	FormatJSONObject
	FormatJSONSchema
)

// ImagePart references an image by URL. Inline images are sent as data URLs.
type ImagePart struct {
	URL    string
	Detail Fidelity
}

// Message is a provider-neutral chat message.
type Message struct {
	Role   Role
	Text   string
	Images []ImagePart
}

// Payload is the fully assembled request handed to a Provider.
type Payload struct {
	Model            Model
	Messages         []Message
	Temperature      float32
	Seed             int
	TopP             *float32
	FrequencyPenalty *float32
	PresencePenalty  *float32
	MaxTokens        *int
	Format           Format
	Schema           *Schema
}

// Completion is the raw provider reply, normalised to the fields callers need.
type Completion struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int

	// Native holds the provider SDK response for callers that need more.
	Native any
}

// Provider is the capability boundary to an LLM vendor.
type Provider interface {
	Complete(ctx context.Context, payload *Payload) (*Completion, error)
}
