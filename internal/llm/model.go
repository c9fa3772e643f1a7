package llm

import (
	"fmt"
	"strings"
)

// Model identifies an LLM model from the fixed allow-list.
type Model string

const (
	GPT4oMini     Model = "gpt-4o-mini"
	GPTo3Mini     Model = "o3-mini"
	GPT35Turbo    Model = "gpt-3.5-turbo"
	GPT4o         Model = "gpt-4o"
	GPT41         Model = "gpt-4.1"
	GPT41Nano     Model = "gpt-4.1-nano"
	Gemini25Flash Model = "gemini-2.5-flash"
	Gemini25Pro   Model = "gemini-2.5-pro"
	Gemini20Flash Model = "gemini-2.0-flash"
)

// Family groups models by the provider that serves them.
type Family string

const (
	FamilyOpenAI Family = "openai"
	FamilyGemini Family = "gemini"
)

var allowedModels = []Model{
	GPT4oMini,
	GPTo3Mini,
	GPT35Turbo,
	GPT4o,
	GPT41,
	GPT41Nano,
	Gemini25Flash,
	Gemini25Pro,
	Gemini20Flash,
}

// Models returns the allow-list in declaration order.
func Models() []Model {
	out := make([]Model, len(allowedModels))
	copy(out, allowedModels)
	return out
}

// Valid reports whether m is on the allow-list.
func (m Model) Valid() bool {
	for _, allowed := range allowedModels {
		if m == allowed {
			return true
		}
	}
	return false
}

// Family returns the provider family of the model.
func (m Model) Family() Family {
	if strings.HasPrefix(string(m), "gemini") {
		return FamilyGemini
	}
	return FamilyOpenAI
}

// Reasoning reports whether m is an o-series reasoning model. Those take
// max_completion_tokens and reject sampling parameters.
func (m Model) Reasoning() bool {
	return m.Family() == FamilyOpenAI && strings.HasPrefix(string(m), "o")
}

func (m Model) String() string {
	return string(m)
}

// ParseModel validates a model identifier against the allow-list.
func ParseModel(raw string) (Model, error) {
	m := Model(strings.TrimSpace(raw))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidModel, raw)
	}
	return m, nil
}
