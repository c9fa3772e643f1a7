package services

import (
	"context"
	"fmt"
	"time"

	"resumeats/ats-analyzer/internal/llm"
	"resumeats/ats-analyzer/internal/llm/gemini"
	"resumeats/ats-analyzer/internal/llm/openai"
)

// NewLLMProvider returns the provider serving the model's family. Each call
// builds its own client, owned by the generator it is handed to.
func NewLLMProvider(ctx context.Context, model llm.Model, apiKey string, timeout time.Duration) (llm.Provider, error) {
	switch model.Family() {
	case llm.FamilyGemini:
		provider, err := gemini.NewProvider(ctx, apiKey, timeout)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case llm.FamilyOpenAI:
		provider, err := openai.NewProvider(openai.Config{APIKey: apiKey, Timeout: timeout})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("no provider for model %s", model)
	}
}
