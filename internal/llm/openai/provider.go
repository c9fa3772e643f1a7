// Package openai implements llm.Provider on top of the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"resumeats/ats-analyzer/internal/llm"
)

// Provider is an llm.Provider backed by go-openai.
type Provider struct {
	client  *openai.Client
	timeout time.Duration
}

// Config holds the connection settings for the provider.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewProvider creates a provider. The underlying client is owned by the
// provider and reused for every request.
func NewProvider(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &Provider{
		client:  openai.NewClientWithConfig(config),
		timeout: cfg.Timeout,
	}, nil
}

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, payload *llm.Payload) (*llm.Completion, error) {
	req, err := BuildRequest(payload)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	return &llm.Completion{
		Content:          resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		Native:           resp,
	}, nil
}

// BuildRequest maps a provider-neutral payload onto a chat completion request.
func BuildRequest(payload *llm.Payload) (openai.ChatCompletionRequest, error) {
	seed := payload.Seed
	req := openai.ChatCompletionRequest{
		Model:    payload.Model.String(),
		Messages: make([]openai.ChatCompletionMessage, 0, len(payload.Messages)),
		Seed:     &seed,
	}
	if payload.Model.Reasoning() {
		if payload.MaxTokens != nil {
			req.MaxCompletionTokens = *payload.MaxTokens
		}
	} else {
		req.Temperature = payload.Temperature
		if payload.TopP != nil {
			req.TopP = *payload.TopP
		}
		if payload.FrequencyPenalty != nil {
			req.FrequencyPenalty = *payload.FrequencyPenalty
		}
		if payload.PresencePenalty != nil {
			req.PresencePenalty = *payload.PresencePenalty
		}
		if payload.MaxTokens != nil {
			req.MaxTokens = *payload.MaxTokens
		}
	}

	switch payload.Format {
	case llm.FormatJSONObject:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	case llm.FormatJSONSchema:
		definition, err := payload.Schema.Definition()
		if err != nil {
			return req, err
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   payload.Schema.Name,
				Schema: definition,
				Strict: true,
			},
		}
	}

	for _, m := range payload.Messages {
		req.Messages = append(req.Messages, toMessage(m))
	}
	return req, nil
}

func toMessage(m llm.Message) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	if m.Role == llm.RoleSystem {
		role = openai.ChatMessageRoleSystem
	}
	if len(m.Images) == 0 {
		return openai.ChatCompletionMessage{Role: role, Content: m.Text}
	}

	parts := make([]openai.ChatMessagePart, 0, len(m.Images)+1)
	if m.Text != "" {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: m.Text,
		})
	}
	for _, img := range m.Images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    img.URL,
				Detail: imageDetail(img.Detail),
			},
		})
	}
	return openai.ChatCompletionMessage{Role: role, MultiContent: parts}
}

func imageDetail(f llm.Fidelity) openai.ImageURLDetail {
	if f == llm.FidelityHigh {
		return openai.ImageURLDetailHigh
	}
	return openai.ImageURLDetailLow
}

var _ llm.Provider = (*Provider)(nil)
