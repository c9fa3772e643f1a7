// Package gemini implements llm.Provider with the Google Gen AI SDK.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"resumeats/ats-analyzer/internal/llm"
)

type Provider struct {
	client  *genai.Client
	timeout time.Duration
}

func NewProvider(ctx context.Context, apiKey string, timeout time.Duration) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{client: client, timeout: timeout}, nil
}

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, payload *llm.Payload) (*llm.Completion, error) {
	contents, config, err := BuildRequest(payload)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Models.GenerateContent(ctx, payload.Model.String(), contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return nil, llm.ErrEmptyResponse
	}

	completion := &llm.Completion{
		Content: text,
		Model:   resp.ModelVersion,
		Native:  resp,
	}
	if resp.UsageMetadata != nil {
		completion.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		completion.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return completion, nil
}

// BuildRequest maps a provider-neutral payload onto GenerateContent arguments.
func BuildRequest(payload *llm.Payload) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	temperature := payload.Temperature
	seed := int32(payload.Seed)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		Seed:             &seed,
		TopP:             payload.TopP,
		FrequencyPenalty: payload.FrequencyPenalty,
		PresencePenalty:  payload.PresencePenalty,
	}
	if payload.MaxTokens != nil {
		config.MaxOutputTokens = int32(*payload.MaxTokens)
	}
	if payload.Format != llm.FormatText {
		config.ResponseMIMEType = "application/json"
	}
	if payload.Format == llm.FormatJSONSchema {
		definition, err := payload.Schema.Definition()
		if err != nil {
			return nil, nil, err
		}
		config.ResponseJsonSchema = definition
	}

	var contents []*genai.Content
	for _, m := range payload.Messages {
		if m.Role == llm.RoleSystem {
			config.SystemInstruction = genai.NewContentFromText(m.Text, genai.RoleUser)
			continue
		}

		parts := make([]*genai.Part, 0, len(m.Images)+1)
		if m.Text != "" {
			parts = append(parts, genai.NewPartFromText(m.Text))
		}
		for _, img := range m.Images {
			part, err := imagePart(img.URL)
			if err != nil {
				return nil, nil, err
			}
			parts = append(parts, part)
			config.MediaResolution = mediaResolution(img.Detail)
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return contents, config, nil
}

func imagePart(url string) (*genai.Part, error) {
	if !strings.HasPrefix(url, "data:") {
		return genai.NewPartFromURI(url, mimeFromExtension(url)), nil
	}

	// data:<mime>;base64,<payload>
	header, encoded, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	mimeType := strings.TrimSuffix(header, ";base64")
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode inline image: %w", err)
	}
	return genai.NewPartFromBytes(data, mimeType), nil
}

func mimeFromExtension(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

func mediaResolution(f llm.Fidelity) genai.MediaResolution {
	if f == llm.FidelityHigh {
		return genai.MediaResolutionHigh
	}
	return genai.MediaResolutionLow
}

var _ llm.Provider = (*Provider)(nil)
