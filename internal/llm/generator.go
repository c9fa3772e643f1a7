package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Generator produces parsed results for text requests.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// TextGenerator dispatches text-only requests to a Provider. It keeps no
// per-call state and is safe for concurrent use.
type TextGenerator struct {
	config   TextConfig
	provider Provider
	logger   *slog.Logger
}

// NewTextGenerator returns a generator bound to a validated config.
func NewTextGenerator(config TextConfig, provider Provider, logger *slog.Logger) *TextGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextGenerator{
		config:   config,
		provider: provider,
		logger:   logger.With("component", "text_generator", "model", config.Model.String()),
	}
}

// Config returns the generator's config.
func (g *TextGenerator) Config() TextConfig {
	return g.config
}

// GenerateRaw sends the request and returns the unparsed provider reply.
func (g *TextGenerator) GenerateRaw(ctx context.Context, req Request) (*Completion, error) {
	if strings.TrimSpace(req.UserPrompt) == "" {
		g.logger.Error("Invalid text generation request", "err", ErrEmptyPrompt)
		return nil, ErrEmptyPrompt
	}
	payload := g.payload(req)
	return complete(ctx, g.provider, payload, g.logger)
}

// Generate sends the request and parses the reply according to the request's
// JSON flag or schema.
func (g *TextGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	completion, err := g.GenerateRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	return buildResult(completion, req, g.config.Model)
}

// GenerateRawAsync starts GenerateRaw in the background.
func (g *TextGenerator) GenerateRawAsync(ctx context.Context, req Request) *Future[*Completion] {
	return startFuture(func() (*Completion, error) {
		return g.GenerateRaw(ctx, req)
	})
}

// GenerateAsync starts Generate in the background.
func (g *TextGenerator) GenerateAsync(ctx context.Context, req Request) *Future[*Result] {
	return startFuture(func() (*Result, error) {
		return g.Generate(ctx, req)
	})
}

func (g *TextGenerator) payload(req Request) *Payload {
	p := newPayload(g.config.Model, g.config.Sampling, req)
	if req.SystemPrompt != "" {
		p.Messages = append(p.Messages, Message{Role: RoleSystem, Text: req.SystemPrompt})
	}
	p.Messages = append(p.Messages, Message{Role: RoleUser, Text: req.UserPrompt})
	return p
}

func newPayload(model Model, s Sampling, req Request) *Payload {
	p := &Payload{
		Model:            model,
		Temperature:      s.Temperature,
		Seed:             s.Seed,
		TopP:             s.TopP,
		FrequencyPenalty: s.FrequencyPenalty,
		PresencePenalty:  s.PresencePenalty,
		MaxTokens:        s.MaxTokens,
		Format:           FormatText,
	}
	switch {
	case req.Schema != nil:
		p.Format = FormatJSONSchema
		p.Schema = req.Schema
	case req.JSONResponse:
		p.Format = FormatJSONObject
	}
	return p
}

func complete(ctx context.Context, provider Provider, payload *Payload, logger *slog.Logger) (*Completion, error) {
	start := time.Now()
	completion, err := provider.Complete(ctx, payload)
	if err != nil {
		logger.Error("LLM request failed", "err", err, "time_taken", time.Since(start))
		return nil, fmt.Errorf("llm completion: %w", err)
	}
	logger.Info(
		"LLM request completed",
		"prompt_tokens", completion.PromptTokens,
		"completion_tokens", completion.CompletionTokens,
		"time_taken", time.Since(start),
	)
	return completion, nil
}

func buildResult(completion *Completion, req Request, model Model) (*Result, error) {
	result := &Result{
		Model:        model.String(),
		InputTokens:  completion.PromptTokens,
		OutputTokens: completion.CompletionTokens,
		SystemPrompt: req.SystemPrompt,
		UserPrompt:   req.UserPrompt,
	}

	switch {
	case req.Schema != nil:
		parsed, err := req.Schema.decode(completion.Content)
		if err != nil {
			return nil, err
		}
		result.Response = parsed
	case req.JSONResponse:
		parsed, err := decodeObject(completion.Content)
		if err != nil {
			return nil, err
		}
		result.Response = parsed
	default:
		result.Response = completion.Content
	}
	return result, nil
}
