package llm

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// VisionGenerator dispatches requests that carry images.
type VisionGenerator struct {
	config   VisionConfig
	provider Provider
	logger   *slog.Logger
}

func NewVisionGenerator(config VisionConfig, provider Provider, logger *slog.Logger) *VisionGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisionGenerator{
		config:   config,
		provider: provider,
		logger:   logger.With("component", "vision_generator", "model", config.Model.String()),
	}
}

func (g *VisionGenerator) Config() VisionConfig {
	return g.config
}

func (g *VisionGenerator) GenerateRaw(ctx context.Context, req VisionRequest) (*Completion, error) {
	payload, err := g.payload(req)
	if err != nil {
		g.logger.Error("Invalid vision generation request", "err", err)
		return nil, err
	}
	return complete(ctx, g.provider, payload, g.logger)
}

func (g *VisionGenerator) Generate(ctx context.Context, req VisionRequest) (*Result, error) {
	completion, err := g.GenerateRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	return buildResult(completion, req.Request, g.config.Model)
}

func (g *VisionGenerator) GenerateRawAsync(ctx context.Context, req VisionRequest) *Future[*Completion] {
	return startFuture(func() (*Completion, error) {
		return g.GenerateRaw(ctx, req)
	})
}

func (g *VisionGenerator) GenerateAsync(ctx context.Context, req VisionRequest) *Future[*Result] {
	return startFuture(func() (*Result, error) {
		return g.Generate(ctx, req)
	})
}

func (g *VisionGenerator) payload(req VisionRequest) (*Payload, error) {
	images, err := g.imageParts(req)
	if err != nil {
		return nil, err
	}

	p := newPayload(g.config.Model, g.config.Sampling, req.Request)
	if req.SystemPrompt != "" {
		p.Messages = append(p.Messages, Message{Role: RoleSystem, Text: req.SystemPrompt})
	}
	p.Messages = append(p.Messages, Message{
		Role:   RoleUser,
		Text:   req.UserPrompt,
		Images: images,
	})
	return p, nil
}

func (g *VisionGenerator) imageParts(req VisionRequest) ([]ImagePart, error) {
	switch {
	case len(req.ImageURLs) > 0 && len(req.Images) > 0:
		return nil, ErrAmbiguousImages
	case len(req.ImageURLs) > 0:
		parts := make([]ImagePart, 0, len(req.ImageURLs))
		for _, u := range req.ImageURLs {
			parts = append(parts, ImagePart{URL: u, Detail: g.config.Fidelity})
		}
		return parts, nil
	case len(req.Images) > 0:
		parts := make([]ImagePart, 0, len(req.Images))
		for _, img := range req.Images {
			parts = append(parts, ImagePart{URL: dataURL(img), Detail: g.config.Fidelity})
		}
		return parts, nil
	default:
		return nil, ErrMissingImages
	}
}

func dataURL(img []byte) string {
	contentType := mimetype.Detect(img).String()
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(img)
}
