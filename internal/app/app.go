// Package app wires configuration into the service graph shared by the API
// server and the CLI.
package app

import (
	"context"
	"log/slog"

	"resumeats/ats-analyzer/internal/config"
	"resumeats/ats-analyzer/internal/llm"
	"resumeats/ats-analyzer/internal/ocr"
	"resumeats/ats-analyzer/internal/services"
)

type Components struct {
	Storage   services.StorageService
	Documents services.DocumentService
	Validator services.ResumeValidator
	ATS       services.ATSService
	Search    services.SearchService
	Pipeline  services.PipelineService
}

func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	prompts := services.NewPromptBuilder()

	textGenerator, err := newTextGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("✅ LLM initialized successfully", "model", textGenerator.Config().Model)

	imageReader, err := newImageReader(ctx, cfg, prompts, logger)
	if err != nil {
		return nil, err
	}

	c := &Components{
		Storage:   services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize),
		Documents: services.NewDocumentService(services.NewTextExtractor(imageReader, logger), logger),
		Validator: services.NewResumeValidator(),
		ATS:       services.NewATSService(textGenerator, prompts, logger),
	}

	if cfg.SearchEnabled() {
		c.Search = services.NewSearchService(services.SearchOptions{
			APIKey:      cfg.Search.APIKey,
			URL:         cfg.Search.URL,
			ResultCount: cfg.Search.ResultCount,
			Timeout:     cfg.Search.Timeout,
		}, prompts, logger)
		logger.Info("✅ Search enrichment enabled")
	} else {
		logger.Warn("⚠️ SERPER_API_KEY not set, tutorial recommendations disabled")
	}

	c.Pipeline = services.NewPipelineService(
		c.Documents,
		c.Validator,
		c.ATS,
		c.Search,
		services.PipelineOptions{
			SummarizeGaps:        cfg.Pipeline.SummarizeGaps,
			ConcurrentExtraction: cfg.Pipeline.ConcurrentExtraction,
		},
		logger,
	)
	return c, nil
}

func newTextGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*llm.TextGenerator, error) {
	model, err := llm.ParseModel(cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	textConfig, err := llm.NewTextConfig(append(cfg.GenerationOptions(), llm.WithModel(model))...)
	if err != nil {
		return nil, err
	}
	provider, err := services.NewLLMProvider(ctx, model, cfg.APIKeyFor(model), cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}
	return llm.NewTextGenerator(textConfig, provider, logger), nil
}

func newImageReader(ctx context.Context, cfg *config.Config, prompts *services.PromptBuilder, logger *slog.Logger) (services.ImageReader, error) {
	if cfg.OCR.Engine != config.OCREngineVision {
		logger.Info("✅ OCR engine: tesseract", "languages", cfg.OCR.Languages)
		return ocr.NewTesseract(cfg.OCR.Languages, logger), nil
	}

	model, err := llm.ParseModel(cfg.LLM.VisionModel)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.GenerationOptions(), llm.WithModel(model), llm.WithFidelity(llm.FidelityHigh))
	visionConfig, err := llm.NewVisionConfig(opts...)
	if err != nil {
		return nil, err
	}
	provider, err := services.NewLLMProvider(ctx, model, cfg.APIKeyFor(model), cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}
	logger.Info("✅ OCR engine: vision", "model", model)
	return services.NewVisionTranscriber(llm.NewVisionGenerator(visionConfig, provider, logger), prompts, logger), nil
}
