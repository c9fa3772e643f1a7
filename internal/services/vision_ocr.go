package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"resumeats/ats-analyzer/internal/llm"
)

// VisionTranscriber is an ImageReader that asks a vision model to transcribe
// the image. It serves hosts without a Tesseract install.
type VisionTranscriber struct {
	generator *llm.VisionGenerator
	prompts   *PromptBuilder
	logger    *slog.Logger
}

func NewVisionTranscriber(generator *llm.VisionGenerator, prompts *PromptBuilder, logger *slog.Logger) *VisionTranscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisionTranscriber{
		generator: generator,
		prompts:   prompts,
		logger:    logger.With("component", "vision_transcriber"),
	}
}

func (v *VisionTranscriber) ReadImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	result, err := v.generator.Generate(ctx, llm.VisionRequest{
		Request: llm.Request{
			SystemPrompt: v.prompts.ImageTranscriptionSystemPrompt(),
			UserPrompt:   v.prompts.BuildImageTranscriptionPrompt(),
		},
		Images: [][]byte{data},
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe image: %w", err)
	}

	v.logger.Debug("Image transcribed", "path", path, "output_tokens", result.OutputTokens)
	return result.Text(), nil
}
