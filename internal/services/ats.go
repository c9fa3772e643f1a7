package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"resumeats/ats-analyzer/internal/llm"
	"resumeats/ats-analyzer/internal/models"
)

type ATSService interface {
	ExtractCV(ctx context.Context, text string) (models.ExtractedData, error)
	ExtractJD(ctx context.Context, text string) (models.ExtractedData, error)
	ExtractCVAsync(ctx context.Context, text string) *llm.Future[models.ExtractedData]
	ExtractJDAsync(ctx context.Context, text string) *llm.Future[models.ExtractedData]
	ComputeScore(ctx context.Context, cv, jd models.ExtractedData) (models.ATSScoreResult, error)
	SummarizeGaps(ctx context.Context, domain string, missing []string) (string, error)
	ExtractCVProfile(ctx context.Context, text string) (*models.CVProfile, error)
}

type atsService struct {
	generator *llm.TextGenerator
	prompts   *PromptBuilder
	logger    *slog.Logger
}

func NewATSService(generator *llm.TextGenerator, prompts *PromptBuilder, logger *slog.Logger) ATSService {
	if logger == nil {
		logger = slog.Default()
	}
	return &atsService{
		generator: generator,
		prompts:   prompts,
		logger:    logger.With("component", "ats_service"),
	}
}

func (s *atsService) cvRequest(text string) llm.Request {
	return llm.Request{
		SystemPrompt: s.prompts.CVExtractionSystemPrompt(),
		UserPrompt:   s.prompts.BuildCVExtractionPrompt(text),
		JSONResponse: true,
	}
}

func (s *atsService) jdRequest(text string) llm.Request {
	return llm.Request{
		SystemPrompt: s.prompts.JDExtractionSystemPrompt(),
		UserPrompt:   s.prompts.BuildJDExtractionPrompt(text),
		JSONResponse: true,
	}
}

// ExtractCV implements ATSService.
func (s *atsService) ExtractCV(ctx context.Context, text string) (models.ExtractedData, error) {
	result, err := s.generator.Generate(ctx, s.cvRequest(text))
	if err != nil {
		return nil, fmt.Errorf("failed to extract CV: %w", err)
	}
	return extractedData(result)
}

// ExtractJD implements ATSService.
func (s *atsService) ExtractJD(ctx context.Context, text string) (models.ExtractedData, error) {
	result, err := s.generator.Generate(ctx, s.jdRequest(text))
	if err != nil {
		return nil, fmt.Errorf("failed to extract job description: %w", err)
	}
	return extractedData(result)
}

// ExtractCVAsync implements ATSService.
func (s *atsService) ExtractCVAsync(ctx context.Context, text string) *llm.Future[models.ExtractedData] {
	return llm.Then(s.generator.GenerateAsync(ctx, s.cvRequest(text)), extractedData)
}

// ExtractJDAsync implements ATSService.
func (s *atsService) ExtractJDAsync(ctx context.Context, text string) *llm.Future[models.ExtractedData] {
	return llm.Then(s.generator.GenerateAsync(ctx, s.jdRequest(text)), extractedData)
}

func extractedData(result *llm.Result) (models.ExtractedData, error) {
	data, ok := result.Response.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected extraction response type %T", result.Response)
	}
	return models.ExtractedData(data), nil
}

// ComputeScore implements ATSService. The reply object is returned as is.
func (s *atsService) ComputeScore(ctx context.Context, cv, jd models.ExtractedData) (models.ATSScoreResult, error) {
	cvJSON, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode CV data: %w", err)
	}
	jdJSON, err := json.MarshalIndent(jd, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode job description data: %w", err)
	}

	result, err := s.generator.Generate(ctx, llm.Request{
		SystemPrompt: s.prompts.ATSScoreSystemPrompt(),
		UserPrompt:   s.prompts.BuildATSScorePrompt(string(cvJSON), string(jdJSON)),
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute ATS score: %w", err)
	}

	data, ok := result.Response.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected ATS score response type %T", result.Response)
	}
	score := models.ATSScoreResult(data)

	s.logger.Info("ATS score computed",
		"ats_score", score.Score(),
		"matched", len(score.MatchedSkills()),
		"mismatched", len(score.MismatchedItems()),
	)
	return score, nil
}

// SummarizeGaps implements ATSService.
func (s *atsService) SummarizeGaps(ctx context.Context, domain string, missing []string) (string, error) {
	if len(missing) == 0 {
		return "", nil
	}

	result, err := s.generator.Generate(ctx, llm.Request{
		SystemPrompt: s.prompts.GapSummarySystemPrompt(),
		UserPrompt:   s.prompts.BuildGapSummaryPrompt(domain, missing),
	})
	if err != nil {
		return "", fmt.Errorf("failed to summarize gaps: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}

// ExtractCVProfile implements ATSService. Unlike ExtractCV it constrains the
// reply to the CVProfile schema.
func (s *atsService) ExtractCVProfile(ctx context.Context, text string) (*models.CVProfile, error) {
	req := s.cvRequest(text)
	req.Schema = llm.SchemaFor[models.CVProfile]("cv_profile")

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to extract CV profile: %w", err)
	}
	profile, ok := result.Response.(*models.CVProfile)
	if !ok {
		return nil, fmt.Errorf("unexpected profile response type %T", result.Response)
	}
	return profile, nil
}
