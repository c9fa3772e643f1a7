package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"resumeats/ats-analyzer/internal/models"
)

const searchFailureMessage = "Failed to fetch video recommendations."

type SearchService interface {
	TutorialsForDomain(ctx context.Context, domain string) models.Recommendations
}

type SearchOptions struct {
	APIKey      string
	URL         string
	ResultCount int
	Timeout     time.Duration
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"organic"`
}

type searchService struct {
	client  *resty.Client
	opts    SearchOptions
	prompts *PromptBuilder
	logger  *slog.Logger
}

func NewSearchService(opts SearchOptions, prompts *PromptBuilder, logger *slog.Logger) SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ResultCount <= 0 {
		opts.ResultCount = 3
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-API-KEY", opts.APIKey)

	return &searchService{
		client:  client,
		opts:    opts,
		prompts: prompts,
		logger:  logger.With("component", "search_service"),
	}
}

// TutorialsForDomain looks up resume formatting videos for the domain. It
// never fails: errors are reported inside the returned map.
func (s *searchService) TutorialsForDomain(ctx context.Context, domain string) models.Recommendations {
	domain = strings.TrimSpace(domain)
	tutorials, err := s.search(ctx, s.prompts.BuildTutorialQuery(domain))
	if err != nil {
		s.logger.Warn("An error occurred while calling the search API", "domain", domain, "err", err)
		return models.Recommendations{models.RecommendationsErrorKey: searchFailureMessage}
	}

	s.logger.Info("Fetched tutorial recommendations", "domain", domain, "count", len(tutorials))
	return models.Recommendations{domain + "_resume_tutorials": tutorials}
}

func (s *searchService) search(ctx context.Context, query string) ([]models.Tutorial, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(serperRequest{Q: query, Num: s.opts.ResultCount}).
		SetResult(&serperResponse{}).
		Post(s.opts.URL)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode())
	}

	result, ok := resp.Result().(*serperResponse)
	if !ok || result == nil {
		return nil, fmt.Errorf("unexpected search response")
	}

	tutorials := []models.Tutorial{}
	for _, item := range result.Organic {
		if item.Link == "" {
			continue
		}
		if strings.Contains(item.Link, "youtube.com") || strings.Contains(item.Link, "youtu.be") {
			tutorials = append(tutorials, models.Tutorial{Title: item.Title, URL: item.Link})
		}
	}
	return tutorials, nil
}
