package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resumeats/ats-analyzer/internal/llm"
	"resumeats/ats-analyzer/internal/llm/llmtest"
	"resumeats/ats-analyzer/internal/models"
)

func newTestATSService(t *testing.T, provider llm.Provider) ATSService {
	t.Helper()
	cfg, err := llm.NewTextConfig()
	if err != nil {
		t.Fatal(err)
	}
	return NewATSService(llm.NewTextGenerator(cfg, provider, nil), NewPromptBuilder(), nil)
}

func TestExtractCV(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{
		Content: `{"Name": "Jane Doe", "Domain": "Data Science", "Skills": ["Python", "SQL"]}`,
	})
	svc := newTestATSService(t, provider)

	got, err := svc.ExtractCV(context.Background(), "Jane Doe resume text")
	if err != nil {
		t.Fatalf("ExtractCV() error = %v", err)
	}
	want := models.ExtractedData{"Name": "Jane Doe", "Domain": "Data Science", "Skills": []any{"Python", "SQL"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractCV() mismatch (-want +got):\n%s", diff)
	}

	p := provider.Payloads()[0]
	if p.Format != llm.FormatJSONObject {
		t.Errorf("Format = %v, want JSON object", p.Format)
	}
	if !strings.Contains(p.Messages[1].Text, "Jane Doe resume text") {
		t.Errorf("user prompt does not embed the resume text: %q", p.Messages[1].Text)
	}
}

func TestExtractJDAsync(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: `{"Education": [], "Experience": ["3+ years"], "Skills": ["Go"]}`})
	svc := newTestATSService(t, provider)
	ctx := context.Background()

	got, err := svc.ExtractJDAsync(ctx, "We need a Go developer").Await(ctx)
	if err != nil {
		t.Fatalf("ExtractJDAsync() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Go"}, got.Strings("Skills")); diff != "" {
		t.Errorf("Skills mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeScore(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: `{
		"ats_score": 72,
		"skills_match_percentage": 80,
		"experience_match_percentage": 60,
		"education_match_percentage": 70,
		"matched_skills": ["Python"],
		"mismatched_items": ["Skill: Kubernetes", "Education: M.Sc."],
		"analysis": "Solid fit."
	}`})
	svc := newTestATSService(t, provider)

	got, err := svc.ComputeScore(context.Background(),
		models.ExtractedData{"Skills": []any{"Python"}},
		models.ExtractedData{"Skills": []any{"Python", "Kubernetes"}},
	)
	if err != nil {
		t.Fatalf("ComputeScore() error = %v", err)
	}
	want := models.ATSScoreResult{
		"ats_score":                   72.0,
		"skills_match_percentage":     80.0,
		"experience_match_percentage": 60.0,
		"education_match_percentage":  70.0,
		"matched_skills":              []any{"Python"},
		"mismatched_items":            []any{"Skill: Kubernetes", "Education: M.Sc."},
		"analysis":                    "Solid fit.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeScore() mismatch (-want +got):\n%s", diff)
	}

	userPrompt := provider.Payloads()[0].Messages[1].Text
	if !strings.Contains(userPrompt, `"Kubernetes"`) {
		t.Errorf("score prompt should embed the job description JSON: %q", userPrompt)
	}
}

func TestComputeScorePassesReplyThrough(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: `{"ats_score": "high", "strengths": ["SQL"]}`})
	svc := newTestATSService(t, provider)

	got, err := svc.ComputeScore(context.Background(), models.ExtractedData{}, models.ExtractedData{})
	if err != nil {
		t.Fatalf("ComputeScore() error = %v", err)
	}
	want := models.ATSScoreResult{"ats_score": "high", "strengths": []any{"SQL"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeScore() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeScoreMalformed(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: `ats_score: high`})
	svc := newTestATSService(t, provider)

	_, err := svc.ComputeScore(context.Background(), models.ExtractedData{}, models.ExtractedData{})
	var decodeErr *llm.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want a DecodeError", err)
	}
}

func TestSummarizeGaps(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: "  Focus on container orchestration.  "})
	svc := newTestATSService(t, provider)

	got, err := svc.SummarizeGaps(context.Background(), "DevOps", []string{"Kubernetes", "Helm"})
	if err != nil {
		t.Fatalf("SummarizeGaps() error = %v", err)
	}
	if got != "Focus on container orchestration." {
		t.Errorf("SummarizeGaps() = %q", got)
	}
	if p := provider.Payloads()[0]; p.Format != llm.FormatText || !strings.Contains(p.Messages[1].Text, "Kubernetes, Helm") {
		t.Errorf("unexpected payload: %+v", p)
	}

	if got, err := svc.SummarizeGaps(context.Background(), "DevOps", nil); got != "" || err != nil {
		t.Errorf("SummarizeGaps(no gaps) = %q, %v", got, err)
	}
	if provider.Calls() != 1 {
		t.Errorf("provider calls = %d, want 1", provider.Calls())
	}
}

func TestExtractCVProfile(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: `{
		"Name": "Jane Doe", "Email": "jane@example.com", "Phone": "9876543210", "Domain": "Data Science",
		"Education": ["B.Tech"],
		"Experience": [{"Company Name": "Acme", "Role": "Engineer", "Details": "Built pipelines"}],
		"Projects": [], "Skills": ["Python"], "Certifications": [], "Achievements": []
	}`})
	svc := newTestATSService(t, provider)

	got, err := svc.ExtractCVProfile(context.Background(), "resume")
	if err != nil {
		t.Fatalf("ExtractCVProfile() error = %v", err)
	}
	if got.Name != "Jane Doe" || len(got.Experience) != 1 || got.Experience[0].Company != "Acme" {
		t.Errorf("ExtractCVProfile() = %+v", got)
	}
	if p := provider.Payloads()[0]; p.Format != llm.FormatJSONSchema || p.Schema.Name != "cv_profile" {
		t.Errorf("expected schema mode, got format %v", p.Format)
	}
}
