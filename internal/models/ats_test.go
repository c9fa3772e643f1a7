package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractedDataEmpty(t *testing.T) {
	tests := []struct {
		name string
		data ExtractedData
		want bool
	}{
		{"nil", nil, true},
		{"blank values", ExtractedData{"Name": " ", "Skills": []any{}, "Contact": map[string]any{}, "Phone": nil}, true},
		{"name only", ExtractedData{"Name": "Jane Doe"}, false},
		{"skills only", ExtractedData{"Skills": []any{"Go"}}, false},
		{"numeric", ExtractedData{"Years": 3.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractedDataAccessors(t *testing.T) {
	var data ExtractedData
	if err := json.Unmarshal([]byte(`{"Domain": " Data Science ", "Skills": ["Python", "SQL", 3]}`), &data); err != nil {
		t.Fatal(err)
	}
	if got := data.Domain(); got != "Data Science" {
		t.Errorf("Domain() = %q", got)
	}
	if diff := cmp.Diff([]string{"Python", "SQL", "3"}, data.Strings("Skills")); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
	if got := data.Strings("Missing"); got != nil {
		t.Errorf("Strings(missing) = %v, want nil", got)
	}
}

func TestMissingSkills(t *testing.T) {
	r := ATSScoreResult{"mismatched_items": []any{
		"Skill: Kubernetes",
		"Experience: 5+ years backend",
		"Skill:Terraform",
		"Education: M.Sc.",
	}}
	if diff := cmp.Diff([]string{"Kubernetes", "Terraform"}, r.MissingSkills()); diff != "" {
		t.Errorf("MissingSkills() mismatch (-want +got):\n%s", diff)
	}
	if got := (ATSScoreResult{"ats_score": 50.0}).MissingSkills(); got != nil {
		t.Errorf("MissingSkills() without mismatched_items = %v, want nil", got)
	}
}

func TestATSScoreResultEnrichment(t *testing.T) {
	var r ATSScoreResult
	if err := json.Unmarshal([]byte(`{"ats_score": "68", "strengths": ["SQL"]}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.GapSummary() != "" || r.Recommendations() != nil {
		t.Fatalf("fresh result should carry no enrichment: %v", r)
	}

	rec := Recommendations{"error": "Failed to fetch video recommendations."}
	r.SetGapSummary("Learn Terraform.")
	r.SetRecommendations(rec)

	want := ATSScoreResult{
		"ats_score":               "68",
		"strengths":               []any{"SQL"},
		"gap_summary":             "Learn Terraform.",
		"youtube_recommendations": rec,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if r.Score() != "68" || !r.Recommendations().Failed() {
		t.Errorf("Score() = %v, Recommendations() = %v", r.Score(), r.Recommendations())
	}
}
