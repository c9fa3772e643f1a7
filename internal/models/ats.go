package models

import (
	"fmt"
	"strings"
)

// ExtractedData is the loosely typed object an LLM extraction call returns
// for a CV or a job description.
type ExtractedData map[string]any

// Empty reports whether the extraction produced no usable values.
func (d ExtractedData) Empty() bool {
	for _, v := range d {
		switch val := v.(type) {
		case nil:
		case string:
			if strings.TrimSpace(val) != "" {
				return false
			}
		case []any:
			if len(val) > 0 {
				return false
			}
		case map[string]any:
			if len(val) > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// String returns the value under key when it is a string.
func (d ExtractedData) String(key string) string {
	s, _ := d[key].(string)
	return strings.TrimSpace(s)
}

// Domain is the primary professional domain inferred for a CV.
func (d ExtractedData) Domain() string {
	return d.String("Domain")
}

// Strings returns the list under key, rendering non-string items with fmt.
func (d ExtractedData) Strings(key string) []string {
	items, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// ATSScoreResult is the scoring reply as the model returned it. The pipeline
// only adds the enrichment keys; every other key and value is left untouched.
type ATSScoreResult map[string]any

const (
	ScoreKeyATSScore               = "ats_score"
	ScoreKeyMatchedSkills          = "matched_skills"
	ScoreKeyMismatchedItems        = "mismatched_items"
	ScoreKeyGapSummary             = "gap_summary"
	ScoreKeyYoutubeRecommendations = "youtube_recommendations"
)

// Mismatch category prefixes used inside mismatched_items.
const (
	MismatchSkill      = "Skill:"
	MismatchExperience = "Experience:"
	MismatchEducation  = "Education:"
)

// Score returns ats_score in whatever JSON type the model used.
func (r ATSScoreResult) Score() any {
	return r[ScoreKeyATSScore]
}

func (r ATSScoreResult) MatchedSkills() []string {
	return ExtractedData(r).Strings(ScoreKeyMatchedSkills)
}

func (r ATSScoreResult) MismatchedItems() []string {
	return ExtractedData(r).Strings(ScoreKeyMismatchedItems)
}

// MissingSkills returns the mismatched items tagged as skills, without the
// prefix.
func (r ATSScoreResult) MissingSkills() []string {
	var out []string
	for _, item := range r.MismatchedItems() {
		if rest, ok := strings.CutPrefix(item, MismatchSkill); ok {
			out = append(out, strings.TrimSpace(rest))
		}
	}
	return out
}

func (r ATSScoreResult) GapSummary() string {
	return ExtractedData(r).String(ScoreKeyGapSummary)
}

func (r ATSScoreResult) SetGapSummary(summary string) {
	r[ScoreKeyGapSummary] = summary
}

// Recommendations returns the enrichment entry, or nil when enrichment did
// not run.
func (r ATSScoreResult) Recommendations() Recommendations {
	rec, _ := r[ScoreKeyYoutubeRecommendations].(Recommendations)
	return rec
}

func (r ATSScoreResult) SetRecommendations(rec Recommendations) {
	r[ScoreKeyYoutubeRecommendations] = rec
}

// Tutorial is a single video recommendation.
type Tutorial struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Recommendations holds either "<domain>_resume_tutorials" or "error".
type Recommendations map[string]any

const RecommendationsErrorKey = "error"

// Failed reports whether enrichment ended in an error entry.
func (r Recommendations) Failed() bool {
	_, ok := r[RecommendationsErrorKey]
	return ok
}

// ExperienceEntry is one position in a CVProfile.
type ExperienceEntry struct {
	Company string `json:"Company Name"`
	Role    string `json:"Role"`
	Details string `json:"Details"`
}

// CVProfile is the strict shape of an extracted CV. Every field is required
// so it can drive a strict structured-output schema.
type CVProfile struct {
	Name           string            `json:"Name"`
	Email          string            `json:"Email"`
	Phone          string            `json:"Phone"`
	Domain         string            `json:"Domain"`
	Education      []string          `json:"Education"`
	Experience     []ExperienceEntry `json:"Experience"`
	Projects       []string          `json:"Projects"`
	Skills         []string          `json:"Skills"`
	Certifications []string          `json:"Certifications"`
	Achievements   []string          `json:"Achievements"`
}
