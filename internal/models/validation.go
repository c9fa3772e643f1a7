package models

// ResumeValidation is the outcome of the heuristic resume check.
type ResumeValidation struct {
	IsResume         bool            `json:"is_resume"`
	Score            int             `json:"score"`
	DetectedSections map[string]bool `json:"detected_sections"`
	Keywords         []string        `json:"keywords"`
	Error            string          `json:"error,omitempty"`
}
