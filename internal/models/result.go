package models

type WelcomeResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// AnalysisResponse is the body of /upload-resume/. Exactly one field is set.
type AnalysisResponse struct {
	Subheadings any    `json:"subheadings,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ValidationResponse is the body of /validate-resume/.
type ValidationResponse struct {
	Validation *ResumeValidation `json:"validation,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
