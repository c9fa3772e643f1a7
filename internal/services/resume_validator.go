package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"resumeats/ats-analyzer/internal/models"
)

const (
	minResumeTextLength = 50
	resumeScoreStep     = 10
	resumeThreshold     = 40
)

type sectionSynonyms struct {
	name     string
	synonyms []string
}

var resumeSections = []sectionSynonyms{
	{"education", []string{"education", "qualification", "academic background", "academics", "studies", "degree"}},
	{"technical_skills", []string{"technical skills", "skills", "tech stack", "expertise", "technologies", "programming languages"}},
	{"work_experience", []string{"work experience", "professional experience", "employment", "career history", "experience", "currently working", "presently working"}},
	{"projects", []string{"projects", "academic projects", "personal projects"}},
}

var commonSkills = []string{
	"python", "java", "c++", "c", "javascript", "typescript",
	"sql", "mysql", "postgresql",
	"aws", "azure", "gcp",
	"machine learning", "deep learning", "nlp",
	"react", "node", "django", "flask",
	"html", "css",
	"docker", "kubernetes",
	"git", "github",
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)
)

type ResumeValidator interface {
	Validate(text string) *models.ResumeValidation
}

type resumeValidator struct{}

func NewResumeValidator() ResumeValidator {
	return &resumeValidator{}
}

// Validate scores text against section synonyms and contact patterns. Skills
// are only listed once the text qualifies as a resume.
func (v *resumeValidator) Validate(text string) *models.ResumeValidation {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minResumeTextLength {
		return &models.ResumeValidation{
			IsResume:         false,
			Score:            0,
			DetectedSections: map[string]bool{},
			Keywords:         []string{},
			Error:            "Text too short or empty",
		}
	}

	lower := strings.ToLower(text)
	detected := make(map[string]bool, len(resumeSections)+2)
	score := 0

	for _, section := range resumeSections {
		found := containsAny(lower, section.synonyms)
		detected[section.name] = found
		if found {
			score += resumeScoreStep
		}
	}

	detected["email"] = emailPattern.MatchString(text)
	if detected["email"] {
		score += resumeScoreStep
	}
	detected["phone_number"] = phonePattern.MatchString(text)
	if detected["phone_number"] {
		score += resumeScoreStep
	}

	isResume := score >= resumeThreshold
	keywords := []string{}
	if isResume {
		// Casers keep state, so each call gets its own.
		titleCase := cases.Title(language.English)
		for _, skill := range commonSkills {
			if strings.Contains(lower, skill) {
				keywords = append(keywords, titleCase.String(skill))
			}
		}
	}

	return &models.ResumeValidation{
		IsResume:         isResume,
		Score:            score,
		DetectedSections: detected,
		Keywords:         keywords,
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
