package services

import (
	"fmt"
	"strings"
)

const cvExtractionSystemPrompt = `You are an expert Resume Parsing AI. Your task is to extract all relevant professional and academic details from the provided resume text and output them in a strictly formatted JSON object.

Rules for Extraction:
1. Experience: If multiple jobs are found, create an object for each one inside the Experience array.
2. Education: List all degrees, colleges, or schools mentioned.
3. Missing Data: If no Skills, Certifications, or Achievements are found, leave their respective arrays empty. Do not invent information.
4. Clean Data: Remove any bullet points, special characters, or symbols from the text. Provide only the clean, raw information.
5. Domain Analysis: Analyze the overall resume and identify the primary professional domain (e.g., Software Engineering, Data Science, Marketing, Finance).

Return STRICTLY this JSON format and nothing else:
{
  "Name": "Extracted Full Name",
  "Email": "Extracted Email Address",
  "Phone": "Extracted Phone Number",
  "Domain": "Primary Professional Domain",
  "Education": ["Degree/School Name 1", "Degree/School Name 2"],
  "Experience": [
    {
      "Company Name": "Name of Company",
      "Role": "Job Title",
      "Details": "Concise summary of responsibilities and achievements"
    }
  ],
  "Projects": ["Project Name/Description 1"],
  "Skills": ["Skill 1", "Skill 2"],
  "Certifications": ["Certification 1"],
  "Achievements": ["Achievement 1"]
}`

const jdExtractionSystemPrompt = `You are an expert Job Description Parsing AI. Your task is to extract required education, experience, and skills from the given text and output them strictly as a valid JSON object:

{
  "Education": [],
  "Experience": [],
  "Skills": []
}`

const atsScoreSystemPrompt = `You are an intelligent ATS (Applicant Tracking System).

Your task:
Compare a CV and a Job Description and generate a professional ATS score.

Scoring Rules:
- Skills Match: 50%
- Experience Match: 30%
- Education Match: 20%

Instructions:
- Consider semantic similarity (e.g., ML = Machine Learning).
- Consider relevant experience even if wording differs.
- Be intelligent, not keyword-based.
- Provide detailed reasoning.
- CRITICAL: Consolidate ALL mismatched skills, missing education/qualifications, and missing experience into ONE single list under "mismatched_items". Prefix every entry with its category: "Skill: ", "Experience: " or "Education: ". Do NOT create separate lists for them.

Return STRICT JSON format:

{
  "ats_score": number (0-100),
  "skills_match_percentage": number,
  "experience_match_percentage": number,
  "education_match_percentage": number,
  "matched_skills": [],
  "mismatched_items": [],
  "analysis": "short explanation"
}

Do not return anything outside JSON.`

const gapSummarySystemPrompt = `You are the core analysis engine for an AI Resume Analyzer. Your objective is to evaluate missing skills and provide highly concise, actionable feedback for job seekers.
Rules:
You will receive a target job domain and a list of missing keywords.
You must summarize these missing keywords into a single, cohesive paragraph.
Group related technical skills or concepts together rather than just listing them.
Your response must be strictly between 30 and 40 words.
Maintain a professional, encouraging, and direct tone.`

const imageTranscriptionSystemPrompt = `You are an OCR engine. Transcribe every piece of text visible in the provided document image exactly as written, preserving reading order and line breaks. Do not summarize, translate, correct, or add commentary. If the image contains no text, return an empty response.`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

func (pb *PromptBuilder) CVExtractionSystemPrompt() string {
	return cvExtractionSystemPrompt
}

// BuildCVExtractionPrompt creates the user prompt for resume parsing
func (pb *PromptBuilder) BuildCVExtractionPrompt(rawText string) string {
	return fmt.Sprintf(`Extract the details from the following resume text according to your system instructions:

%s`, rawText)
}

func (pb *PromptBuilder) JDExtractionSystemPrompt() string {
	return jdExtractionSystemPrompt
}

// BuildJDExtractionPrompt creates the user prompt for job description parsing
func (pb *PromptBuilder) BuildJDExtractionPrompt(jdText string) string {
	return fmt.Sprintf(`Extract the required education, experience, and skills from the following job description.

Job Description:
"""
%s
"""

Rules for Extraction:
- Education: List all required degrees or qualifications.
- Experience: List required years or specific role experience.
- Skills: List all required technical and soft skills.
- If a category is not mentioned, leave the array empty [].
- Output ONLY valid JSON. Do not include extra text, explanations, or markdown formatting.`, jdText)
}

func (pb *PromptBuilder) ATSScoreSystemPrompt() string {
	return atsScoreSystemPrompt
}

// BuildATSScorePrompt embeds both extractions as JSON documents
func (pb *PromptBuilder) BuildATSScorePrompt(cvJSON, jdJSON string) string {
	return fmt.Sprintf(`CANDIDATE CV (extracted):
%s

JOB DESCRIPTION (extracted requirements):
%s

Compare the CV against the job description and return the ATS score JSON described in your instructions.`,
		cvJSON, jdJSON)
}

func (pb *PromptBuilder) GapSummarySystemPrompt() string {
	return gapSummarySystemPrompt
}

func (pb *PromptBuilder) BuildGapSummaryPrompt(domain string, missing []string) string {
	return fmt.Sprintf(`Target Domain: %s
Missing Keywords: %s

Please generate the summary paragraph based on the system rules.`,
		domain, strings.Join(missing, ", "))
}

func (pb *PromptBuilder) ImageTranscriptionSystemPrompt() string {
	return imageTranscriptionSystemPrompt
}

func (pb *PromptBuilder) BuildImageTranscriptionPrompt() string {
	return "Transcribe all text in this document image."
}

// BuildTutorialQuery creates the search query for resume formatting videos
func (pb *PromptBuilder) BuildTutorialQuery(domain string) string {
	return fmt.Sprintf("%s resume formatting tutorial site:youtube.com", strings.TrimSpace(domain))
}
