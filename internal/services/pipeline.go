package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"resumeats/ats-analyzer/internal/models"
)

const (
	msgNoResumeText     = "No text extracted from the resume."
	msgNoJDText         = "No text extracted from the job description."
	msgNoResumeItems    = "No items extracted from the resume."
	msgNoJDItems        = "No items extracted from the job description."
	msgProcessingFailed = "Error processing resume: %v"
)

// JobDescription is the optional second document of a run. Text takes
// precedence over Path when both are set.
type JobDescription struct {
	Path string
	Text string
}

func (jd JobDescription) Provided() bool {
	return strings.TrimSpace(jd.Text) != "" || jd.Path != ""
}

// Outcome is the result of one pipeline run. Message is set whenever the run
// stopped early; Err is additionally set when it stopped on a fault rather
// than on missing data.
type Outcome struct {
	RunID      string
	Stage      models.Stage
	Result     any
	Message    string
	Err        error
	Validation *models.ResumeValidation
}

// OK reports whether the run produced a result.
func (o *Outcome) OK() bool {
	return o.Message == ""
}

type PipelineOptions struct {
	SummarizeGaps        bool
	ConcurrentExtraction bool
}

type PipelineService interface {
	ProcessResume(ctx context.Context, cvPath string, jd JobDescription) *Outcome
}

type pipelineService struct {
	documents DocumentService
	validator ResumeValidator
	ats       ATSService
	search    SearchService
	opts      PipelineOptions
	logger    *slog.Logger
}

// NewPipelineService wires the pipeline. A nil search service disables
// enrichment.
func NewPipelineService(
	documents DocumentService,
	validator ResumeValidator,
	ats ATSService,
	search SearchService,
	opts PipelineOptions,
	logger *slog.Logger,
) PipelineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &pipelineService{
		documents: documents,
		validator: validator,
		ats:       ats,
		search:    search,
		opts:      opts,
		logger:    logger.With("component", "pipeline"),
	}
}

// errHalted marks an expected early stop; the message is already on the
// outcome.
var errHalted = errors.New("pipeline halted")

// ProcessResume runs the pipeline for one CV and an optional job description.
// Without a job description the run ends after CV extraction and the result
// is the extracted CV.
func (p *pipelineService) ProcessResume(ctx context.Context, cvPath string, jd JobDescription) *Outcome {
	out := &Outcome{RunID: uuid.NewString(), Stage: models.StageStart}
	logger := p.logger.With("run_id", out.RunID)
	logger.Info("Processing resume", "cv_path", cvPath, "with_job_description", jd.Provided())

	err := p.run(ctx, out, cvPath, jd, logger)
	switch {
	case err == nil:
		out.Stage = models.StageDone
		logger.Info("Resume processed")
	case errors.Is(err, errHalted):
		logger.Warn("Pipeline halted", "stage", out.Stage, "reason", out.Message)
	default:
		out.Err = err
		out.Message = fmt.Sprintf(msgProcessingFailed, err)
		logger.Error("Pipeline failed", "stage", out.Stage, "err", err)
	}
	return out
}

func (p *pipelineService) run(ctx context.Context, out *Outcome, cvPath string, jd JobDescription, logger *slog.Logger) error {
	halt := func(msg string) error {
		out.Message = msg
		return errHalted
	}

	cvText, ok := p.documents.ExtractText(ctx, cvPath)
	if !ok {
		return halt(msgNoResumeText)
	}
	out.Stage = models.StageCVTextExtracted

	out.Validation = p.validator.Validate(cvText)
	logger.Info("Resume pre-check",
		"is_resume", out.Validation.IsResume,
		"score", out.Validation.Score,
	)

	var jdText string
	if jd.Provided() {
		jdText = strings.TrimSpace(jd.Text)
		if jdText == "" {
			jdText, ok = p.documents.ExtractText(ctx, jd.Path)
			if !ok {
				return halt(msgNoJDText)
			}
		}
		out.Stage = models.StageJDTextExtracted
	}

	if jdText == "" {
		cv, err := p.ats.ExtractCV(ctx, cvText)
		if err != nil {
			return err
		}
		if cv.Empty() {
			return halt(msgNoResumeItems)
		}
		out.Stage = models.StageCVItemsExtracted
		out.Result = cv
		return nil
	}

	cv, jdItems, err := p.extractBoth(ctx, out, cvText, jdText)
	if err != nil {
		return err
	}
	switch {
	case cv.Empty():
		return halt(msgNoResumeItems)
	case jdItems.Empty():
		out.Stage = models.StageCVItemsExtracted
		return halt(msgNoJDItems)
	}
	out.Stage = models.StageJDItemsExtracted

	score, err := p.ats.ComputeScore(ctx, cv, jdItems)
	if err != nil {
		return err
	}
	out.Stage = models.StageScoreComputed
	out.Result = score

	domain := cv.Domain()
	if p.opts.SummarizeGaps {
		summary, err := p.ats.SummarizeGaps(ctx, domain, score.MissingSkills())
		if err != nil {
			logger.Warn("Gap summary skipped", "err", err)
		} else if summary != "" {
			score.SetGapSummary(summary)
		}
	}

	if p.search != nil && domain != "" {
		score.SetRecommendations(p.search.TutorialsForDomain(ctx, domain))
		out.Stage = models.StageEnriched
	}
	return nil
}

// extractBoth runs the CV and job description extraction, concurrently when
// configured. Stage is advanced as each side completes in pipeline order.
func (p *pipelineService) extractBoth(ctx context.Context, out *Outcome, cvText, jdText string) (models.ExtractedData, models.ExtractedData, error) {
	if !p.opts.ConcurrentExtraction {
		cv, err := p.ats.ExtractCV(ctx, cvText)
		if err != nil {
			return nil, nil, err
		}
		if cv.Empty() {
			return cv, nil, nil
		}
		out.Stage = models.StageCVItemsExtracted

		jdItems, err := p.ats.ExtractJD(ctx, jdText)
		if err != nil {
			return nil, nil, err
		}
		return cv, jdItems, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cvFuture := p.ats.ExtractCVAsync(ctx, cvText)
	jdFuture := p.ats.ExtractJDAsync(ctx, jdText)

	cv, err := cvFuture.Await(ctx)
	if err != nil {
		return nil, nil, err
	}
	jdItems, err := jdFuture.Await(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !cv.Empty() {
		out.Stage = models.StageCVItemsExtracted
	}
	return cv, jdItems, nil
}
