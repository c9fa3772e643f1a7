package handlers

import (
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"resumeats/ats-analyzer/internal/models"
	"resumeats/ats-analyzer/internal/services"
)

// AnalysisHandler serves the resume analysis upload. Every outcome is
// reported with status 200; failures carry an "error" field instead.
type AnalysisHandler struct {
	storageService  services.StorageService
	pipelineService services.PipelineService
	logger          *slog.Logger
}

func NewAnalysisHandler(
	storageService services.StorageService,
	pipelineService services.PipelineService,
	logger *slog.Logger,
) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		storageService:  storageService,
		pipelineService: pipelineService,
		logger:          logger.With("component", "analysis_handler"),
	}
}

func (h *AnalysisHandler) HandleUploadResume(c *fiber.Ctx) error {
	cvFile, err := c.FormFile("file")
	if err != nil {
		return c.JSON(models.AnalysisResponse{Error: "No file uploaded. Please upload a resume as 'file'."})
	}

	cvPath, err := h.save(cvFile)
	if err != nil {
		return c.JSON(models.AnalysisResponse{Error: saveFailedMessage(err)})
	}
	defer h.cleanup(cvPath)

	jd := services.JobDescription{Text: c.FormValue("job_description")}
	if jdFile, err := c.FormFile("job_description_file"); err == nil && jd.Text == "" {
		jdPath, err := h.save(jdFile)
		if err != nil {
			return c.JSON(models.AnalysisResponse{Error: saveFailedMessage(err)})
		}
		defer h.cleanup(jdPath)
		jd.Path = jdPath
	}

	outcome := h.pipelineService.ProcessResume(c.UserContext(), cvPath, jd)
	c.Set("X-Run-ID", outcome.RunID)
	if !outcome.OK() {
		return c.JSON(models.AnalysisResponse{Error: outcome.Message})
	}
	return c.JSON(models.AnalysisResponse{Subheadings: outcome.Result})
}

func (h *AnalysisHandler) save(file *multipart.FileHeader) (string, error) {
	path, err := h.storageService.SaveFile(file)
	if err != nil {
		h.logger.Warn("Rejected upload", "filename", file.Filename, "err", err)
		return "", err
	}
	return path, nil
}

func saveFailedMessage(err error) string {
	return fmt.Sprintf("Failed to save uploaded file: %v", err)
}

func (h *AnalysisHandler) cleanup(path string) {
	if err := h.storageService.DeleteFile(path); err != nil {
		h.logger.Warn("Failed to remove temporary upload", "path", path, "err", err)
	}
}
