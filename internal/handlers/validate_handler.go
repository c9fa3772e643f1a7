package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"resumeats/ats-analyzer/internal/models"
	"resumeats/ats-analyzer/internal/services"
)

type ValidateHandler struct {
	storageService  services.StorageService
	documentService services.DocumentService
	validator       services.ResumeValidator
	logger          *slog.Logger
}

func NewValidateHandler(
	storageService services.StorageService,
	documentService services.DocumentService,
	validator services.ResumeValidator,
	logger *slog.Logger,
) *ValidateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidateHandler{
		storageService:  storageService,
		documentService: documentService,
		validator:       validator,
		logger:          logger.With("component", "validate_handler"),
	}
}

// HandleValidateResume runs the heuristic resume check on an uploaded file.
func (h *ValidateHandler) HandleValidateResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(models.ValidationResponse{Error: "No file uploaded. Please upload a resume as 'file'."})
	}

	path, err := h.storageService.SaveFile(file)
	if err != nil {
		h.logger.Warn("Rejected upload", "filename", file.Filename, "err", err)
		return c.JSON(models.ValidationResponse{Error: saveFailedMessage(err)})
	}
	defer func() {
		if err := h.storageService.DeleteFile(path); err != nil {
			h.logger.Warn("Failed to remove temporary upload", "path", path, "err", err)
		}
	}()

	text, ok := h.documentService.ExtractText(c.UserContext(), path)
	if !ok {
		return c.JSON(models.ValidationResponse{Error: "No text extracted from the resume."})
	}

	return c.JSON(models.ValidationResponse{Validation: h.validator.Validate(text)})
}
