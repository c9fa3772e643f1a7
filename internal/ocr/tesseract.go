// Package ocr reads text out of images with Tesseract.
package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an image reader backed by a local Tesseract install. A new
// client is created per image since gosseract clients are not safe for
// concurrent use.
type Tesseract struct {
	languages []string
	logger    *slog.Logger
}

func NewTesseract(languages []string, logger *slog.Logger) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tesseract{
		languages: languages,
		logger:    logger.With("component", "tesseract"),
	}
}

// ReadImage returns the text Tesseract recognises in the image at path.
func (t *Tesseract) ReadImage(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set OCR languages: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to run OCR: %w", err)
	}
	t.logger.Debug("OCR completed", "path", path, "chars", len(text))
	return text, nil
}
