package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var ErrUnsupportedDocument = errors.New("unsupported document type")

// TextExtractor returns the raw text of a document on disk.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ImageReader turns a single image into text.
type ImageReader interface {
	ReadImage(ctx context.Context, path string) (string, error)
}

type documentKind int

const (
	kindUnknown documentKind = iota
	kindPDF
	kindDOCX
	kindOffice
	kindText
	kindImage
)

func (k documentKind) String() string {
	switch k {
	case kindPDF:
		return "pdf"
	case kindDOCX:
		return "docx"
	case kindOffice:
		return "office"
	case kindText:
		return "text"
	case kindImage:
		return "image"
	default:
		return "unknown"
	}
}

type documentExtractor struct {
	images ImageReader
	logger *slog.Logger
}

// NewTextExtractor dispatches on the sniffed content type. Images go to the
// given reader; a nil reader rejects images.
func NewTextExtractor(images ImageReader, logger *slog.Logger) TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentExtractor{
		images: images,
		logger: logger.With("component", "text_extractor"),
	}
}

func (e *documentExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	kind, mime, err := classifyDocument(path)
	if err != nil {
		return "", err
	}
	e.logger.Debug("Classified document", "path", path, "kind", kind.String(), "mime", mime)

	switch kind {
	case kindPDF:
		return e.extractPDF(path)
	case kindDOCX:
		return extractDOCX(path)
	case kindOffice:
		return convertWithDocconv(path)
	case kindText:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	case kindImage:
		if e.images == nil {
			return "", fmt.Errorf("%w: no OCR engine configured for %s", ErrUnsupportedDocument, mime)
		}
		return e.images.ReadImage(ctx, path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDocument, mime)
	}
}

// classifyDocument sniffs the file content and only falls back to the
// extension when the content is a bare container or unrecognised.
func classifyDocument(path string) (documentKind, string, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return kindUnknown, "", fmt.Errorf("failed to inspect document: %w", err)
	}

	for m := mime; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/pdf"):
			return kindPDF, mime.String(), nil
		case m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
			return kindDOCX, mime.String(), nil
		case m.Is("text/rtf"),
			m.Is("application/msword"),
			m.Is("application/vnd.oasis.opendocument.text"):
			return kindOffice, mime.String(), nil
		case strings.HasPrefix(m.String(), "image/"):
			return kindImage, mime.String(), nil
		case m.Is("text/plain"):
			return kindText, mime.String(), nil
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return kindPDF, mime.String(), nil
	case ".docx":
		return kindDOCX, mime.String(), nil
	case ".doc", ".rtf", ".odt":
		return kindOffice, mime.String(), nil
	case ".txt":
		return kindText, mime.String(), nil
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".webp":
		return kindImage, mime.String(), nil
	}
	return kindUnknown, mime.String(), nil
}

// extractPDF prefers the embedded text layer and falls back to pdftotext
// through docconv when no page yields text.
func (e *documentExtractor) extractPDF(path string) (string, error) {
	text, err := extractPDFText(path)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	e.logger.Warn("No embedded PDF text, falling back to docconv", "path", path, "err", err)

	return convertWithDocconv(path)
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func extractDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func convertWithDocconv(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert document: %w", err)
	}
	return res.Body, nil
}

// DocumentService wraps a TextExtractor and reports failures as a missing
// result instead of an error.
type DocumentService interface {
	ExtractText(ctx context.Context, path string) (string, bool)
}

type documentService struct {
	extractor TextExtractor
	logger    *slog.Logger
}

func NewDocumentService(extractor TextExtractor, logger *slog.Logger) DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		extractor: extractor,
		logger:    logger.With("component", "document_service"),
	}
}

func (s *documentService) ExtractText(ctx context.Context, path string) (string, bool) {
	raw, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		s.logger.Error("Error extracting document text", "path", path, "err", err)
		return "", false
	}

	text := CleanText(raw)
	if text == "" {
		s.logger.Warn("Document contains no text", "path", path)
		return "", false
	}
	return text, true
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
