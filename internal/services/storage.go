package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidUpload = errors.New("invalid upload")

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".odt":  true,
	".txt":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
}

// StorageService keeps uploads on local disk for the duration of a request.
type StorageService interface {
	SaveFile(file *multipart.FileHeader) (string, error)
	DeleteFile(path string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes the upload as <uuid>_<base name> and returns its path.
func (s *storageService) SaveFile(file *multipart.FileHeader) (string, error) {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(file.Filename, `\`, "/")))
	if name == "/" || name == "." {
		return "", fmt.Errorf("%w: missing file name", ErrInvalidUpload)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !allowedUploadExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported file extension %q", ErrInvalidUpload, ext)
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, s.maxFileSize)
	}

	if err := s.EnsureUploadDir(); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("%s_%s", uuid.New().String(), name))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := writeUpload(filePath, src); err != nil {
		return "", err
	}
	return filePath, nil
}

// writeUpload copies src to path. A partial file is removed on failure.
func writeUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// DeleteFile removes a file previously returned by SaveFile. Paths outside
// the upload directory are refused.
func (s *storageService) DeleteFile(path string) error {
	rel, err := filepath.Rel(s.uploadPath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to delete %s outside the upload directory", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
