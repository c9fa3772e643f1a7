package services

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveAndDeleteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir, 1024)

	path, err := storage.SaveFile(fileHeader(t, "Jane Doe CV.pdf", []byte("%PDF-1.4 test")))
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("saved to %s, want a file under %s", path, dir)
	}
	if !strings.HasSuffix(filepath.Base(path), "_Jane Doe CV.pdf") {
		t.Errorf("file name = %s, want <uuid>_Jane Doe CV.pdf", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.4 test" {
		t.Fatalf("saved content = %q, %v", data, err)
	}

	if err := storage.DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after delete: %v", err)
	}
}

func TestWriteUploadRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.pdf")
	src := io.MultiReader(strings.NewReader("%PDF-1.4 half"), iotest.ErrReader(errors.New("connection dropped")))

	err := writeUpload(path, src)
	if err == nil || !strings.Contains(err.Error(), "connection dropped") {
		t.Fatalf("writeUpload() error = %v, want the read failure", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("partial upload left behind: stat err = %v", err)
	}
}

func TestSaveFileStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir, 0)

	path, err := storage.SaveFile(fileHeader(t, `..\..\etc\resume.txt`, []byte("hello")))
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, "_resume.txt") {
		t.Errorf("path = %s, want a file directly under %s", path, dir)
	}
}

func TestSaveFileRejects(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 4)

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"unsupported extension", "payload.exe", "MZ"},
		{"too large", "resume.txt", "more than four bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.SaveFile(fileHeader(t, tt.filename, []byte(tt.content)))
			if !errors.Is(err, ErrInvalidUpload) {
				t.Fatalf("error = %v, want ErrInvalidUpload", err)
			}
		})
	}
}

func TestDeleteFileOutsideUploadDir(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "uploads"), 0)
	outside := writeFile(t, "keep.txt", []byte("keep"))

	if err := storage.DeleteFile(outside); err == nil {
		t.Fatal("expected DeleteFile to refuse a path outside the upload directory")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the upload dir was touched: %v", err)
	}
}
