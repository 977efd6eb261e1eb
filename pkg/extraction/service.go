package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"academic-workflow-be/internal/entity"
)

var ErrUnsupportedFileType = errors.New("unsupported file type for extraction")

// Service turns an uploaded document into plain text. The pipeline only
// needs UTF-8 text and a status; how the text is obtained is this
// package's concern.
type Service interface {
	ExtractText(ctx context.Context, document *entity.Document) (string, error)
}

// PlainTextService reads text-like files straight from disk. Binary
// formats (pdf, docx) need a richer extractor and are rejected here.
type PlainTextService struct {
	baseDir string
}

func NewPlainTextService(baseDir string) *PlainTextService {
	return &PlainTextService{baseDir: baseDir}
}

func (s *PlainTextService) ExtractText(ctx context.Context, document *entity.Document) (string, error) {
	switch strings.ToLower(document.FileType) {
	case "txt", "md", "markdown", "text/plain", "text/markdown":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, document.FileType)
	}

	path := document.StoragePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", document.Id, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid utf-8", ErrUnsupportedFileType, document.OriginalFilename)
	}
	return string(data), nil
}
