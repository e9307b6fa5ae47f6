// Package upload stores user-supplied images on local disk.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"inkpost/internal/domain"
)

// URLPrefix is the path uploaded files are served under.
const URLPrefix = "/uploads/"

// allowedImageTypes are the MIME types accepted as images. SVG is not
// accepted since it can carry script.
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Upload describes a stored file.
type Upload struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// ImageStore writes images under a directory with random names.
type ImageStore struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

// NewImageStore creates dir if needed.
func NewImageStore(dir string, maxBytes int64, logger *slog.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &ImageStore{dir: dir, maxBytes: maxBytes, logger: logger}, nil
}

// Dir returns the directory files are written to.
func (s *ImageStore) Dir() string { return s.dir }

// SaveImage reads r to the end, checks the content is an allowed image no
// larger than the store limit, and writes it to disk. The returned URL is
// relative to the server root.
func (s *ImageStore) SaveImage(ctx context.Context, r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, &domain.ValidationError{Message: "file is empty"}
	}
	if int64(len(data)) > s.maxBytes {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("file exceeds %d bytes", s.maxBytes)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unsupported file type %s", mtype.String())}
	}

	name := uuid.NewString() + mtype.Extension()
	if err := s.write(name, data); err != nil {
		return nil, err
	}

	s.logger.Info("image uploaded",
		"name", name,
		"mime_type", mtype.String(),
		"size", len(data),
	)

	return &Upload{
		URL:      URLPrefix + name,
		Name:     name,
		MIMEType: mtype.String(),
		Size:     int64(len(data)),
	}, nil
}

// write stores data atomically: readers never see a partial file.
func (s *ImageStore) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("store upload: %w", err)
	}
	return nil
}

// Open returns a stored file by name. Names that would leave the upload
// directory are not found.
func (s *ImageStore) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("upload not found: %s", name)}
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("upload not found: %s", name)}
		}
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}
