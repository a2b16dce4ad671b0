package printing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// DocumentArchive stores exported documents.
type DocumentArchive interface {
	// Store saves content under key and returns where it can be fetched.
	Store(ctx context.Context, key, contentType string, content []byte) (*ArchivedDocument, error)
	// Get opens a stored document.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a stored document. Missing documents are not an error.
	Delete(ctx context.Context, key string) error
}

// ArchivedDocument describes a stored export.
type ArchivedDocument struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ArchiveKey returns exports/<projectID>/<filename>.
func ArchiveKey(projectID, filename string) string {
	return "exports/" + projectID + "/" + filepath.Base(filename)
}

// FileSystemArchiveConfig contains configuration for file system archiving
type FileSystemArchiveConfig struct {
	// BasePath is the root directory. Default: ./data/invoices
	BasePath string
	// BaseURL is the URL prefix reported for stored documents
	BaseURL string
	Logger  *zap.Logger
}

// FileSystemArchive stores documents on the local file system
type FileSystemArchive struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewFileSystemArchive creates the archive and its base directory.
func NewFileSystemArchive(cfg FileSystemArchiveConfig) (*FileSystemArchive, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./data/invoices"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/files"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create archive directory: %s", cfg.BasePath), err)
	}
	return &FileSystemArchive{basePath: cfg.BasePath, baseURL: strings.TrimSuffix(cfg.BaseURL, "/"), logger: cfg.Logger}, nil
}

// Store writes content to {base}/{key}.
func (a *FileSystemArchive) Store(ctx context.Context, key, contentType string, content []byte) (*ArchivedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if len(content) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "document is empty", nil)
	}
	fullPath, err := a.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory", err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write document", err)
	}

	doc := &ArchivedDocument{Key: key, URL: a.url(key), Size: int64(len(content))}
	a.logger.Info("document archived",
		zap.String("path", fullPath),
		zap.String("content_type", contentType),
		zap.Int64("size", doc.Size))
	return doc, nil
}

// Get opens a stored document.
func (a *FileSystemArchive) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	fullPath, err := a.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewRenderError(ErrCodeStorageFailed, "document not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open document", err)
	}
	return f, nil
}

// Delete removes a stored document.
func (a *FileSystemArchive) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	fullPath, err := a.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return NewRenderError(ErrCodeStorageFailed, "failed to delete document", err)
	}
	a.logger.Info("document deleted", zap.String("key", key))
	return nil
}

// resolve maps a key to a path under the base directory, rejecting keys
// that would escape it.
func (a *FileSystemArchive) resolve(key string) (string, error) {
	clean := filepath.Clean(key)
	if key == "" || filepath.IsAbs(clean) || containsDotDot(key) {
		a.logger.Warn("blocked archive key", zap.String("key", key))
		return "", NewRenderError(ErrCodeInvalidPath, "invalid path", nil)
	}

	absBase, err := filepath.Abs(a.basePath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(filepath.Join(a.basePath, clean))
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve file path", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		a.logger.Warn("path escape attempt blocked",
			zap.String("key", key),
			zap.String("absPath", absPath))
		return "", NewRenderError(ErrCodeInvalidPath, "invalid path", nil)
	}
	return absPath, nil
}

func (a *FileSystemArchive) url(key string) string {
	return a.baseURL + "/" + filepath.ToSlash(filepath.Clean(key))
}

// containsDotDot reports whether the raw path has a ".." component.
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	return slices.Contains(parts, "..")
}

var _ DocumentArchive = (*FileSystemArchive)(nil)
