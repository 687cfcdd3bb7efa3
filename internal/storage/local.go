package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// LocalService writes media under a directory on disk and returns URL paths
// the HTTP server serves statically. Useful for development and deployments
// without object storage.
type LocalService struct {
	root    string
	baseURL string
}

func NewLocalService(root, baseURL string) *LocalService {
	return &LocalService{
		root:    filepath.Clean(root),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

var _ Service = (*LocalService)(nil)

func (s *LocalService) UploadObject(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	clean, err := s.safeKey(key)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}

	return s.ObjectURL(ctx, clean, 0)
}

func (s *LocalService) ObjectURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	clean, err := s.safeKey(key)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + clean, nil
}

// safeKey rejects keys that would escape the media root.
func (s *LocalService) safeKey(key string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(key, "/"))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return clean, nil
}
