package storage

import (
	"context"
	"io"
	"time"
)

// Service stores uploaded media (testimony images, profile pictures) and
// hands back URLs clients can load.
type Service interface {
	UploadObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	ObjectURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
