package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadRoundTrip(t *testing.T) {
	root := t.TempDir()
	svc := NewLocalService(root, "/media")

	url, err := svc.UploadObject(context.Background(), "uploads/pic.png", "image/png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/uploads/pic.png", url)

	data, err := os.ReadFile(filepath.Join(root, "uploads", "pic.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalRejectsTraversalKeys(t *testing.T) {
	svc := NewLocalService(t.TempDir(), "/media")

	for _, key := range []string{"../escape.png", "..", ""} {
		_, err := svc.UploadObject(context.Background(), key, "image/png", strings.NewReader("x"))
		assert.Error(t, err, "key %q should be rejected", key)
	}
}
