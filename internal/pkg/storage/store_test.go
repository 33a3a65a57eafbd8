package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectPath(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)
	got := NewObjectPath("abc-123", ".jpg", now)
	assert.Equal(t, filepath.Join("original", "2025", "03", "abc-123.jpg"), got)
}

func TestThumbnailPath(t *testing.T) {
	t.Parallel()

	original := filepath.Join("original", "2025", "03", "abc-123.jpg")

	small := ThumbnailPath("small", original, "abc-123")
	assert.Equal(t, filepath.Join("thumbnails", "small", "webp", "2025", "03", "abc-123.webp"), small)

	medium := ThumbnailPath("medium", original, "abc-123")
	assert.Equal(t, filepath.Join("thumbnails", "medium", "webp", "2025", "03", "abc-123.webp"), medium)
}
