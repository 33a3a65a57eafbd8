package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	assert.NoError(t, err)
	return ts
}

func TestClassifyOrphans(t *testing.T) {
	t.Parallel()

	files := []string{
		filepath.Join("original", "2026", "08", "a.jpg"),
		filepath.Join("original", "2026", "08", "b.jpg"),
		filepath.Join("original", "2026", "07", "stale.jpg"),
	}
	rows := []string{
		filepath.Join("original", "2026", "08", "a.jpg"),
		filepath.Join("original", "2026", "08", "b.jpg"),
		filepath.Join("original", "2026", "06", "gone.jpg"),
	}

	orphans, missing := ClassifyOrphans(files, rows)

	assert.Equal(t, []string{filepath.Join("original", "2026", "07", "stale.jpg")}, orphans)
	assert.Equal(t, []string{filepath.Join("original", "2026", "06", "gone.jpg")}, missing)
}

func TestClassifyOrphansEmptySets(t *testing.T) {
	t.Parallel()

	orphans, missing := ClassifyOrphans(nil, nil)
	assert.Empty(t, orphans)
	assert.Empty(t, missing)

	orphans, missing = ClassifyOrphans([]string{"original/x.jpg"}, nil)
	assert.Equal(t, []string{filepath.Clean("original/x.jpg")}, orphans)
	assert.Empty(t, missing)
}

func TestNewObjectPathAndThumbnailPath(t *testing.T) {
	t.Parallel()

	rel := NewObjectPath("1f2e3d", ".jpg", mustTime(t, "2026-08-30T10:00:00Z"))
	assert.Equal(t, filepath.Join("original", "2026", "08", "1f2e3d.jpg"), rel)

	thumb := ThumbnailPath("small", rel, "1f2e3d")
	assert.Equal(t, filepath.Join("thumbnails", "small", "webp", "2026", "08", "1f2e3d.webp"), thumb)
}
