package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cactilog/cactilog/internal/pkg/env"
)

// Subdirectories under the upload root.
const (
	OriginalDir   = "original"
	ThumbnailsDir = "thumbnails"
)

// UploadRoot returns the directory holding all uploaded photo bytes.
func UploadRoot() string {
	return env.GetEnv("UPLOAD_ROOT", "./uploads")
}

// NewObjectPath builds the relative path for a freshly uploaded original:
// original/YYYY/MM/<name><ext>.
func NewObjectPath(name, ext string, now time.Time) string {
	return filepath.Join(OriginalDir, fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())), name+ext)
}

// ThumbnailPath builds the relative path for a generated thumbnail of the
// given size ("small" or "medium").
func ThumbnailPath(size, originalRel, name string) string {
	rel := filepath.Dir(originalRel)
	// strip the leading original/ segment, thumbnails mirror the date layout
	if r, err := filepath.Rel(OriginalDir, rel); err == nil {
		rel = r
	}
	return filepath.Join(ThumbnailsDir, size, "webp", rel, name+".webp")
}

// Abs resolves a relative object path against the upload root.
func Abs(rel string) string {
	return filepath.Join(UploadRoot(), rel)
}

// Exists reports whether the object exists on disk.
func Exists(rel string) bool {
	_, err := os.Stat(Abs(rel))
	return err == nil
}

// Save writes the object bytes, creating parent directories as needed.
// Returns the number of bytes written.
func Save(rel string, src io.Reader) (int64, error) {
	abs := Abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return 0, fmt.Errorf("error creating directory %s: %w", filepath.Dir(abs), err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return 0, fmt.Errorf("error creating file %s: %w", abs, err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(abs)
		return 0, fmt.Errorf("error writing file %s: %w", abs, err)
	}
	return n, nil
}

// Remove deletes the object bytes. A missing file is not an error so delete
// retries and sweeps stay idempotent.
func Remove(rel string) error {
	err := os.Remove(Abs(rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
