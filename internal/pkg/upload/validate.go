package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxPhotoBytes is the hard cap for a single plant photo. The web client
// enforces the same limit before calling the API; the server re-validates.
const MaxPhotoBytes = 5 * 1024 * 1024

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

// sniffableExt lists extensions whose magic bytes http.DetectContentType
// recognizes. Content arriving as octet-stream under one of these does not
// match its claimed type.
var sniffableExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// extMime types formats the sniffer cannot identify.
var extMime = map[string]string{
	".heic": "image/heic",
}

// ValidateSize rejects files above MaxPhotoBytes before anything is written.
func ValidateSize(size int64) error {
	if size > MaxPhotoBytes {
		return fmt.Errorf("photo exceeds the maximum size of %d MB", MaxPhotoBytes/(1024*1024))
	}
	if size <= 0 {
		return errors.New("photo file is empty")
	}
	return nil
}

// ValidateImageBySniff checks the provided filename (extension) and the first
// bytes (head) against a whitelist of image types. The returned mime is what
// gets persisted and always starts with image/; anything else is rejected
// before a single byte is stored.
func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("only JPG, JPEG, PNG, GIF, WEBP and HEIC photos are supported")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "", errors.New("SVG/XML files are not supported for security reasons")
	}

	// HEIC is detected as octet-stream because the sniffer does not know its
	// container; type it from the extension instead. Octet-stream under a
	// sniffable extension means the bytes are not the claimed image format.
	if detected == "application/octet-stream" {
		if sniffableExt[ext] {
			return "", errors.New("the file content does not match its extension")
		}
		if mime, ok := extMime[ext]; ok {
			return mime, nil
		}
		return "", errors.New("the file does not look like a supported photo")
	}

	if allowedMime[detected] && strings.HasPrefix(detected, "image/") {
		return detected, nil
	}

	return "", errors.New("the file does not look like a supported photo")
}

// SniffHeadLen is how many leading bytes content detection needs.
const SniffHeadLen = 512

// ReadSniffHead reads the detection window from the start of an upload.
// Files shorter than the window are fine; empty files are not.
func ReadSniffHead(r io.Reader) ([]byte, error) {
	head := make([]byte, SniffHeadLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New("photo file is empty")
	}
	return head[:n], nil
}
