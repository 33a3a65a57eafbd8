package upload

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

// Minimal valid file headers for content sniffing.
var (
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	gifHead  = []byte("GIF89a")
	htmlHead = []byte("<!DOCTYPE html><html><body>")
	// HEIF container start: box size + "ftypheic".
	heicHead = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}
)

func TestValidateImageBySniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		head     []byte
		wantMime string
		wantErr  bool
	}{
		{name: "jpeg", filename: "echinopsis.jpg", head: jpegHead, wantMime: "image/jpeg"},
		{name: "png", filename: "ariocarpus.png", head: pngHead, wantMime: "image/png"},
		{name: "gif", filename: "timelapse.gif", head: gifHead, wantMime: "image/gif"},
		{name: "disallowed extension", filename: "notes.txt", head: []byte("hello"), wantErr: true},
		{name: "html masquerading as jpg", filename: "evil.jpg", head: htmlHead, wantErr: true},
		{name: "svg blocked", filename: "drawing.svg", head: []byte("<?xml version=\"1.0\"?><svg/>"), wantErr: true},
		{name: "heic typed by extension", filename: "iphone.heic", head: heicHead, wantMime: "image/heic"},
		{name: "extension spoof with plain text", filename: "fake.png", head: []byte("just some text content here"), wantErr: true},
		{name: "random binary renamed to jpg", filename: "random.jpg", head: []byte{0x13, 0x37, 0xDE, 0xAD, 0xBE, 0xEF, 0x42, 0x99}, wantErr: true},
		{name: "random binary renamed to png", filename: "random.png", head: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mime, err := ValidateImageBySniff(tc.filename, tc.head)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, mime)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantMime, mime)
			// The stored type is always a real image type.
			assert.True(t, strings.HasPrefix(mime, "image/"))
		})
	}
}

func TestValidateSize(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateSize(2*1024))
	assert.NoError(t, ValidateSize(MaxPhotoBytes))
	assert.Error(t, ValidateSize(MaxPhotoBytes+1))
	assert.Error(t, ValidateSize(0))
	assert.Error(t, ValidateSize(-5))
}

func TestValidateSizeMessageMentionsLimit(t *testing.T) {
	t.Parallel()

	err := ValidateSize(MaxPhotoBytes * 2)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "5 MB"))
}

func TestReadSniffHead(t *testing.T) {
	t.Parallel()

	t.Run("short file is read whole", func(t *testing.T) {
		t.Parallel()
		head, err := ReadSniffHead(bytes.NewReader(gifHead))
		assert.NoError(t, err)
		assert.Equal(t, gifHead, head)
	})

	t.Run("long file is truncated to the window", func(t *testing.T) {
		t.Parallel()
		head, err := ReadSniffHead(bytes.NewReader(make([]byte, 4*SniffHeadLen)))
		assert.NoError(t, err)
		assert.Len(t, head, SniffHeadLen)
	})

	t.Run("empty file errors", func(t *testing.T) {
		t.Parallel()
		_, err := ReadSniffHead(bytes.NewReader(nil))
		assert.Error(t, err)
	})

	t.Run("one byte at a time still fills the window", func(t *testing.T) {
		t.Parallel()
		head, err := ReadSniffHead(iotest.OneByteReader(bytes.NewReader(pngHead)))
		assert.NoError(t, err)
		assert.Equal(t, pngHead, head)
	})
}
