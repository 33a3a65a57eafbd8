package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotatableExt(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif"} {
		assert.True(t, rotatableExt(ext), ext)
	}
	// Decodable but not re-encodable: rotate must refuse these up front
	// instead of failing after the decode.
	for _, ext := range []string{".webp", ".heic", ".svg", ""} {
		assert.False(t, rotatableExt(ext), ext)
	}
}
