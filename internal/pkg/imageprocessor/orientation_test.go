package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// asymmetric 2x1 test image: red pixel left, blue pixel right
func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	return img
}

func TestNormalizeOrientationIdentity(t *testing.T) {
	t.Parallel()

	src := testImage()
	for _, o := range []int{0, 1, 9, -3} {
		out := NormalizeOrientation(src, o)
		assert.Equal(t, src.Bounds(), out.Bounds(), "orientation %d", o)
	}
}

func TestNormalizeOrientationRotations(t *testing.T) {
	t.Parallel()

	src := testImage()

	// 90 degree rotations swap the axes
	for _, o := range []int{5, 6, 7, 8} {
		out := NormalizeOrientation(src, o)
		assert.Equal(t, 1, out.Bounds().Dx(), "orientation %d", o)
		assert.Equal(t, 2, out.Bounds().Dy(), "orientation %d", o)
	}

	// 180 degree rotation keeps dimensions but mirrors content
	out := NormalizeOrientation(src, 3)
	assert.Equal(t, src.Bounds(), out.Bounds())
	r, _, _, _ := out.At(1, 0).RGBA()
	assert.NotZero(t, r, "red pixel should have moved to the right edge")
}

func TestNormalizeOrientationFlipH(t *testing.T) {
	t.Parallel()

	out := NormalizeOrientation(testImage(), 2)
	r, _, _, _ := out.At(1, 0).RGBA()
	assert.NotZero(t, r, "red pixel should have moved to the right edge")
}

func TestReadOrientationWithoutExif(t *testing.T) {
	t.Parallel()

	// Plain bytes carry no EXIF; the reader must fall back to 1.
	assert.Equal(t, 1, ReadOrientation(bytes.NewReader([]byte("not a jpeg"))))
	assert.Equal(t, 1, ReadOrientation(bytes.NewReader(nil)))
}
