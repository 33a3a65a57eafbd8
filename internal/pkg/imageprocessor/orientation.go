package imageprocessor

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ReadOrientation returns the EXIF orientation tag (1-8) of the image, or 1
// when the file carries no usable EXIF data.
func ReadOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// NormalizeOrientation bakes the EXIF orientation into the pixel data so
// every stored image reads top-left first. Orientation values follow the
// EXIF 2.2 table.
func NormalizeOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		// 90 degrees clockwise
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		// 90 degrees counter-clockwise
		return imaging.Rotate90(img)
	default:
		return img
	}
}
