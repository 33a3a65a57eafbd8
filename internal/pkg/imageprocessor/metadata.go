package imageprocessor

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// extractExifSummary pulls the camera model and capture time out of a
// photo's EXIF block. Photos without EXIF simply yield nil values.
func extractExifSummary(filePath string) (model *string, takenAt *time.Time) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Plenty of photos carry no EXIF data; not an error.
		log.Debug("no EXIF data: ", err)
		return nil, nil
	}

	if m, err := x.Get(exif.Model); err == nil {
		s := strings.TrimSpace(strings.Trim(m.String(), `"`))
		if s != "" {
			model = &s
		}
	}

	if dt, err := x.DateTime(); err == nil {
		takenAt = &dt
	}

	return model, takenAt
}
