package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/internal/pkg/database"
	"github.com/cactilog/cactilog/internal/pkg/env"
	"github.com/cactilog/cactilog/internal/pkg/imageprocessor"
	"github.com/cactilog/cactilog/internal/pkg/storage"
)

// imagetool is the offline maintenance companion to the upload pipeline. It
// runs one batch over the photo table and exits; scheduling is cron's job.
//
//	fix-orientation     re-run EXIF normalization and thumbnails for all photos
//	resize              regenerate thumbnails only
//	rotate UUID DEG     rotate one photo by 90/180/270 degrees
//	sweep [--dry-run]   reconcile files on disk against photo rows

const batchPauseEvery = 25
const batchPause = 500 * time.Millisecond

// rotatableExt reports whether the original can be re-encoded in place after
// rotation. imaging.Save supports jpeg, png, gif, tiff and bmp; webp and heic
// decode fine but cannot be written back.
func rotatableExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	database.SetupDatabase()
	db := database.GetDB()

	switch os.Args[1] {
	case "fix-orientation", "resize":
		// Both walk every photo through the same processing path; orientation
		// normalization is part of it either way.
		var photos []models.PlantPhoto
		if err := db.Find(&photos).Error; err != nil {
			log.Fatalf("Error loading photos: %v", err)
		}

		processed, failed := 0, 0
		for i := range photos {
			photo := &photos[i]
			if !storage.Exists(photo.FilePath) {
				log.Printf("skipping %s: original missing (%s)", photo.UUID, photo.FilePath)
				failed++
				continue
			}
			if err := imageprocessor.ReprocessPhoto(photo); err != nil {
				log.Printf("failed to process %s: %v", photo.UUID, err)
				failed++
			} else {
				processed++
			}
			// Sequential on purpose: this shares disk and DB with the live
			// app, so pause between chunks instead of saturating them.
			if (i+1)%batchPauseEvery == 0 {
				time.Sleep(batchPause)
			}
		}
		log.Printf("done: %d processed, %d failed, %d total", processed, failed, len(photos))

	case "rotate":
		if len(os.Args) < 4 {
			log.Fatalf("Usage: imagetool rotate UUID DEGREES")
		}
		degrees, err := strconv.Atoi(os.Args[3])
		if err != nil || (degrees != 90 && degrees != 180 && degrees != 270) {
			log.Fatalf("Degrees must be 90, 180 or 270")
		}

		photo, err := models.FindPhotoByUUID(db, os.Args[2])
		if err != nil {
			log.Fatalf("Photo %s not found: %v", os.Args[2], err)
		}

		// The encoder picks its format from the extension and cannot write
		// webp or heic; bail out before decoding anything.
		if ext := strings.ToLower(filepath.Ext(photo.FileName)); !rotatableExt(ext) {
			log.Fatalf("Cannot rotate %s originals (%s): re-encoding %s is not supported, re-upload the photo instead", ext, photo.UUID, ext)
		}

		abs := storage.Abs(photo.FilePath)
		img, err := imaging.Open(abs)
		if err != nil {
			log.Fatalf("Error opening %s: %v", abs, err)
		}
		// imaging rotates counter-clockwise; operators think clockwise.
		switch degrees {
		case 90:
			img = imaging.Rotate270(img)
		case 180:
			img = imaging.Rotate180(img)
		case 270:
			img = imaging.Rotate90(img)
		}
		if err := imaging.Save(img, abs); err != nil {
			log.Fatalf("Error saving %s: %v", abs, err)
		}
		if err := imageprocessor.ReprocessPhoto(photo); err != nil {
			log.Fatalf("Rotated, but thumbnail regeneration failed: %v", err)
		}
		log.Printf("rotated %s by %d degrees", photo.UUID, degrees)

	case "sweep":
		dryRun := len(os.Args) > 2 && os.Args[2] == "--dry-run"
		report, err := storage.SweepOrphans(db, dryRun)
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		for _, f := range report.OrphanFiles {
			if dryRun {
				log.Printf("orphan (kept, dry run): %s", f)
			} else {
				log.Printf("orphan removed: %s", f)
			}
		}
		for _, f := range report.MissingFiles {
			log.Printf("missing bytes for row: %s", f)
		}
		log.Printf("sweep done: %d orphans, %d rows with missing bytes", len(report.OrphanFiles), len(report.MissingFiles))

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/imagetool/main.go [command]")
	fmt.Println("Available commands:")
	fmt.Println("  fix-orientation   - re-run orientation normalization and thumbnails for all photos")
	fmt.Println("  resize            - regenerate thumbnails for all photos")
	fmt.Println("  rotate UUID DEG   - rotate one photo clockwise by 90, 180 or 270 degrees")
	fmt.Println("  sweep [--dry-run] - remove files on disk that no photo row references")
}
