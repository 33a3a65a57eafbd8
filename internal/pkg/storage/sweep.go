package storage

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
)

// SweepReport summarizes one reconciliation pass between the photo table and
// the files under the upload root.
type SweepReport struct {
	// OrphanFiles are files with no live photo row; the sweep removes them.
	OrphanFiles []string
	// MissingFiles are photo rows whose bytes are gone. They are reported,
	// not deleted, so an operator can decide whether to restore or drop them.
	MissingFiles []string
}

// ClassifyOrphans compares the set of files on disk against the file paths
// referenced by live photo rows.
func ClassifyOrphans(files []string, rowPaths []string) (orphans []string, missing []string) {
	referenced := make(map[string]bool, len(rowPaths))
	for _, p := range rowPaths {
		referenced[filepath.Clean(p)] = true
	}
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		cf := filepath.Clean(f)
		onDisk[cf] = true
		if !referenced[cf] {
			orphans = append(orphans, cf)
		}
	}
	for _, p := range rowPaths {
		if !onDisk[filepath.Clean(p)] {
			missing = append(missing, filepath.Clean(p))
		}
	}
	return orphans, missing
}

// SweepOrphans reconciles stored bytes with photo rows. Uploads write bytes
// before the row, so a crash in between leaves a file nobody references;
// this is the compensating cleanup for that window.
func SweepOrphans(db *gorm.DB, dryRun bool) (*SweepReport, error) {
	var rowPaths []string
	if err := db.Model(&models.PlantPhoto{}).Pluck("file_path", &rowPaths).Error; err != nil {
		return nil, err
	}

	var files []string
	originalRoot := Abs(OriginalDir)
	if _, statErr := os.Stat(originalRoot); os.IsNotExist(statErr) {
		// Nothing uploaded yet; every referenced file counts as missing.
		_, missing := ClassifyOrphans(nil, rowPaths)
		return &SweepReport{MissingFiles: missing}, nil
	}
	err := filepath.WalkDir(originalRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, relErr := filepath.Rel(UploadRoot(), path)
		if relErr != nil {
			return relErr
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	orphans, missing := ClassifyOrphans(files, rowPaths)
	report := &SweepReport{OrphanFiles: orphans, MissingFiles: missing}

	if dryRun {
		return report, nil
	}

	for _, rel := range orphans {
		if err := Remove(rel); err != nil {
			log.Printf("sweep: failed to remove orphan %s: %v", rel, err)
		}
	}
	return report, nil
}
