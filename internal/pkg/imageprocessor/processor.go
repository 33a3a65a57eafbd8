package imageprocessor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/internal/pkg/database"
	"github.com/cactilog/cactilog/internal/pkg/s3backup"
	"github.com/cactilog/cactilog/internal/pkg/storage"
)

// Thumbnail sizes
const (
	SmallThumbnailSize  = 200
	MediumThumbnailSize = 500
)

const MaxWorkers = 3

// Processor handles photo post-processing with a worker pool: EXIF
// orientation fix, thumbnail generation and optional S3 backup.
type Processor struct {
	jobs            chan *ProcessJob
	wg              sync.WaitGroup
	started         bool
	mutex           sync.Mutex
	activeProcesses int32
}

// ProcessJob represents a single photo processing job
type ProcessJob struct {
	Photo *models.PlantPhoto
}

// Global processor instance
var processor *Processor
var once sync.Once

// GetProcessor returns the singleton photo processor instance
func GetProcessor() *Processor {
	once.Do(func() {
		processor = &Processor{
			jobs: make(chan *ProcessJob, 100),
		}
		processor.Start()
	})
	return processor
}

// Start initializes the worker pool
func (p *Processor) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started {
		return
	}

	p.started = true
	for i := 0; i < MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	log.Info("[Processor] Started worker pool with ", MaxWorkers, " workers")
}

// Stop gracefully shuts down the worker pool
func (p *Processor) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		return
	}

	close(p.jobs)
	p.wg.Wait()
	p.started = false
	log.Info("[Processor] Worker pool stopped")
}

// worker processes jobs from the queue
func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		atomic.AddInt32(&p.activeProcesses, 1)
		log.Info(fmt.Sprintf("[Processor] Worker %d processing photo %s (Active: %d)",
			id, job.Photo.UUID, atomic.LoadInt32(&p.activeProcesses)))

		err := processPhoto(job.Photo)
		atomic.AddInt32(&p.activeProcesses, -1)

		if err != nil {
			SetPhotoStatus(job.Photo.UUID, STATUS_FAILED)
			log.Error(fmt.Sprintf("[Processor] Worker %d failed to process photo %s: %v", id, job.Photo.UUID, err))
		}
	}
}

// Enqueue adds a photo to the processing queue
func (p *Processor) Enqueue(photo *models.PlantPhoto) {
	if !p.started {
		p.Start()
	}

	p.jobs <- &ProcessJob{Photo: photo}
}

// ProcessPhoto queues a photo for asynchronous processing
func ProcessPhoto(photo *models.PlantPhoto) {
	SetPhotoStatus(photo.UUID, STATUS_PENDING)
	GetProcessor().Enqueue(photo)
}

// ReprocessPhoto runs the processing pipeline synchronously. Used by the
// offline maintenance tool, which wants errors back instead of a queue.
func ReprocessPhoto(photo *models.PlantPhoto) error {
	return processPhoto(photo)
}

// processPhoto normalizes orientation, generates WebP thumbnails, extracts
// EXIF metadata and updates the photo row.
func processPhoto(photo *models.PlantPhoto) error {
	SetPhotoStatus(photo.UUID, STATUS_PROCESSING)

	originalAbs := storage.Abs(photo.FilePath)

	orientation := 1
	if f, err := os.Open(originalAbs); err == nil {
		orientation = ReadOrientation(f)
		f.Close()
	}

	img, err := imaging.Open(originalAbs)
	if err != nil {
		return fmt.Errorf("error opening original photo: %w", err)
	}
	img = NormalizeOrientation(img, orientation)

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	hasThumbnail := true
	for size, px := range map[string]int{"small": SmallThumbnailSize, "medium": MediumThumbnailSize} {
		thumb := imaging.Resize(img, px, 0, imaging.Lanczos)
		rel := storage.ThumbnailPath(size, photo.FilePath, photo.UUID)
		if err := saveWebP(thumb, storage.Abs(rel)); err != nil {
			hasThumbnail = false
			log.Error(fmt.Sprintf("Error saving %s thumbnail for %s: %v", size, photo.UUID, err))
		}
	}
	img = nil

	updates := map[string]interface{}{
		"width":         width,
		"height":        height,
		"has_thumbnail": hasThumbnail,
	}
	if model, takenAt := extractExifSummary(originalAbs); model != nil || takenAt != nil {
		if model != nil {
			updates["camera_model"] = *model
		}
		if takenAt != nil {
			updates["taken_at"] = *takenAt
		}
	}

	db := database.GetDB()
	if err := db.Model(photo).Updates(updates).Error; err != nil {
		return fmt.Errorf("error updating photo row: %w", err)
	}

	// Off-site copy of the original, best effort.
	s3backup.BackupOriginal(photo)

	SetPhotoStatus(photo.UUID, STATUS_COMPLETED)
	log.Info(fmt.Sprintf("[Processor] Photo processing completed for %s", photo.UUID))
	return nil
}

// saveWebP saves an image in WebP format
func saveWebP(img image.Image, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating WebP file: %w", err)
	}
	defer output.Close()

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, 85)
	if err != nil {
		return fmt.Errorf("error creating encoder options: %w", err)
	}

	if err := webp.Encode(output, img, options); err != nil {
		return fmt.Errorf("error encoding WebP image: %w", err)
	}

	return nil
}
