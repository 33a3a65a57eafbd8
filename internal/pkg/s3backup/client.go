package s3backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/internal/pkg/storage"
)

// Client wraps the S3 client with backup-specific functionality
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new S3 backup client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("S3 backup is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible providers need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	if err := client.testConnection(); err != nil {
		return nil, fmt.Errorf("failed to connect to S3: %w", err)
	}

	log.Infof("[S3Backup] Successfully initialized S3 client for bucket: %s", cfg.BucketName)
	return client, nil
}

// testConnection tests the S3 connection by checking if the bucket exists
func (c *Client) testConnection() error {
	_, err := c.s3Client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(c.config.BucketName),
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", c.config.BucketName, err)
	}
	return nil
}

// UploadFile uploads a local file to S3 under the given object key
func (c *Client) UploadFile(localFilePath, objectKey string) error {
	file, err := os.Open(localFilePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localFilePath, err)
	}
	defer file.Close()

	_, err = c.s3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(objectKey),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	return nil
}

// DeleteObject removes a backed-up object from S3
func (c *Client) DeleteObject(objectKey string) error {
	_, err := c.s3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", objectKey, err)
	}
	return nil
}

var (
	sharedClient *Client
	sharedOnce   sync.Once
)

func getSharedClient() *Client {
	sharedOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			log.Warnf("[S3Backup] Invalid configuration, backups disabled: %v", err)
			return
		}
		if !cfg.IsEnabled() {
			return
		}
		client, err := NewClient(cfg)
		if err != nil {
			log.Warnf("[S3Backup] Client init failed, backups disabled: %v", err)
			return
		}
		sharedClient = client
	})
	return sharedClient
}

// BackupOriginal copies a photo's original bytes to the backup bucket.
// Best effort: when backups are disabled or fail the photo pipeline
// continues untouched.
func BackupOriginal(photo *models.PlantPhoto) {
	client := getSharedClient()
	if client == nil {
		return
	}

	ext := filepath.Ext(photo.FileName)
	key := client.config.GetObjectKey(photo.UUID, ext, photo.CreatedAt.Year(), int(photo.CreatedAt.Month()))
	if err := client.UploadFile(storage.Abs(photo.FilePath), key); err != nil {
		log.Warnf("[S3Backup] Backup of photo %s failed: %v", photo.UUID, err)
		return
	}
	log.Infof("[S3Backup] Backed up photo %s as %s", photo.UUID, key)
}
