package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrBackupNotConfigured is returned when no backup bucket is set.
var ErrBackupNotConfigured = errors.New("backup not configured: S3_BUCKET unset")

// BackupService copies a user's SQLite file to S3 as an off-site snapshot.
// SQLite in WAL mode keeps the main file consistent for readers, so a plain
// file copy is a usable snapshot.
type BackupService struct {
	client *s3.Client
	bucket string
}

// NewBackupService loads the default AWS configuration. bucket may be empty,
// in which case Backup reports ErrBackupNotConfigured.
func NewBackupService(ctx context.Context, bucket, region string) (*BackupService, error) {
	if bucket == "" {
		return &BackupService{}, nil
	}
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BackupService{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Enabled reports whether a bucket is configured.
func (s *BackupService) Enabled() bool { return s.client != nil }

// Backup uploads the store file at path and returns the object key.
func (s *BackupService) Backup(ctx context.Context, userID, path string) (string, error) {
	if !s.Enabled() {
		return "", ErrBackupNotConfigured
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read store file: %w", err)
	}

	key := fmt.Sprintf("backups/%s/%d.sqlite", userID, time.Now().UnixNano())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/vnd.sqlite3"),
	})
	if err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	return key, nil
}
