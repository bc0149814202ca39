// internal/adapters/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ammerola/coffeechain-sync/internal/core/ports"
)

// ArchivePrefix is the top-level key prefix for archived payloads
const ArchivePrefix = "inventory"

// Uploader is the subset of manager.Uploader in use
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
}

// S3Archive stores raw inventory payloads in S3
type S3Archive struct {
	uploader Uploader
	bucket   string
	now      func() time.Time
	logger   *slog.Logger
}

// Statically assert that *S3Archive implements the PayloadArchive interface.
var _ ports.PayloadArchive = (*S3Archive)(nil)

// NewS3Archive creates an archive backed by a new S3 client
func NewS3Archive(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Archive, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("S3 archive initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region))

	return NewS3ArchiveWithUploader(manager.NewUploader(client), cfg.Bucket, logger), nil
}

// NewS3ArchiveWithUploader creates an archive around an existing uploader
func NewS3ArchiveWithUploader(uploader Uploader, bucket string, logger *slog.Logger) *S3Archive {
	return &S3Archive{
		uploader: uploader,
		bucket:   bucket,
		now:      time.Now,
		logger:   logger.With(slog.String("storage", "s3")),
	}
}

// buildAWSConfig builds AWS configuration
func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	// Otherwise use default credential chain
	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

// ObjectKey returns the key a payload fetched at t by runID is stored under
func ObjectKey(runID string, t time.Time) string {
	t = t.UTC()
	return path.Join(
		ArchivePrefix,
		t.Format("2006"),
		t.Format("01"),
		t.Format("02"),
		runID+".json",
	)
}

// Archive uploads payload and returns its location
func (s *S3Archive) Archive(ctx context.Context, runID string, payload []byte) (string, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	archivedAt := s.now()
	key := ObjectKey(runID, archivedAt)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"archived-at": archivedAt.UTC().Format(time.RFC3339),
			"run-id":      runID,
		},
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload payload: %w", err)
	}

	location := result.Location
	if location == "" {
		location = fmt.Sprintf("s3://%s/%s", s.bucket, key)
	}

	s.logger.InfoContext(ctx, "inventory payload archived",
		slog.String("key", key),
		slog.Int("size", len(payload)),
		slog.String("location", location))

	return location, nil
}
