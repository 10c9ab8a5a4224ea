package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	appconfig "mindspark/internal/config"
	"mindspark/internal/domain"
	"mindspark/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Storage uploads objects to an S3 compatible bucket such as AWS S3,
// Cloudflare R2 or MinIO.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL *url.URL
}

// NewS3Storage returns (nil, nil) when storage is not configured so callers
// can run with uploads disabled.
func NewS3Storage(ctx context.Context, cfg appconfig.StorageConfig) (*S3Storage, error) {
	if !cfg.Enabled() {
		logger.Get().Warn("Object storage not configured, avatar uploads are disabled")
		return nil, nil
	}

	base, err := url.Parse(cfg.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("invalid storage public URL: %w", err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Get().Info("Object storage client initialized", zap.String("bucket", cfg.Bucket), zap.String("endpoint", cfg.Endpoint))
	return &S3Storage{client: client, bucket: cfg.Bucket, publicURL: base}, nil
}

// Upload stores body under key and returns the object's public URL.
func (s *S3Storage) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if s == nil || s.client == nil {
		return "", domain.NewStorageUnavailableError(fmt.Errorf("storage client not initialized"))
	}

	// The SDK needs a seekable body to compute checksums over plain HTTP endpoints.
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload body: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		logger.Get().Error("Failed to upload object", zap.String("key", key), zap.Error(err))
		return "", domain.NewStorageUnavailableError(fmt.Errorf("failed to upload %s: %w", key, err))
	}

	u := *s.publicURL
	u.Path = path.Join(u.Path, key)
	return u.String(), nil
}

var _ domain.ObjectStorage = (*S3Storage)(nil)
