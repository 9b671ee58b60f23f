package bucket

import (
	"context"
	"fmt"
	"io"
	"strings"

	"waitlist-service/internal/config"
	"waitlist-service/internal/observability"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client stores vendor certificates in an S3 compatible bucket
type Client struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	logger        *observability.Logger
}

// NewClient creates a bucket client. It returns nil when no endpoint is
// configured, which disables uploads.
func NewClient(cfg config.StorageConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.UploadsEnabled() {
		logger.Info(context.Background(), "S3 endpoint not set, certificate uploads disabled")
		return nil, nil
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate storage client: %w", err)
	}

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "https"
		if !cfg.UseSSL {
			scheme = "http"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Client{
		client:        cli,
		bucket:        cfg.Bucket,
		publicBaseURL: base,
		logger:        logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check certificate storage bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create certificate storage bucket: %w", err)
	}
	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "bucket", Value: c.bucket}), "created certificate bucket")
	return nil
}

// Upload stores body under key and returns its public URL
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "object_key", Value: key},
		observability.Field{Key: "size", Value: size},
	)

	_, err := c.client.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to put object", err)
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	c.logger.Info(ctx, "certificate uploaded")
	return c.ObjectURL(key), nil
}

// Remove deletes the object stored under key
func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

// ObjectURL returns the public URL of key
func (c *Client) ObjectURL(key string) string {
	return c.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}
