package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// presignExpiry bounds how long artifact URLs stay fetchable. Rendering
// happens well within this window; completed projects keep the final
// video reference returned by the render service instead.
const presignExpiry = 72 * time.Hour

// Client stores generated artifacts (narration audio) on S3-compatible
// object storage and hands out presigned GET URLs.
type Client struct {
	minio  *minio.Client
	bucket string
}

func NewClient(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Client, error) {
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	return &Client{minio: mc, bucket: bucket}, nil
}

// Upload writes data under objectName and returns a presigned URL for it.
// The bucket is created on first use.
func (c *Client) Upload(ctx context.Context, objectName string, data []byte) (string, error) {
	exists, err := c.minio.BucketExists(ctx, c.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := c.minio.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	_, err = c.minio.PutObject(ctx, c.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeFor(objectName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	presigned, err := c.minio.PresignedGetObject(ctx, c.bucket, objectName, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}

	return presigned.String(), nil
}

func contentTypeFor(objectName string) string {
	switch filepath.Ext(objectName) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
