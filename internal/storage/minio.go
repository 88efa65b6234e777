package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dealcraft/dealcraft-server/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImagePrefix is the object key prefix for product images.
const ImagePrefix = "products/"

// PresignTTL is how long image URLs handed to clients stay valid.
const PresignTTL = 7 * 24 * time.Hour

// MinIOStorage is a thin wrapper around the minio client used for product images.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage creates a new MinIO storage client and ensures the bucket exists.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOStorage{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Uploaded describes a stored image.
type Uploaded struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadImage stores an image under a fresh key and returns a presigned GET URL for it.
func (s *MinIOStorage) UploadImage(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (Uploaded, error) {
	key := ImageKey(filename)
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return Uploaded{}, fmt.Errorf("put %s: %w", key, err)
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, PresignTTL, make(url.Values))
	if err != nil {
		return Uploaded{}, fmt.Errorf("presign %s: %w", key, err)
	}
	return Uploaded{Key: key, URL: u.String()}, nil
}

// Ping reports whether the bucket is reachable.
func (s *MinIOStorage) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// ImageKey builds products/<uuid><ext>, keeping only a lower-cased extension from filename.
func ImageKey(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 8 || strings.ContainsAny(ext, " ?#") {
		ext = ""
	}
	return ImagePrefix + uuid.NewString() + ext
}
