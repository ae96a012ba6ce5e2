package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"wishlist-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// ObjectStorage is the slice of MinIO the services depend on.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	RemoveObjects(ctx context.Context, bucket string, keys []string) error
	RemoveFolder(ctx context.Context, bucket, prefix string) error
	PublicURL(bucket, key string) string
	KeyFromURL(bucket, rawURL string) (string, bool)
}

// MinIOStorage handles uploads for the item-image and logo buckets.
type MinIOStorage struct {
	client  *minio.Client
	baseURL string
}

// anonymous read, so public wishlist pages can embed object URLs directly
const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// NewMinIOStorage khởi tạo MinIO client
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOStorage{
		client:  client,
		baseURL: publicBaseURL(cfg),
	}, nil
}

func publicBaseURL(cfg config.MinIOConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// EnsureBuckets creates missing buckets and makes them publicly readable.
func (s *MinIOStorage) EnsureBuckets(ctx context.Context, buckets ...string) error {
	for _, bucket := range buckets {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if exists {
			continue
		}

		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		if err := s.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
			return fmt.Errorf("failed to set policy on %s: %w", bucket, err)
		}
		log.Info().Str("bucket", bucket).Msg("Created storage bucket")
	}
	return nil
}

// Upload uploads a file and returns its public URL.
// key: đường dẫn file trong bucket (vd: <wishlist_id>/1700000000000-photo.jpg)
func (s *MinIOStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.PublicURL(bucket, key), nil
}

// Download downloads a file from MinIO
func (s *MinIOStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// RemoveObjects xóa nhiều objects cùng lúc
func (s *MinIOStorage) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	go func() {
		defer close(objectsCh)
		for _, key := range keys {
			objectsCh <- minio.ObjectInfo{Key: key}
		}
	}()

	for rmErr := range s.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			return fmt.Errorf("failed to remove %s: %w", rmErr.ObjectName, rmErr.Err)
		}
	}
	return nil
}

// RemoveFolder xóa tất cả objects trong một folder (prefix)
func (s *MinIOStorage) RemoveFolder(ctx context.Context, bucket, prefix string) error {
	objectsCh := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var keys []string
	for object := range objectsCh {
		if object.Err != nil {
			return fmt.Errorf("failed to list objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}

	return s.RemoveObjects(ctx, bucket, keys)
}

// PublicURL builds <base>/<bucket>/<key>.
func (s *MinIOStorage) PublicURL(bucket, key string) string {
	return PublicURL(s.baseURL, bucket, key)
}

// KeyFromURL reports whether rawURL points into bucket on this storage and
// returns the object key. External image URLs return false.
func (s *MinIOStorage) KeyFromURL(bucket, rawURL string) (string, bool) {
	return KeyFromURL(s.baseURL, bucket, rawURL)
}

func PublicURL(baseURL, bucket, key string) string {
	return baseURL + "/" + bucket + "/" + key
}

func KeyFromURL(baseURL, bucket, rawURL string) (string, bool) {
	prefix := baseURL + "/" + bucket + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	return key, key != ""
}
