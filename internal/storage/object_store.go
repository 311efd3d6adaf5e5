package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tripflux/internal/config"
)

// PhotoStore abstrae el almacenamiento de fotos subidas.
type PhotoStore interface {
	Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// ObjectStore implementa PhotoStore contra un backend S3-compatible.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
}

func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	endpoint := cfg.S3Endpoint
	useSSL := cfg.S3UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: useSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	publicURL := strings.TrimRight(cfg.S3PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	return &ObjectStore{
		client:    client,
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		publicURL: publicURL,
	}, nil
}

// EnsureBucket crea el bucket si no existe.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Save sube el objeto y devuelve su URL pública.
func (s *ObjectStore) Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}
