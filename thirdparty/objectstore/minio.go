package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/model"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// Store keeps product covers in a MinIO bucket.
type Store struct {
	client    *minio.Client
	bucket    string
	endpoint  string
	useSSL    bool
	publicURL string
}

// New connects to MinIO and makes sure the bucket exists. It returns nil, nil
// when no endpoint is configured.
func New(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("created object storage bucket", zap.String("bucket", cfg.Bucket))
	}

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		endpoint:  cfg.Endpoint,
		useSSL:    cfg.UseSSL,
		publicURL: cfg.PublicURL,
	}, nil
}

func (s *Store) PutCover(ctx context.Context, productID uint64, upload model.CoverUpload, body io.Reader) (string, error) {
	name := ObjectName(productID, upload.FileName, uuid.NewString())

	_, err := s.client.PutObject(ctx, s.bucket, name, body, upload.Size,
		minio.PutObjectOptions{ContentType: upload.ContentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}

	return s.URL(name), nil
}

// ObjectName places covers under products/<id>/ with a unique file name.
func ObjectName(productID uint64, fileName, unique string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("products/%d/%s%s", productID, unique, ext)
}

// URL is the public address of an object.
func (s *Store) URL(object string) string {
	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/") + "/" + s.bucket + "/" + object
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, object)
}
