package objectstore

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/config"
)

// Store - S3-совместимое хранилище отчётов (MinIO, AWS S3), реализует repository.DocumentStore
type Store struct {
	client *minio.Client
	bucket string
	region string
	logger *zap.Logger
}

// New создает клиент хранилища
func New(cfg *config.StorageConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, eris.New("objectstore: endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "objectstore: create client for %s", cfg.Endpoint)
	}

	logger.Info("Object storage client created",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return &Store{client: client, bucket: cfg.Bucket, region: cfg.Region, logger: logger}, nil
}

// EnsureBucket создает бакет, если его ещё нет
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return eris.Wrapf(err, "objectstore: check bucket %s", s.bucket)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return eris.Wrapf(err, "objectstore: create bucket %s", s.bucket)
	}
	s.logger.Info("Bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Put загружает объект и возвращает его ключ
func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", eris.Wrapf(err, "objectstore: put %s", key)
	}

	s.logger.Debug("Object stored",
		zap.String("key", key),
		zap.Int64("size", info.Size))

	return key, nil
}

// Remove удаляет объект; отсутствие объекта не считается ошибкой
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return eris.Wrapf(err, "objectstore: remove %s", key)
	}
	return nil
}
