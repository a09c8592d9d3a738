package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/xitongsys/parquet-go-source/buffer"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/dataset"
)

// ObjectStore fetches objects from S3-compatible storage.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// MinioStore implements ObjectStore using the minio-go SDK.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates a store from the dataset's endpoint settings.
func NewMinioStore(cfg *config.DatasetConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return &MinioStore{client: client}, nil
}

// GetObject downloads an object in full.
func (s *MinioStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ObjectLoader reads a dataset from an object in S3-compatible storage.
// The object key's extension decides the format, Parquet or CSV.
type ObjectLoader struct {
	cfg   *config.DatasetConfig
	name  string
	store ObjectStore
}

// NewObject creates an ObjectLoader backed by the given store.
func NewObject(cfg *config.DatasetConfig, role string, store ObjectStore) *ObjectLoader {
	return &ObjectLoader{cfg: cfg, name: displayName(cfg, role), store: store}
}

// Load downloads the configured object and parses it.
func (l *ObjectLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	data, err := l.store.GetObject(ctx, l.cfg.Bucket, l.cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", l.cfg.Bucket, l.cfg.Key, err)
	}

	if strings.HasSuffix(l.cfg.Key, ".parquet") {
		ds, err := readParquet(buffer.NewBufferFileFromBytes(data), l.name)
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", l.cfg.Bucket, l.cfg.Key, err)
		}
		return ds, nil
	}

	ds, err := parseCSV(data, l.cfg, l.name)
	if err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", l.cfg.Bucket, l.cfg.Key, err)
	}
	return ds, nil
}
