package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/mateohidalgo/landrecords-backend/pkg/config"
)

// Store is the blob-storage surface the document layer depends on. Objects
// are addressed by the generated key persisted on each record.
type Store interface {
	// Save writes the object bytes under key, replacing any prior object.
	Save(ctx context.Context, key string, r io.Reader) error

	// Open returns a reader over the object bytes. The caller owns the
	// returned handle and must close it once the body has been streamed.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New selects a backend from configuration: local filesystem for development,
// any S3-compatible service otherwise.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "fs":
		return NewFSStore(cfg.LocalDir)
	case "s3":
		return NewS3Store(S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
