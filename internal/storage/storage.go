// Package storage puts uploaded binaries into buckets on local disk or an
// S3 compatible object store and builds their public URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"sync"

	"delivery-admin/internal/config"
	"delivery-admin/internal/logger"
)

var log = logger.New("storage")

var ErrInvalidPath = errors.New("invalid object path")

type Store interface {
	Put(ctx context.Context, bucket, objectPath string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, bucket string, objectPaths ...string) error
	PublicURL(bucket, objectPath string) string
}

// cleanKey normalises bucket and object names and rejects anything that
// would escape the bucket.
func cleanKey(bucket, objectPath string) (string, string, error) {
	bucket = strings.Trim(bucket, "/ ")
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", "", ErrInvalidPath
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(objectPath, `\`, "/")), "/")
	if cleaned == "" || cleaned == "." {
		return "", "", ErrInvalidPath
	}
	return bucket, cleaned, nil
}

func joinURL(base, bucket, objectPath string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + objectPath
}

var (
	mu    sync.RWMutex
	store Store
)

// Init builds the configured driver. The S3 client is created without
// contacting the endpoint.
func Init(cfg *config.Config) error {
	var (
		s   Store
		err error
	)
	switch cfg.StorageDriver {
	case "s3":
		s, err = NewS3(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL)
	default:
		s, err = NewLocal(cfg.StoragePath, cfg.StoragePublicURL)
	}
	if err != nil {
		return err
	}
	SetDefault(s)
	log.Infof("storage driver: %s", cfg.StorageDriver)
	return nil
}

func Default() Store {
	mu.RLock()
	defer mu.RUnlock()
	return store
}

// SetDefault swaps the package store and returns the previous one.
func SetDefault(s Store) Store {
	mu.Lock()
	defer mu.Unlock()
	prev := store
	store = s
	return prev
}
