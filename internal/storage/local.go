package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local keeps objects under Root/<bucket>/<path>; the HTTP server exposes
// Root at BaseURL.
type Local struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &Local{Root: root, BaseURL: baseURL}, nil
}

func (l *Local) filePath(bucket, objectPath string) (string, error) {
	bucket, objectPath, err := cleanKey(bucket, objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.Root, bucket, filepath.FromSlash(objectPath)), nil
}

func (l *Local) Put(_ context.Context, bucket, objectPath string, r io.Reader, _ int64, _ string) error {
	target, err := l.filePath(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (l *Local) Remove(_ context.Context, bucket string, objectPaths ...string) error {
	for _, p := range objectPaths {
		target, err := l.filePath(bucket, p)
		if err != nil {
			return err
		}
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s/%s: %w", bucket, p, err)
		}
	}
	return nil
}

func (l *Local) PublicURL(bucket, objectPath string) string {
	bucket, objectPath, err := cleanKey(bucket, objectPath)
	if err != nil {
		return ""
	}
	return joinURL(l.BaseURL, bucket, objectPath)
}
