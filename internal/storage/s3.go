package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const cacheControl = "max-age=3600"

// S3 stores objects in an S3 compatible service (MinIO, AWS, R2...).
// Buckets are created on first upload when they do not exist.
type S3 struct {
	client  *minio.Client
	baseURL string

	buckets sync.Map
}

func NewS3(endpoint, accessKey, secretKey string, useSSL bool) (*S3, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &S3{client: client, baseURL: scheme + "://" + endpoint}, nil
}

func (s *S3) ensureBucket(ctx context.Context, bucket string) error {
	if _, ok := s.buckets.Load(bucket); ok {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		log.Infof("created bucket %s", bucket)
	}
	s.buckets.Store(bucket, struct{}{})
	return nil
}

func (s *S3) Put(ctx context.Context, bucket, objectPath string, r io.Reader, size int64, contentType string) error {
	bucket, objectPath, err := cleanKey(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, bucket, objectPath, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, objectPath, err)
	}
	return nil
}

func (s *S3) Remove(ctx context.Context, bucket string, objectPaths ...string) error {
	for _, p := range objectPaths {
		b, key, err := cleanKey(bucket, p)
		if err != nil {
			return err
		}
		if err := s.client.RemoveObject(ctx, b, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %s/%s: %w", b, key, err)
		}
	}
	return nil
}

func (s *S3) PublicURL(bucket, objectPath string) string {
	bucket, objectPath, err := cleanKey(bucket, objectPath)
	if err != nil {
		return ""
	}
	return joinURL(s.baseURL, bucket, objectPath)
}
