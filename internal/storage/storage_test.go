package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"delivery-admin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutAndRemove(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "http://localhost:8080/storage/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, l.Put(ctx, "images", "restaurants/logo.png", strings.NewReader("png"), 3, "image/png"))

	raw, err := os.ReadFile(filepath.Join(root, "images", "restaurants", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(raw))
	assert.Equal(t, "http://localhost:8080/storage/images/restaurants/logo.png", l.PublicURL("images", "restaurants/logo.png"))

	require.NoError(t, l.Remove(ctx, "images", "restaurants/logo.png", "missing.png"))
	_, err = os.Stat(filepath.Join(root, "images", "restaurants", "logo.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(filepath.Join(root, "store"), "http://x/storage")
	require.NoError(t, err)

	require.NoError(t, l.Put(context.Background(), "files", "../../escape.txt", strings.NewReader("x"), 1, "text/plain"))
	_, err = os.Stat(filepath.Join(root, "store", "files", "escape.txt"))
	assert.NoError(t, err)

	assert.ErrorIs(t, l.Put(context.Background(), "../files", "a.txt", strings.NewReader("x"), 1, ""), ErrInvalidPath)
	assert.ErrorIs(t, l.Put(context.Background(), "files", "/", strings.NewReader("x"), 1, ""), ErrInvalidPath)
}

func TestS3PublicURL(t *testing.T) {
	s, err := NewS3("minio.local:9000", "key", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "http://minio.local:9000/images/a/b.jpg", s.PublicURL("images", "/a/b.jpg"))

	s, err = NewS3("s3.example.com", "key", "secret", true)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/files/uploads/x.pdf", s.PublicURL("files", "uploads/x.pdf"))
}

func TestInitSelectsDriver(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	require.NoError(t, Init(&config.Config{StorageDriver: "local", StoragePath: t.TempDir(), StoragePublicURL: "http://x/storage"}))
	_, ok := Default().(*Local)
	assert.True(t, ok)

	require.NoError(t, Init(&config.Config{StorageDriver: "s3", S3Endpoint: "minio:9000", S3AccessKey: "k", S3SecretKey: "s"}))
	_, ok = Default().(*S3)
	assert.True(t, ok)
}
