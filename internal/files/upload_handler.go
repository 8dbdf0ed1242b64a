// Package files uploads images and documents to the configured object store
// and keeps the file library table.
package files

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"delivery-admin/internal/logger"
	"delivery-admin/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var log = logger.New("files")

const (
	MaxImageSize  = 5 << 20
	DefaultBucket = "images"
	LibraryBucket = "files"
)

type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

func contentType(fh *multipart.FileHeader) string {
	return strings.ToLower(strings.TrimSpace(fh.Header.Get(fiber.HeaderContentType)))
}

// extension prefers the client file name and falls back to the mime subtype.
func extension(fh *multipart.FileHeader) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), "."); ext != "" {
		return ext
	}
	if _, sub, ok := strings.Cut(contentType(fh), "/"); ok && sub != "" {
		sub, _, _ = strings.Cut(sub, ";")
		sub, _, _ = strings.Cut(sub, "+")
		return sub
	}
	return "bin"
}

// imageObjectPath nests the object under a folder named after its bucket,
// so public URLs read .../<bucket>/<bucket>/<name>.
func imageObjectPath(bucket string, fh *multipart.FileHeader, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return fmt.Sprintf("%s/%d-%s.%s", bucket, now.UnixMilli(), suffix, extension(fh))
}

func put(c *fiber.Ctx, bucket, objectPath string, fh *multipart.FileHeader) error {
	store := storage.Default()
	if store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Storage is not configured")
	}

	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}
	defer f.Close()

	if err := store.Put(c.UserContext(), bucket, objectPath, f, fh.Size, contentType(fh)); err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid bucket or file name")
		}
		log.Errorf("store %s/%s: %v", bucket, objectPath, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Could not store file")
	}
	return nil
}

// POST /api/uploads/image?bucket=images
func UploadImageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please select an image file")
		}
		if !strings.HasPrefix(contentType(fh), "image/") {
			return fiber.NewError(fiber.StatusBadRequest, "Please select an image file")
		}
		if fh.Size > MaxImageSize {
			return fiber.NewError(fiber.StatusBadRequest, "Image size must be less than 5MB")
		}

		bucket := strings.TrimSpace(c.Query("bucket", DefaultBucket))
		if bucket == "" {
			bucket = DefaultBucket
		}
		objectPath := imageObjectPath(bucket, fh, time.Now())

		if err := put(c, bucket, objectPath, fh); err != nil {
			return err
		}

		return c.JSON(UploadResponse{
			URL:  storage.Default().PublicURL(bucket, objectPath),
			Path: objectPath,
		})
	}
}
