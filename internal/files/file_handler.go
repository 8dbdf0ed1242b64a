package files

import (
	"strings"

	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FileResponse struct {
	models.File
	SizeFormatted string `json:"size_formatted"`
}

func fileKind(mimeType string) string {
	if strings.HasPrefix(mimeType, "image/") {
		return "image"
	}
	return "document"
}

// GET /api/files
func ListFilesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.File
		if err := database.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list files")
		}

		res := make([]FileResponse, 0, len(rows))
		for _, f := range rows {
			res = append(res, FileResponse{File: f, SizeFormatted: FormatFileSize(f.Size)})
		}
		return c.JSON(res)
	}
}

// POST /api/files
func UploadFileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please select a file")
		}

		mimeType := contentType(fh)
		objectPath := "uploads/" + uuid.NewString() + "." + extension(fh)
		if err := put(c, LibraryBucket, objectPath, fh); err != nil {
			return err
		}

		row := models.File{
			Name:     fh.Filename,
			Type:     fileKind(mimeType),
			URL:      storage.Default().PublicURL(LibraryBucket, objectPath),
			Path:     objectPath,
			Size:     fh.Size,
			MimeType: mimeType,
			IsPublic: true,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			log.Errorf("record file %s: %v", objectPath, err)
			if rmErr := storage.Default().Remove(c.UserContext(), LibraryBucket, objectPath); rmErr != nil {
				log.Warningf("remove orphaned %s: %v", objectPath, rmErr)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save file")
		}

		log.Infof("file uploaded: %s (%s)", row.Name, FormatFileSize(row.Size))
		return c.Status(fiber.StatusCreated).JSON(FileResponse{File: row, SizeFormatted: FormatFileSize(row.Size)})
	}
}

// DELETE /api/files/:id
// The object goes first so a failed removal leaves the row to retry from.
func DeleteFileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var row models.File
		if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "File not found")
		}

		store := storage.Default()
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Storage is not configured")
		}
		if err := store.Remove(c.UserContext(), LibraryBucket, row.Path); err != nil {
			log.Errorf("remove %s: %v", row.Path, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete file")
		}

		if err := database.DB.Delete(&models.File{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete file %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete file")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
