package cms

import (
	"encoding/json"
	"strings"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

type ContentRequest struct {
	Page        *string         `json:"page"`
	Section     *string         `json:"section"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Content     json.RawMessage `json:"content"`
	ImageURL    *string         `json:"image_url"`
	OrderIndex  payload.Int     `json:"order_index"`
	IsActive    *bool           `json:"is_active"`
}

func parseContent(c *fiber.Ctx) (models.Content, error) {
	var body ContentRequest
	if err := c.BodyParser(&body); err != nil {
		return models.Content{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	doc, err := payload.JSONValue(body.Content)
	if err != nil {
		return models.Content{}, fiber.NewError(fiber.StatusBadRequest, "Content must be valid JSON")
	}

	return models.Content{
		Page:        strings.ToLower(payload.TrimmedOr(body.Page, "home")),
		Section:     payload.TrimmedOr(body.Section, "default"),
		Title:       payload.TrimmedOr(body.Title, ""),
		Description: payload.TrimmedOr(body.Description, ""),
		Content:     doc,
		ImageURL:    payload.OptionalString(body.ImageURL),
		OrderIndex:  body.OrderIndex.Or(0),
		IsActive:    payload.BoolOr(body.IsActive, true),
	}, nil
}

// GET /api/content?page=
func ListContentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Order("page ASC").Order("order_index ASC")
		if page := strings.TrimSpace(c.Query("page")); page != "" {
			dbq = dbq.Where("page = ?", page)
		}

		var rows []models.Content
		if err := dbq.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list content")
		}
		return c.JSON(rows)
	}
}

// POST /api/content
func CreateContentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		row, err := parseContent(c)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&row).Error; err != nil {
			log.Errorf("create content %s/%s: %v", row.Page, row.Section, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create content")
		}

		audit.Record(c, audit.EntityContent, row.ID, models.AuditActionCreate,
			"Content created: "+row.Page+"/"+row.Section, nil, row)
		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// PUT /api/content/:id
func UpdateContentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.Content
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Content not found")
		}

		row, err := parseContent(c)
		if err != nil {
			return err
		}
		row.Base = before.Base

		if err := database.DB.Save(&row).Error; err != nil {
			log.Errorf("update content %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update content")
		}

		audit.Record(c, audit.EntityContent, id, models.AuditActionUpdate,
			"Content updated: "+row.Page+"/"+row.Section, before, row)
		return c.JSON(row)
	}
}

// DELETE /api/content/:id
func DeleteContentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var row models.Content
		if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Content not found")
		}

		if err := database.DB.Delete(&models.Content{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete content %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete content")
		}

		audit.Record(c, audit.EntityContent, id, models.AuditActionDelete,
			"Content deleted: "+row.Page+"/"+row.Section, row, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
