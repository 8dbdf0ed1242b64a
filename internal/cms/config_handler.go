// Package cms edits the configuration and page content read by the
// customer app.
package cms

import (
	"encoding/json"
	"strings"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

var log = logger.New("cms")

type ConfigRequest struct {
	Key         *string         `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description *string         `json:"description"`
}

func invalidValue() error {
	return fiber.NewError(fiber.StatusBadRequest, "Value must be valid JSON")
}

// GET /api/config
func ListConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.AppConfig
		if err := database.DB.Order("key ASC").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list configuration")
		}
		return c.JSON(rows)
	}
}

// GET /api/config/key/:key
func GetConfigByKeyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var row models.AppConfig
		if err := database.DB.First(&row, "key = ?", c.Params("key")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Configuration key not found")
		}
		return c.JSON(row)
	}
}

// POST /api/config
func CreateConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		key := payload.TrimmedOr(body.Key, "")
		if key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Key is required")
		}
		value, err := payload.JSONValue(body.Value)
		if err != nil {
			return invalidValue()
		}

		row := models.AppConfig{
			Key:         key,
			Value:       value,
			Description: payload.TrimmedOr(body.Description, ""),
		}
		if err := database.DB.Create(&row).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "This configuration key already exists")
			}
			log.Errorf("create config %s: %v", key, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create configuration")
		}

		audit.Record(c, audit.EntityAppConfig, row.ID, models.AuditActionCreate, "Config created: "+key, nil, row)
		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// PUT /api/config/:id
// Only value and description change; the key is fixed once created.
func UpdateConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.AppConfig
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Configuration not found")
		}

		var body ConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		after := before
		if len(body.Value) > 0 {
			value, err := payload.JSONValue(body.Value)
			if err != nil {
				return invalidValue()
			}
			after.Value = value
		}
		if body.Description != nil {
			after.Description = strings.TrimSpace(*body.Description)
		}

		if err := database.DB.Save(&after).Error; err != nil {
			log.Errorf("update config %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update configuration")
		}

		audit.Record(c, audit.EntityAppConfig, id, models.AuditActionUpdate, "Config updated: "+after.Key, before, after)
		return c.JSON(after)
	}
}

// PUT /api/config/key/:key
// Creates the key or overwrites its value and description.
func UpsertConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Key is required")
		}

		var body ConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		value, err := payload.JSONValue(body.Value)
		if err != nil {
			return invalidValue()
		}

		var before *models.AppConfig
		var existing models.AppConfig
		if err := database.DB.First(&existing, "key = ?", key).Error; err == nil {
			before = &existing
		}

		row := models.AppConfig{
			Key:         key,
			Value:       value,
			Description: payload.TrimmedOr(body.Description, ""),
		}
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).Create(&row).Error; err != nil {
			log.Errorf("upsert config %s: %v", key, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save configuration")
		}

		var saved models.AppConfig
		if err := database.DB.First(&saved, "key = ?", key).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load configuration")
		}

		if before == nil {
			audit.Record(c, audit.EntityAppConfig, saved.ID, models.AuditActionCreate, "Config created: "+key, nil, saved)
		} else {
			audit.Record(c, audit.EntityAppConfig, saved.ID, models.AuditActionUpdate, "Config updated: "+key, *before, saved)
		}
		return c.JSON(saved)
	}
}

// DELETE /api/config/:id
func DeleteConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var row models.AppConfig
		if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Configuration not found")
		}

		if err := database.DB.Delete(&models.AppConfig{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete config %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete configuration")
		}

		audit.Record(c, audit.EntityAppConfig, id, models.AuditActionDelete, "Config deleted: "+row.Key, row, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
