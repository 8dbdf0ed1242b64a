package audit

import (
	"errors"
	"strconv"

	"delivery-admin/internal/auth"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"is_undone"`
	UndoneBy    *string            `json:"undone_by"`
	UndoneAt    *string            `json:"undone_at"`
}

// GET /api/audit-logs?entity_type=restaurant&entity_id=...&user_id=...
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if userID := c.Query("user_id"); userID != "" {
			dbq = dbq.Where("user_id = ?", userID)
		}
		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entity_id"); entityID != "" {
			dbq = dbq.Where("entity_id = ?", entityID)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			var undoneAt *string
			if l.UndoneAt != nil {
				formatted := l.UndoneAt.Format("2006-01-02 15:04:05")
				undoneAt = &formatted
			}

			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				IsUndone:    l.IsUndone,
				UndoneBy:    l.UndoneBy,
				UndoneAt:    undoneAt,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logID, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || logID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
		}

		userID, userName := auth.Actor(c)
		if userID == "" {
			return fiber.NewError(fiber.StatusForbidden, "Missing user information")
		}

		if err := UndoLog(uint(logID), userID, userName); err != nil {
			switch {
			case database.IsNotFound(err):
				return fiber.NewError(fiber.StatusNotFound, "Audit log not found")
			case errors.Is(err, ErrAlreadyUndone), errors.Is(err, ErrNotUndoable),
				errors.Is(err, ErrUnknownEntity), errors.Is(err, ErrMissingSnapshot):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case database.IsUniqueViolation(err):
				return fiber.NewError(fiber.StatusConflict, "The restored record conflicts with an existing one")
			}
			log.Errorf("undo audit log %d: %v", logID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not undo this change")
		}

		return c.JSON(fiber.Map{
			"message": "Change undone successfully",
		})
	}
}
