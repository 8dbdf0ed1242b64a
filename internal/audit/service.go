package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-admin/internal/auth"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var log = logger.New("audit")

const (
	EntityRestaurant  = "restaurant"
	EntityCategory    = "category"
	EntityMenuItem    = "menu_item"
	EntityAddon       = "addon"
	EntityAddonOption = "addon_option"
	EntityOffer       = "offer"
	EntityEvent       = "event"
	EntityRider       = "rider"
	EntityAppConfig   = "app_config"
	EntityContent     = "content"
)

// entities maps an entity type to a constructor for its row model; undo
// decodes the stored snapshots into these.
var entities = map[string]func() any{
	EntityRestaurant:  func() any { return &models.Restaurant{} },
	EntityCategory:    func() any { return &models.Category{} },
	EntityMenuItem:    func() any { return &models.MenuItem{} },
	EntityAddon:       func() any { return &models.Addon{} },
	EntityAddonOption: func() any { return &models.AddonOption{} },
	EntityOffer:       func() any { return &models.SpecialOffer{} },
	EntityEvent:       func() any { return &models.Event{} },
	EntityRider:       func() any { return &models.Rider{} },
	EntityAppConfig:   func() any { return &models.AppConfig{} },
	EntityContent:     func() any { return &models.Content{} },
}

var (
	ErrAlreadyUndone   = errors.New("this change has already been undone")
	ErrNotUndoable     = errors.New("this action cannot be undone")
	ErrUnknownEntity   = errors.New("unknown entity type")
	ErrMissingSnapshot = errors.New("no snapshot stored for this change")
)

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(db *gorm.DB, opts LogOptions) error {
	// jsonb columns need the JSON literal null, not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Record writes an audit row for the operator behind c. Failures are logged
// and never fail the request that made the change.
func Record(c *fiber.Ctx, entityType, entityID string, action models.AuditAction, description string, before, after any) {
	userID, userName := auth.Actor(c)
	err := WriteLog(database.DB, LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
	if err != nil {
		log.Errorf("%s %s %s: %v", action, entityType, entityID, err)
	}
}

// UndoLog reverses a create, update or delete and records the undo as a new
// audit row, all in one transaction.
func UndoLog(logID uint, userID, userName string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.AuditLog
		if err := tx.First(&entry, "id = ?", logID).Error; err != nil {
			return err
		}
		if entry.IsUndone {
			return ErrAlreadyUndone
		}

		newModel, ok := entities[entry.EntityType]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEntity, entry.EntityType)
		}

		switch entry.Action {
		case models.AuditActionCreate:
			if err := tx.Where("id = ?", entry.EntityID).Delete(newModel()).Error; err != nil {
				return fmt.Errorf("delete %s %s: %w", entry.EntityType, entry.EntityID, err)
			}

		case models.AuditActionUpdate:
			row, err := decodeSnapshot(newModel, entry.BeforeData)
			if err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
				return fmt.Errorf("restore %s %s: %w", entry.EntityType, entry.EntityID, err)
			}

		case models.AuditActionDelete:
			row, err := decodeSnapshot(newModel, entry.BeforeData)
			if err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
				return fmt.Errorf("recreate %s %s: %w", entry.EntityType, entry.EntityID, err)
			}
			if err := recreateChildren(tx, row); err != nil {
				return fmt.Errorf("recreate %s %s children: %w", entry.EntityType, entry.EntityID, err)
			}

		default:
			return ErrNotUndoable
		}

		now := time.Now()
		entry.IsUndone = true
		entry.UndoneBy = &userID
		entry.UndoneAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("mark audit log undone: %w", err)
		}

		undo := models.AuditLog{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			Action:      models.AuditActionUndo,
			Description: "Undone: " + entry.Description,
			BeforeData:  entry.AfterData,
			AfterData:   entry.BeforeData,
			Undone:      true,
		}
		if err := tx.Create(&undo).Error; err != nil {
			return fmt.Errorf("write undo audit log: %w", err)
		}
		return nil
	})
}

// recreateChildren re-inserts rows that were removed by a cascade together
// with their parent and travel inside the parent's before-image.
func recreateChildren(tx *gorm.DB, row any) error {
	a, ok := row.(*models.Addon)
	if !ok || len(a.Options) == 0 {
		return nil
	}
	for i := range a.Options {
		a.Options[i].AddonID = a.ID
	}
	return tx.Create(&a.Options).Error
}

func decodeSnapshot(newModel func() any, data string) (any, error) {
	if data == "" || data == "null" {
		return nil, ErrMissingSnapshot
	}
	row := newModel()
	if err := json.Unmarshal([]byte(data), row); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return row, nil
}
