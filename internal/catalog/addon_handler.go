package catalog

import (
	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddonRequest struct {
	MenuItemID    *string       `json:"menu_item_id"`
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Price         payload.Float `json:"price"`
	IsRequired    *bool         `json:"is_required"`
	MaxSelections payload.Int   `json:"max_selections"`
	OrderIndex    payload.Int   `json:"order_index"`
	IsActive      *bool         `json:"is_active"`
}

func (r AddonRequest) shape() models.Addon {
	return models.Addon{
		MenuItemID:    payload.TrimmedOr(r.MenuItemID, ""),
		Name:          payload.TrimmedOr(r.Name, ""),
		Description:   payload.OptionalString(r.Description),
		Price:         r.Price.Or(0),
		IsRequired:    payload.BoolOr(r.IsRequired, false),
		MaxSelections: r.MaxSelections.Ptr(),
		OrderIndex:    r.OrderIndex.Or(0),
		IsActive:      payload.BoolOr(r.IsActive, true),
	}
}

type AddonMenuItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
}

type AddonResponse struct {
	models.Addon
	MenuItem *AddonMenuItem `json:"menu_item"`
}

func toAddonResponse(a models.Addon) AddonResponse {
	res := AddonResponse{Addon: a}
	if a.MenuItem != nil {
		res.MenuItem = &AddonMenuItem{
			ID:           a.MenuItem.ID,
			Name:         a.MenuItem.Name,
			Category:     a.MenuItem.Category,
			RestaurantID: a.MenuItem.RestaurantID,
		}
		if a.MenuItem.Restaurant != nil {
			res.MenuItem.RestaurantName = a.MenuItem.Restaurant.Name
		}
	}
	return res
}

func parseAddon(c *fiber.Ctx) (models.Addon, error) {
	var body AddonRequest
	if err := c.BodyParser(&body); err != nil {
		return models.Addon{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	a := body.shape()
	if a.MenuItemID == "" {
		return models.Addon{}, fiber.NewError(fiber.StatusBadRequest, "Menu item is required")
	}
	if a.Name == "" {
		return models.Addon{}, fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}

	var count int64
	database.DB.Model(&models.MenuItem{}).Where("id = ?", a.MenuItemID).Count(&count)
	if count == 0 {
		return models.Addon{}, fiber.NewError(fiber.StatusBadRequest, "Menu item not found")
	}
	return a, nil
}

// GET /api/addons?menu_item_id=
func ListAddonsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("MenuItem.Restaurant")
		if menuItemID := trimmedQuery(c, "menu_item_id"); menuItemID != "" {
			dbq = dbq.Where("menu_item_id = ?", menuItemID)
		}

		var addons []models.Addon
		if err := dbq.Order("order_index ASC").Find(&addons).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list addons")
		}

		res := make([]AddonResponse, 0, len(addons))
		for _, a := range addons {
			res = append(res, toAddonResponse(a))
		}
		return c.JSON(res)
	}
}

// POST /api/addons
func CreateAddonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := parseAddon(c)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&a).Error; err != nil {
			log.Errorf("create addon %s: %v", a.Name, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create addon")
		}

		audit.Record(c, audit.EntityAddon, a.ID, models.AuditActionCreate, "Addon created: "+a.Name, nil, a)
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// PUT /api/addons/:id
func UpdateAddonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.Addon
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Addon not found")
		}

		shaped, err := parseAddon(c)
		if err != nil {
			return err
		}

		after := before
		after.MenuItemID = shaped.MenuItemID
		after.Name = shaped.Name
		after.Description = shaped.Description
		after.Price = shaped.Price
		after.IsRequired = shaped.IsRequired
		after.MaxSelections = shaped.MaxSelections
		after.OrderIndex = shaped.OrderIndex
		after.IsActive = shaped.IsActive

		if err := database.DB.Save(&after).Error; err != nil {
			log.Errorf("update addon %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update addon")
		}

		audit.Record(c, audit.EntityAddon, id, models.AuditActionUpdate, "Addon updated: "+after.Name, before, after)
		return c.JSON(after)
	}
}

// DELETE /api/addons/:id
// Options go in the same transaction as the addon and are kept in the
// audit before-image so an undo brings them back.
func DeleteAddonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var a models.Addon
		err := database.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).First(&a, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Addon not found")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("addon_id = ?", id).Delete(&models.AddonOption{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Addon{}, "id = ?", id).Error
		})
		if err != nil {
			log.Errorf("delete addon %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete addon")
		}

		audit.Record(c, audit.EntityAddon, id, models.AuditActionDelete, "Addon deleted: "+a.Name, a, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
