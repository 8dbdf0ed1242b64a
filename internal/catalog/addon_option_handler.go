package catalog

import (
	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

type AddonOptionRequest struct {
	Name       *string       `json:"name"`
	Price      payload.Float `json:"price"`
	OrderIndex payload.Int   `json:"order_index"`
	IsActive   *bool         `json:"is_active"`
}

func parseAddonOption(c *fiber.Ctx) (models.AddonOption, error) {
	var body AddonOptionRequest
	if err := c.BodyParser(&body); err != nil {
		return models.AddonOption{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	opt := models.AddonOption{
		Name:       payload.TrimmedOr(body.Name, ""),
		Price:      body.Price.Or(0),
		OrderIndex: body.OrderIndex.Or(0),
		IsActive:   payload.BoolOr(body.IsActive, true),
	}
	if opt.Name == "" {
		return models.AddonOption{}, fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}
	return opt, nil
}

func findAddon(c *fiber.Ctx) (models.Addon, error) {
	var a models.Addon
	if err := database.DB.First(&a, "id = ?", c.Params("id")).Error; err != nil {
		return a, fiber.NewError(fiber.StatusNotFound, "Addon not found")
	}
	return a, nil
}

func findAddonOption(c *fiber.Ctx) (models.AddonOption, error) {
	var opt models.AddonOption
	if err := database.DB.
		Where("id = ? AND addon_id = ?", c.Params("optionId"), c.Params("id")).
		First(&opt).Error; err != nil {
		return opt, fiber.NewError(fiber.StatusNotFound, "Addon option not found")
	}
	return opt, nil
}

// GET /api/addons/:id/options
func ListAddonOptionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := findAddon(c)
		if err != nil {
			return err
		}

		var opts []models.AddonOption
		if err := database.DB.Where("addon_id = ?", a.ID).Order("order_index ASC").Find(&opts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list addon options")
		}
		return c.JSON(opts)
	}
}

// POST /api/addons/:id/options
// addon_id always comes from the path.
func CreateAddonOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := findAddon(c)
		if err != nil {
			return err
		}
		opt, err := parseAddonOption(c)
		if err != nil {
			return err
		}
		opt.AddonID = a.ID

		if err := database.DB.Create(&opt).Error; err != nil {
			log.Errorf("create option for addon %s: %v", a.ID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create addon option")
		}

		audit.Record(c, audit.EntityAddonOption, opt.ID, models.AuditActionCreate, "Addon option created: "+opt.Name, nil, opt)
		return c.Status(fiber.StatusCreated).JSON(opt)
	}
}

// PUT /api/addons/:id/options/:optionId
func UpdateAddonOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		before, err := findAddonOption(c)
		if err != nil {
			return err
		}
		shaped, err := parseAddonOption(c)
		if err != nil {
			return err
		}

		after := before
		after.Name = shaped.Name
		after.Price = shaped.Price
		after.OrderIndex = shaped.OrderIndex
		after.IsActive = shaped.IsActive

		if err := database.DB.Save(&after).Error; err != nil {
			log.Errorf("update addon option %s: %v", before.ID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update addon option")
		}

		audit.Record(c, audit.EntityAddonOption, after.ID, models.AuditActionUpdate, "Addon option updated: "+after.Name, before, after)
		return c.JSON(after)
	}
}

// DELETE /api/addons/:id/options/:optionId
func DeleteAddonOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		opt, err := findAddonOption(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.AddonOption{}, "id = ?", opt.ID).Error; err != nil {
			log.Errorf("delete addon option %s: %v", opt.ID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete addon option")
		}

		audit.Record(c, audit.EntityAddonOption, opt.ID, models.AuditActionDelete, "Addon option deleted: "+opt.Name, opt, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
