package catalog

import (
	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name       *string     `json:"name"`
	Slug       *string     `json:"slug"`
	ImageURL   *string     `json:"image_url"`
	Icon       *string     `json:"icon"`
	OrderIndex payload.Int `json:"order_index"`
	IsActive   *bool       `json:"is_active"`
}

func (r CategoryRequest) shape() models.Category {
	name := payload.TrimmedOr(r.Name, "")
	slug := payload.TrimmedOr(r.Slug, "")
	if slug == "" {
		slug = payload.Slugify(name)
	}
	return models.Category{
		Name:       name,
		Slug:       slug,
		ImageURL:   payload.OptionalString(r.ImageURL),
		Icon:       payload.OptionalString(r.Icon),
		OrderIndex: r.OrderIndex.Or(0),
		IsActive:   payload.BoolOr(r.IsActive, true),
	}
}

func parseCategory(c *fiber.Ctx) (models.Category, error) {
	var body CategoryRequest
	if err := c.BodyParser(&body); err != nil {
		return models.Category{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	cat := body.shape()
	if cat.Name == "" || cat.Slug == "" {
		return models.Category{}, fiber.NewError(fiber.StatusBadRequest, "Name and slug are required")
	}
	return cat, nil
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("order_index ASC").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}
		return c.JSON(categories)
	}
}

// GET /api/categories/options
func CategoryOptionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var opts []OptionResponse
		if err := database.DB.Model(&models.Category{}).
			Select("id", "name").
			Order("name").
			Scan(&opts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}
		if opts == nil {
			opts = []OptionResponse{}
		}
		return c.JSON(opts)
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := parseCategory(c)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "A category with this slug already exists")
			}
			log.Errorf("create category %s: %v", cat.Slug, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create category")
		}

		audit.Record(c, audit.EntityCategory, cat.ID, models.AuditActionCreate, "Category created: "+cat.Name, nil, cat)
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.Category
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		cat, err := parseCategory(c)
		if err != nil {
			return err
		}

		after := before
		after.Name = cat.Name
		after.Slug = cat.Slug
		after.ImageURL = cat.ImageURL
		after.Icon = cat.Icon
		after.OrderIndex = cat.OrderIndex
		after.IsActive = cat.IsActive

		if err := database.DB.Save(&after).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "A category with this slug already exists")
			}
			log.Errorf("update category %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update category")
		}

		audit.Record(c, audit.EntityCategory, id, models.AuditActionUpdate, "Category updated: "+after.Name, before, after)
		return c.JSON(after)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		if err := database.DB.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete category %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}

		audit.Record(c, audit.EntityCategory, id, models.AuditActionDelete, "Category deleted: "+cat.Name, cat, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
