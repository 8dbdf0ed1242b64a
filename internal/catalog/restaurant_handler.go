// Package catalog manages what customers browse: restaurants, categories,
// menu items and their addons.
package catalog

import (
	"strings"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

var log = logger.New("catalog")

type RestaurantRequest struct {
	Name            *string       `json:"name"`
	Slug            *string       `json:"slug"`
	Description     *string       `json:"description"`
	ImageURL        *string       `json:"image_url"`
	CoverImageURL   *string       `json:"cover_image_url"`
	Rating          payload.Float `json:"rating"`
	ReviewCount     payload.Int   `json:"review_count"`
	DeliveryTimeMin payload.Int   `json:"delivery_time_min"`
	DeliveryFee     payload.Float `json:"delivery_fee"`
	MinimumOrder    payload.Float `json:"minimum_order"`
	CategoryID      *string       `json:"category_id"`
	Address         *string       `json:"address"`
	Latitude        payload.Float `json:"latitude"`
	Longitude       payload.Float `json:"longitude"`
	Phone           *string       `json:"phone"`
	IsFeatured      *bool         `json:"is_featured"`
	IsActive        *bool         `json:"is_active"`
}

// shape applies the form defaults: blank optional text becomes NULL, a
// missing slug is derived from the name and zero delivery time means 30.
func (r RestaurantRequest) shape() models.Restaurant {
	name := payload.TrimmedOr(r.Name, "")
	slug := payload.TrimmedOr(r.Slug, "")
	if slug == "" {
		slug = payload.Slugify(name)
	}

	return models.Restaurant{
		Name:            name,
		Slug:            slug,
		Description:     payload.OptionalString(r.Description),
		ImageURL:        payload.OptionalString(r.ImageURL),
		CoverImageURL:   payload.OptionalString(r.CoverImageURL),
		Rating:          r.Rating.Or(0),
		ReviewCount:     r.ReviewCount.Or(0),
		DeliveryTimeMin: r.DeliveryTimeMin.Or(30),
		DeliveryFee:     r.DeliveryFee.Or(0),
		MinimumOrder:    r.MinimumOrder.Or(0),
		CategoryID:      payload.OptionalString(r.CategoryID),
		Address:         payload.OptionalString(r.Address),
		Latitude:        r.Latitude.NonZeroPtr(),
		Longitude:       r.Longitude.NonZeroPtr(),
		Phone:           payload.OptionalString(r.Phone),
		IsFeatured:      payload.BoolOr(r.IsFeatured, false),
		IsActive:        payload.BoolOr(r.IsActive, true),
	}
}

// updates keeps only the shaped values that are neither NULL nor empty, so
// an edit never clears a column.
func restaurantUpdates(r models.Restaurant) map[string]any {
	m := map[string]any{
		"rating":            r.Rating,
		"review_count":      r.ReviewCount,
		"delivery_time_min": r.DeliveryTimeMin,
		"delivery_fee":      r.DeliveryFee,
		"minimum_order":     r.MinimumOrder,
		"is_featured":       r.IsFeatured,
		"is_active":         r.IsActive,
	}
	if r.Name != "" {
		m["name"] = r.Name
	}
	if r.Slug != "" {
		m["slug"] = r.Slug
	}

	optional := map[string]*string{
		"description":     r.Description,
		"image_url":       r.ImageURL,
		"cover_image_url": r.CoverImageURL,
		"category_id":     r.CategoryID,
		"address":         r.Address,
		"phone":           r.Phone,
	}
	for col, v := range optional {
		if v != nil {
			m[col] = *v
		}
	}
	if r.Latitude != nil {
		m["latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		m["longitude"] = *r.Longitude
	}
	return m
}

type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GET /api/restaurants
func ListRestaurantsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var restaurants []models.Restaurant
		if err := database.DB.Order("created_at DESC").Find(&restaurants).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list restaurants")
		}
		return c.JSON(restaurants)
	}
}

// GET /api/restaurants/options
func RestaurantOptionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var opts []OptionResponse
		if err := database.DB.Model(&models.Restaurant{}).
			Select("id", "name").
			Order("name").
			Scan(&opts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list restaurants")
		}
		if opts == nil {
			opts = []OptionResponse{}
		}
		return c.JSON(opts)
	}
}

// GET /api/restaurants/:id
func GetRestaurantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var r models.Restaurant
		if err := database.DB.First(&r, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restaurant not found")
		}
		return c.JSON(r)
	}
}

// POST /api/restaurants
func CreateRestaurantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RestaurantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		r := body.shape()
		if r.Name == "" || r.Slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and slug are required")
		}

		if err := database.DB.Create(&r).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "A restaurant with this slug already exists")
			}
			log.Errorf("create restaurant %s: %v", r.Slug, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create restaurant")
		}

		audit.Record(c, audit.EntityRestaurant, r.ID, models.AuditActionCreate, "Restaurant created: "+r.Name, nil, r)
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// PUT /api/restaurants/:id
func UpdateRestaurantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.Restaurant
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restaurant not found")
		}

		var body RestaurantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := database.DB.Model(&models.Restaurant{}).
			Where("id = ?", id).
			Updates(restaurantUpdates(body.shape())).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "A restaurant with this slug already exists")
			}
			log.Errorf("update restaurant %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update restaurant")
		}

		var after models.Restaurant
		if err := database.DB.First(&after, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reload restaurant")
		}

		audit.Record(c, audit.EntityRestaurant, id, models.AuditActionUpdate, "Restaurant updated: "+after.Name, before, after)
		return c.JSON(after)
	}
}

// DELETE /api/restaurants/:id
func DeleteRestaurantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var r models.Restaurant
		if err := database.DB.First(&r, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restaurant not found")
		}

		if err := database.DB.Delete(&models.Restaurant{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete restaurant %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete restaurant")
		}

		audit.Record(c, audit.EntityRestaurant, id, models.AuditActionDelete, "Restaurant deleted: "+r.Name, r, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func trimmedQuery(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.Query(key))
}
