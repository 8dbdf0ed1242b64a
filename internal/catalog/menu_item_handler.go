package catalog

import (
	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

type MenuItemRequest struct {
	RestaurantID *string       `json:"restaurant_id"`
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	ImageURL     *string       `json:"image_url"`
	Price        payload.Float `json:"price"`
	Category     *string       `json:"category"`
	IsAvailable  *bool         `json:"is_available"`
	IsVegetarian *bool         `json:"is_vegetarian"`
	IsVegan      *bool         `json:"is_vegan"`
	IsSpicy      *bool         `json:"is_spicy"`
	Calories     payload.Int   `json:"calories"`
	OrderIndex   payload.Int   `json:"order_index"`
}

// Category is stored trimmed; an empty string means "no category".
func (r MenuItemRequest) shape() models.MenuItem {
	return models.MenuItem{
		RestaurantID: payload.TrimmedOr(r.RestaurantID, ""),
		Name:         payload.TrimmedOr(r.Name, ""),
		Description:  payload.OptionalString(r.Description),
		ImageURL:     payload.OptionalString(r.ImageURL),
		Price:        r.Price.Or(0),
		Category:     payload.TrimmedOr(r.Category, ""),
		IsAvailable:  payload.BoolOr(r.IsAvailable, true),
		IsVegetarian: payload.BoolOr(r.IsVegetarian, false),
		IsVegan:      payload.BoolOr(r.IsVegan, false),
		IsSpicy:      payload.BoolOr(r.IsSpicy, false),
		Calories:     r.Calories.Or(0),
		OrderIndex:   r.OrderIndex.Or(0),
	}
}

type MenuItemResponse struct {
	models.MenuItem
	RestaurantName string `json:"restaurant_name"`
}

func toMenuItemResponse(m models.MenuItem) MenuItemResponse {
	res := MenuItemResponse{MenuItem: m}
	if m.Restaurant != nil {
		res.RestaurantName = m.Restaurant.Name
	}
	return res
}

func restaurantExists(id string) bool {
	var count int64
	database.DB.Model(&models.Restaurant{}).Where("id = ?", id).Count(&count)
	return count > 0
}

// GET /api/menu-items?restaurant_id=&category=
func ListMenuItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Restaurant")

		if restaurantID := trimmedQuery(c, "restaurant_id"); restaurantID != "" {
			dbq = dbq.Where("restaurant_id = ?", restaurantID)
		}
		if category := trimmedQuery(c, "category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		var items []models.MenuItem
		if err := dbq.Order("created_at DESC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list menu items")
		}

		res := make([]MenuItemResponse, 0, len(items))
		for _, m := range items {
			res = append(res, toMenuItemResponse(m))
		}
		return c.JSON(res)
	}
}

// GET /api/menu-items/:id
func GetMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.MenuItem
		if err := database.DB.Preload("Restaurant").First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}
		return c.JSON(toMenuItemResponse(m))
	}
}

// POST /api/menu-items
func CreateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item := body.shape()
		if item.RestaurantID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Restaurant is required")
		}
		if item.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if !restaurantExists(item.RestaurantID) {
			return fiber.NewError(fiber.StatusBadRequest, "Restaurant not found")
		}

		if err := database.DB.Create(&item).Error; err != nil {
			log.Errorf("create menu item %s: %v", item.Name, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create menu item")
		}

		audit.Record(c, audit.EntityMenuItem, item.ID, models.AuditActionCreate, "Menu item created: "+item.Name, nil, item)
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/menu-items/:id
func UpdateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.MenuItem
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}

		var body MenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		shaped := body.shape()
		if shaped.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		after := before
		if shaped.RestaurantID != "" && shaped.RestaurantID != before.RestaurantID {
			if !restaurantExists(shaped.RestaurantID) {
				return fiber.NewError(fiber.StatusBadRequest, "Restaurant not found")
			}
			after.RestaurantID = shaped.RestaurantID
		}
		after.Name = shaped.Name
		after.Description = shaped.Description
		after.ImageURL = shaped.ImageURL
		after.Price = shaped.Price
		after.Category = shaped.Category
		after.IsAvailable = shaped.IsAvailable
		after.IsVegetarian = shaped.IsVegetarian
		after.IsVegan = shaped.IsVegan
		after.IsSpicy = shaped.IsSpicy
		after.Calories = shaped.Calories
		after.OrderIndex = shaped.OrderIndex

		if err := database.DB.Save(&after).Error; err != nil {
			log.Errorf("update menu item %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update menu item")
		}

		audit.Record(c, audit.EntityMenuItem, id, models.AuditActionUpdate, "Menu item updated: "+after.Name, before, after)
		return c.JSON(after)
	}
}

// DELETE /api/menu-items/:id
func DeleteMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}

		if err := database.DB.Delete(&models.MenuItem{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete menu item %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete menu item")
		}

		audit.Record(c, audit.EntityMenuItem, id, models.AuditActionDelete, "Menu item deleted: "+item.Name, item, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
