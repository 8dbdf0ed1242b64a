// Package promotions manages special offers and discount codes.
package promotions

import (
	"strings"
	"time"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/config"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

var log = logger.New("promotions")

type OfferRequest struct {
	RestaurantID  *string       `json:"restaurant_id"`
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	DiscountType  string        `json:"discount_type"`
	DiscountValue payload.Float `json:"discount_value"`
	MinimumOrder  payload.Float `json:"minimum_order"`
	MaxDiscount   payload.Float `json:"max_discount"`
	Code          *string       `json:"code"`
	ImageURL      *string       `json:"image_url"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	IsActive      *bool         `json:"is_active"`
	UsageLimit    payload.Int   `json:"usage_limit"`
}

func validDiscountType(t models.DiscountType) bool {
	switch t {
	case models.DiscountPercentage, models.DiscountFixedAmount, models.DiscountFreeDelivery:
		return true
	}
	return false
}

// shape validates the form and fills every column, NULLs included: an
// edit replaces the whole offer.
func (r OfferRequest) shape(loc *time.Location) (models.SpecialOffer, error) {
	title := payload.TrimmedOr(r.Title, "")
	if title == "" || strings.TrimSpace(r.StartDate) == "" || strings.TrimSpace(r.EndDate) == "" {
		return models.SpecialOffer{}, fiber.NewError(fiber.StatusBadRequest, "Please fill in all required fields (Title, Start Date, End Date)")
	}

	start, err := payload.ParseDateTime(r.StartDate, loc)
	if err != nil {
		return models.SpecialOffer{}, fiber.NewError(fiber.StatusBadRequest, "Invalid start date")
	}
	end, err := payload.ParseDateTime(r.EndDate, loc)
	if err != nil {
		return models.SpecialOffer{}, fiber.NewError(fiber.StatusBadRequest, "Invalid end date")
	}
	if !end.After(start) {
		return models.SpecialOffer{}, fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
	}

	discountType := models.DiscountType(strings.TrimSpace(r.DiscountType))
	if discountType == "" {
		discountType = models.DiscountPercentage
	}
	if !validDiscountType(discountType) {
		return models.SpecialOffer{}, fiber.NewError(fiber.StatusBadRequest, "Discount type must be percentage, fixed_amount or free_delivery")
	}

	return models.SpecialOffer{
		RestaurantID:  payload.OptionalString(r.RestaurantID),
		Title:         title,
		Description:   payload.OptionalString(r.Description),
		DiscountType:  discountType,
		DiscountValue: r.DiscountValue.Or(0),
		MinimumOrder:  r.MinimumOrder.Or(0),
		MaxDiscount:   r.MaxDiscount.Ptr(),
		Code:          payload.OptionalString(r.Code),
		ImageURL:      payload.OptionalString(r.ImageURL),
		StartDate:     start.UTC(),
		EndDate:       end.UTC(),
		IsActive:      payload.BoolOr(r.IsActive, true),
		UsageLimit:    r.UsageLimit.Ptr(),
	}, nil
}

func parseOffer(c *fiber.Ctx, cfg *config.Config) (models.SpecialOffer, error) {
	var body OfferRequest
	if err := c.BodyParser(&body); err != nil {
		return models.SpecialOffer{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return body.shape(cfg.TZ())
}

func saveError(op string, err error) error {
	if database.IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict, "This offer code is already in use")
	}
	log.Errorf("%s offer: %v", op, err)
	return fiber.NewError(fiber.StatusInternalServerError, "Could not save offer")
}

// GET /api/offers
func ListOffersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var offers []models.SpecialOffer
		if err := database.DB.Order("created_at DESC").Find(&offers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list offers")
		}
		return c.JSON(offers)
	}
}

// GET /api/offers/:id
func GetOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var o models.SpecialOffer
		if err := database.DB.First(&o, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Offer not found")
		}
		return c.JSON(o)
	}
}

// POST /api/offers
func CreateOfferHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offer, err := parseOffer(c, cfg)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&offer).Error; err != nil {
			return saveError("create", err)
		}

		audit.Record(c, audit.EntityOffer, offer.ID, models.AuditActionCreate, "Offer created: "+offer.Title, nil, offer)
		return c.Status(fiber.StatusCreated).JSON(offer)
	}
}

// PUT /api/offers/:id
func UpdateOfferHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.SpecialOffer
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Offer not found")
		}

		offer, err := parseOffer(c, cfg)
		if err != nil {
			return err
		}
		offer.ID = before.ID
		offer.CreatedAt = before.CreatedAt
		offer.UsageCount = before.UsageCount

		if err := database.DB.Save(&offer).Error; err != nil {
			return saveError("update", err)
		}

		audit.Record(c, audit.EntityOffer, id, models.AuditActionUpdate, "Offer updated: "+offer.Title, before, offer)
		return c.JSON(offer)
	}
}

// DELETE /api/offers/:id
func DeleteOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var offer models.SpecialOffer
		if err := database.DB.First(&offer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Offer not found")
		}

		if err := database.DB.Delete(&models.SpecialOffer{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete offer %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete offer")
		}

		audit.Record(c, audit.EntityOffer, id, models.AuditActionDelete, "Offer deleted: "+offer.Title, offer, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
