// Package riders manages the delivery riders orders are assigned to.
package riders

import (
	"strings"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var log = logger.New("riders")

type RiderRequest struct {
	UserID           *string       `json:"user_id"`
	Name             *string       `json:"name"`
	Phone            *string       `json:"phone"`
	VehicleType      *string       `json:"vehicle_type"`
	VehicleNumber    *string       `json:"vehicle_number"`
	LicenseNumber    *string       `json:"license_number"`
	CurrentLatitude  payload.Float `json:"current_latitude"`
	CurrentLongitude payload.Float `json:"current_longitude"`
	IsAvailable      *bool         `json:"is_available"`
	IsActive         *bool         `json:"is_active"`
}

// LinkedUser mirrors the shape the user picker expects.
type LinkedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func validVehicleType(v string) bool {
	if v == "" {
		return true
	}
	for _, t := range models.VehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

func parseRider(c *fiber.Ctx) (models.Rider, error) {
	var body RiderRequest
	if err := c.BodyParser(&body); err != nil {
		return models.Rider{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	r := models.Rider{
		UserID:           payload.OptionalString(body.UserID),
		Name:             payload.TrimmedOr(body.Name, ""),
		Phone:            payload.TrimmedOr(body.Phone, ""),
		VehicleType:      strings.ToLower(payload.TrimmedOr(body.VehicleType, "")),
		VehicleNumber:    payload.TrimmedOr(body.VehicleNumber, ""),
		LicenseNumber:    payload.TrimmedOr(body.LicenseNumber, ""),
		CurrentLatitude:  body.CurrentLatitude.Ptr(),
		CurrentLongitude: body.CurrentLongitude.Ptr(),
		IsAvailable:      payload.BoolOr(body.IsAvailable, true),
		IsActive:         payload.BoolOr(body.IsActive, true),
	}
	if r.Name == "" {
		return models.Rider{}, fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}
	if !validVehicleType(r.VehicleType) {
		return models.Rider{}, fiber.NewError(fiber.StatusBadRequest, "Vehicle type must be bike, motorcycle, car or scooter")
	}
	return r, nil
}

// GET /api/riders
func ListRidersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var riders []models.Rider
		if err := database.DB.Order("created_at DESC").Find(&riders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list riders")
		}
		return c.JSON(riders)
	}
}

// GET /api/riders/linked-users
func LinkedUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var riders []models.Rider
		if err := database.DB.Where("user_id IS NOT NULL").Order("name").Find(&riders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list linked users")
		}

		res := make([]LinkedUser, 0, len(riders))
		for _, r := range riders {
			res = append(res, LinkedUser{ID: *r.UserID, Email: r.Name})
		}
		return c.JSON(res)
	}
}

// GET /api/riders/:id
func GetRiderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var r models.Rider
		if err := database.DB.First(&r, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rider not found")
		}
		return c.JSON(r)
	}
}

// POST /api/riders
func CreateRiderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRider(c)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&r).Error; err != nil {
			log.Errorf("create rider %s: %v", r.Name, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create rider")
		}

		audit.Record(c, audit.EntityRider, r.ID, models.AuditActionCreate, "Rider created: "+r.Name, nil, r)
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// PUT /api/riders/:id
func UpdateRiderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.Rider
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rider not found")
		}

		r, err := parseRider(c)
		if err != nil {
			return err
		}
		r.Base = before.Base

		if err := database.DB.Save(&r).Error; err != nil {
			log.Errorf("update rider %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update rider")
		}

		audit.Record(c, audit.EntityRider, id, models.AuditActionUpdate, "Rider updated: "+r.Name, before, r)
		return c.JSON(r)
	}
}

// DELETE /api/riders/:id
// Orders keep their history; the rider reference is cleared.
func DeleteRiderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var r models.Rider
		if err := database.DB.First(&r, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rider not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Order{}).Where("rider_id = ?", id).Update("rider_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Rider{}, "id = ?", id).Error
		})
		if err != nil {
			log.Errorf("delete rider %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete rider")
		}

		audit.Record(c, audit.EntityRider, id, models.AuditActionDelete, "Rider deleted: "+r.Name, r, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
