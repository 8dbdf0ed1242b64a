package events

import (
	"fmt"
	"strings"

	"delivery-admin/internal/broker"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const notificationTypePartyRequest = "party_request"

type PartyRequestResponse struct {
	models.PartyRequest
	RestaurantName string  `json:"restaurant_name"`
	UserEmail      *string `json:"user_email"`
}

type StatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type partyRequestMessage struct {
	ID         string                    `json:"id"`
	UserID     string                    `json:"user_id"`
	EventName  string                    `json:"event_name"`
	Status     models.PartyRequestStatus `json:"status"`
	AdminNotes *string                   `json:"admin_notes"`
}

func validPartyStatus(s models.PartyRequestStatus) bool {
	switch s {
	case models.PartyRequestPending, models.PartyRequestApproved,
		models.PartyRequestRejected, models.PartyRequestCancelled:
		return true
	}
	return false
}

// decisionNotification builds the message sent to the customer once a
// request is approved or rejected.
func decisionNotification(req models.PartyRequest, status models.PartyRequestStatus, notes *string) models.Notification {
	title, verb := "Party Request Rejected", "rejected"
	if status == models.PartyRequestApproved {
		title, verb = "Party Request Approved", "approved"
	}

	msg := fmt.Sprintf(`Your party request "%s" has been %s.`, req.EventName, verb)
	if notes != nil {
		msg += " Notes: " + *notes
	}

	related := req.ID
	return models.Notification{
		UserID:    req.UserID,
		Type:      notificationTypePartyRequest,
		Title:     title,
		Message:   msg,
		RelatedID: &related,
	}
}

// GET /api/party-requests
func ListPartyRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requests []models.PartyRequest
		if err := database.DB.Preload("Restaurant").Order("created_at DESC").Find(&requests).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list party requests")
		}

		userIDs := make([]string, 0, len(requests))
		for _, r := range requests {
			userIDs = append(userIDs, r.UserID)
		}

		emails := map[string]string{}
		if len(userIDs) > 0 {
			var profiles []models.UserProfile
			// profiles are optional; a failed lookup only hides the emails
			if err := database.DB.Where("id IN ?", userIDs).Find(&profiles).Error; err != nil {
				log.Warningf("load user profiles: %v", err)
			}
			for _, p := range profiles {
				emails[p.ID] = p.Email
			}
		}

		res := make([]PartyRequestResponse, 0, len(requests))
		for _, r := range requests {
			item := PartyRequestResponse{PartyRequest: r}
			if r.Restaurant != nil {
				item.RestaurantName = r.Restaurant.Name
			}
			if email, ok := emails[r.UserID]; ok {
				item.UserEmail = &email
			}
			res = append(res, item)
		}
		return c.JSON(res)
	}
}

// PUT /api/party-requests/:id/status
// Approvals and rejections also notify the customer.
func UpdatePartyRequestStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		status := models.PartyRequestStatus(strings.TrimSpace(body.Status))
		if !validPartyStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "Status must be pending, approved, rejected or cancelled")
		}
		notes := payload.OptionalString(body.AdminNotes)

		var req models.PartyRequest
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&req, "id = ?", id).Error; err != nil {
				return err
			}

			if err := tx.Model(&req).Updates(map[string]any{
				"status":      status,
				"admin_notes": notes,
			}).Error; err != nil {
				return err
			}

			if status == models.PartyRequestApproved || status == models.PartyRequestRejected {
				n := decisionNotification(req, status, notes)
				if err := tx.Create(&n).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Party request not found")
			}
			log.Errorf("update party request %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update party request")
		}

		broker.Notify(c.UserContext(), broker.PartyRequestPrefix+string(status), partyRequestMessage{
			ID:         req.ID,
			UserID:     req.UserID,
			EventName:  req.EventName,
			Status:     status,
			AdminNotes: notes,
		})

		req.Status = status
		req.AdminNotes = notes
		return c.JSON(req)
	}
}
