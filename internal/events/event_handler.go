// Package events manages restaurant events and reviews the party requests
// customers submit.
package events

import (
	"time"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/broker"
	"delivery-admin/internal/config"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
)

var log = logger.New("events")

const requiredFieldsMessage = "Please fill in all required fields (Title, Restaurant, Date, Start Time, End Time)"

type EventRequest struct {
	RestaurantID  *string       `json:"restaurant_id"`
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	EventDate     *string       `json:"event_date"`
	StartTime     *string       `json:"start_time"`
	EndTime       *string       `json:"end_time"`
	ImageURL      *string       `json:"image_url"`
	CoverImageURL *string       `json:"cover_image_url"`
	HasDJ         *bool         `json:"has_dj"`
	DJName        *string       `json:"dj_name"`
	DJContact     *string       `json:"dj_contact"`
	MaxAttendees  payload.Int   `json:"max_attendees"`
	TicketPrice   payload.Float `json:"ticket_price"`
	IsActive      *bool         `json:"is_active"`
}

// shape checks the required fields and stores event_date as the event day
// at its start time in loc.
func (r EventRequest) shape(loc *time.Location) (models.Event, error) {
	restaurantID := payload.TrimmedOr(r.RestaurantID, "")
	title := payload.TrimmedOr(r.Title, "")
	date := payload.TrimmedOr(r.EventDate, "")
	start := payload.TrimmedOr(r.StartTime, "")
	end := payload.TrimmedOr(r.EndTime, "")
	if title == "" || restaurantID == "" || date == "" || start == "" || end == "" {
		return models.Event{}, fiber.NewError(fiber.StatusBadRequest, requiredFieldsMessage)
	}

	eventDate, err := payload.CombineDateTime(date, start, loc)
	if err != nil {
		return models.Event{}, fiber.NewError(fiber.StatusBadRequest, "Invalid event date or start time")
	}
	endClock, err := payload.ParseClock(end)
	if err != nil {
		return models.Event{}, fiber.NewError(fiber.StatusBadRequest, "Invalid end time")
	}

	return models.Event{
		RestaurantID:  restaurantID,
		Title:         title,
		Description:   payload.OptionalString(r.Description),
		EventDate:     eventDate.UTC(),
		StartTime:     payload.ClockHHMM(start),
		EndTime:       endClock,
		ImageURL:      payload.OptionalString(r.ImageURL),
		CoverImageURL: payload.OptionalString(r.CoverImageURL),
		HasDJ:         payload.BoolOr(r.HasDJ, false),
		DJName:        payload.OptionalString(r.DJName),
		DJContact:     payload.OptionalString(r.DJContact),
		MaxAttendees:  r.MaxAttendees.NonZeroPtr(),
		TicketPrice:   r.TicketPrice.Or(0),
		IsActive:      payload.BoolOr(r.IsActive, true),
	}, nil
}

// eventUpdates always writes the required columns, both flags and the
// ticket price; optional columns only when they carry a value.
func eventUpdates(e models.Event) map[string]any {
	m := map[string]any{
		"restaurant_id": e.RestaurantID,
		"title":         e.Title,
		"event_date":    e.EventDate,
		"start_time":    e.StartTime,
		"end_time":      e.EndTime,
		"has_dj":        e.HasDJ,
		"is_active":     e.IsActive,
		"ticket_price":  e.TicketPrice,
	}
	optional := map[string]*string{
		"description":     e.Description,
		"image_url":       e.ImageURL,
		"cover_image_url": e.CoverImageURL,
		"dj_name":         e.DJName,
		"dj_contact":      e.DJContact,
	}
	for col, v := range optional {
		if v != nil {
			m[col] = *v
		}
	}
	if e.MaxAttendees != nil {
		m["max_attendees"] = *e.MaxAttendees
	}
	return m
}

type EventResponse struct {
	models.Event
	RestaurantName string `json:"restaurant_name"`
}

// EventFormResponse is the edit-form view: the day and clock times as the
// date and time inputs expect them.
type EventFormResponse struct {
	models.Event
	EventDate string `json:"event_date"`
}

type eventCreatedMessage struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Title        string    `json:"title"`
	EventDate    time.Time `json:"event_date"`
}

func parseEvent(c *fiber.Ctx, cfg *config.Config) (models.Event, error) {
	var body EventRequest
	if err := c.BodyParser(&body); err != nil {
		return models.Event{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	e, err := body.shape(cfg.TZ())
	if err != nil {
		return e, err
	}

	var count int64
	database.DB.Model(&models.Restaurant{}).Where("id = ?", e.RestaurantID).Count(&count)
	if count == 0 {
		return models.Event{}, fiber.NewError(fiber.StatusBadRequest, "Restaurant not found")
	}
	return e, nil
}

// GET /api/events
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var events []models.Event
		if err := database.DB.Preload("Restaurant").Order("event_date DESC").Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list events")
		}

		res := make([]EventResponse, 0, len(events))
		for _, e := range events {
			item := EventResponse{Event: e}
			if e.Restaurant != nil {
				item.RestaurantName = e.Restaurant.Name
			}
			res = append(res, item)
		}
		return c.JSON(res)
	}
}

// GET /api/events/:id
func GetEventHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var e models.Event
		if err := database.DB.First(&e, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}

		e.StartTime = payload.ClockHHMM(e.StartTime)
		e.EndTime = payload.ClockHHMM(e.EndTime)
		return c.JSON(EventFormResponse{
			Event:     e,
			EventDate: e.EventDate.In(cfg.TZ()).Format(payload.DateLayout),
		})
	}
}

// POST /api/events
func CreateEventHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := parseEvent(c, cfg)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&e).Error; err != nil {
			log.Errorf("create event %s: %v", e.Title, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create event")
		}

		audit.Record(c, audit.EntityEvent, e.ID, models.AuditActionCreate, "Event created: "+e.Title, nil, e)
		broker.Notify(c.UserContext(), broker.EventCreated, eventCreatedMessage{
			ID:           e.ID,
			RestaurantID: e.RestaurantID,
			Title:        e.Title,
			EventDate:    e.EventDate,
		})
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// PUT /api/events/:id
func UpdateEventHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var before models.Event
		if err := database.DB.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}

		e, err := parseEvent(c, cfg)
		if err != nil {
			return err
		}

		if err := database.DB.Model(&models.Event{}).Where("id = ?", id).Updates(eventUpdates(e)).Error; err != nil {
			log.Errorf("update event %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update event")
		}

		var after models.Event
		if err := database.DB.First(&after, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reload event")
		}

		audit.Record(c, audit.EntityEvent, id, models.AuditActionUpdate, "Event updated: "+after.Title, before, after)
		return c.JSON(after)
	}
}

// DELETE /api/events/:id
func DeleteEventHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var e models.Event
		if err := database.DB.First(&e, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}

		if err := database.DB.Delete(&models.Event{}, "id = ?", id).Error; err != nil {
			log.Errorf("delete event %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete event")
		}

		audit.Record(c, audit.EntityEvent, id, models.AuditActionDelete, "Event deleted: "+e.Title, e, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
