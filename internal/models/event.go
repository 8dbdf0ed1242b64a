package models

import "time"

// Event.EventDate is the event day combined with StartTime.
type Event struct {
	Base
	RestaurantID  string      `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Restaurant    *Restaurant `json:"-"`
	Title         string      `gorm:"size:200;not null" json:"title"`
	Description   *string     `gorm:"type:text" json:"description"`
	EventDate     time.Time   `gorm:"index;not null" json:"event_date"`
	StartTime     string      `gorm:"size:5;not null" json:"start_time"`
	EndTime       string      `gorm:"size:5;not null" json:"end_time"`
	ImageURL      *string     `gorm:"size:500" json:"image_url"`
	CoverImageURL *string     `gorm:"size:500" json:"cover_image_url"`
	HasDJ         bool        `json:"has_dj"`
	DJName        *string     `gorm:"size:100" json:"dj_name"`
	DJContact     *string     `gorm:"size:100" json:"dj_contact"`
	MaxAttendees  *int        `json:"max_attendees"`
	TicketPrice   float64     `json:"ticket_price"`
	IsActive      bool        `json:"is_active"`
}

type PartyRequestStatus string

const (
	PartyRequestPending   PartyRequestStatus = "pending"
	PartyRequestApproved  PartyRequestStatus = "approved"
	PartyRequestRejected  PartyRequestStatus = "rejected"
	PartyRequestCancelled PartyRequestStatus = "cancelled"
)

// PartyRequest rows are submitted by customers; the dashboard only reviews them.
type PartyRequest struct {
	Base
	UserID              string             `gorm:"type:uuid;index;not null" json:"user_id"`
	RestaurantID        string             `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Restaurant          *Restaurant        `json:"-"`
	EventName           string             `gorm:"size:200;not null" json:"event_name"`
	EventDate           time.Time          `json:"event_date"`
	StartTime           string             `gorm:"size:5" json:"start_time"`
	EndTime             string             `gorm:"size:5" json:"end_time"`
	ExpectedAttendees   int                `json:"expected_attendees"`
	RequiresDJ          bool               `json:"requires_dj"`
	SpecialRequirements *string            `gorm:"type:text" json:"special_requirements"`
	ContactPhone        *string            `gorm:"size:50" json:"contact_phone"`
	ContactEmail        *string            `gorm:"size:255" json:"contact_email"`
	Status              PartyRequestStatus `gorm:"size:20;not null" json:"status"`
	AdminNotes          *string            `gorm:"type:text" json:"admin_notes"`
}

type Notification struct {
	Base
	UserID    string  `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      string  `gorm:"size:50;not null" json:"type"`
	Title     string  `gorm:"size:200;not null" json:"title"`
	Message   string  `gorm:"type:text" json:"message"`
	RelatedID *string `gorm:"type:uuid" json:"related_id"`
	IsRead    bool    `json:"is_read"`
}
