package models

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
)

// User is a dashboard operator, not a customer of the platform.
type User struct {
	Base
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
}

// UserProfile is written by the customer app; the dashboard only reads emails.
type UserProfile struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Email string `gorm:"size:255" json:"email"`
}
