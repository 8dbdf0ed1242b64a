package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   string `gorm:"size:36;index" json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"`

	// restaurant, category, menu_item, addon, offer, event, rider, ...
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:36;index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`

	// Undone marks rows written by an undo; IsUndone marks rows that were reversed.
	Undone   bool       `json:"undone"`
	IsUndone bool       `json:"is_undone"`
	UndoneBy *string    `gorm:"size:36" json:"undone_by"`
	UndoneAt *time.Time `json:"undone_at"`
}
