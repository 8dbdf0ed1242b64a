package models

import "gorm.io/datatypes"

// AppConfig holds settings read by the customer app, keyed by a unique name.
type AppConfig struct {
	Base
	Key         string         `gorm:"size:128;uniqueIndex;not null" json:"key"`
	Value       datatypes.JSON `gorm:"type:jsonb" json:"value"`
	Description string         `gorm:"type:text" json:"description"`
}

func (AppConfig) TableName() string { return "app_config" }

type Content struct {
	Base
	Page        string         `gorm:"size:50;index;not null" json:"page"`
	Section     string         `gorm:"size:50;not null" json:"section"`
	Title       string         `gorm:"size:200" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Content     datatypes.JSON `gorm:"type:jsonb" json:"content"`
	ImageURL    *string        `gorm:"size:500" json:"image_url"`
	OrderIndex  int            `json:"order_index"`
	IsActive    bool           `json:"is_active"`
}

func (Content) TableName() string { return "content" }
