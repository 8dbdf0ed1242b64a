package models

type File struct {
	Base
	Name     string `gorm:"size:255;not null" json:"name"`
	Type     string `gorm:"size:20;not null" json:"type"` // image | document
	URL      string `gorm:"size:1000;not null" json:"url"`
	Path     string `gorm:"size:500;not null" json:"path"`
	Size     int64  `json:"size"`
	MimeType string `gorm:"size:100" json:"mime_type"`
	IsPublic bool   `json:"is_public"`
}
