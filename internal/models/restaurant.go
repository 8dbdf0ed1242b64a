package models

type Restaurant struct {
	Base
	Name            string   `gorm:"size:200;not null" json:"name"`
	Slug            string   `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description     *string  `gorm:"type:text" json:"description"`
	ImageURL        *string  `gorm:"size:500" json:"image_url"`
	CoverImageURL   *string  `gorm:"size:500" json:"cover_image_url"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	DeliveryTimeMin int      `json:"delivery_time_min"`
	DeliveryFee     float64  `json:"delivery_fee"`
	MinimumOrder    float64  `json:"minimum_order"`
	CategoryID      *string  `gorm:"type:uuid;index" json:"category_id"`
	Address         *string  `gorm:"size:255" json:"address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Phone           *string  `gorm:"size:50" json:"phone"`
	IsFeatured      bool     `json:"is_featured"`
	IsActive        bool     `json:"is_active"`
}

type Category struct {
	Base
	Name       string  `gorm:"size:100;not null" json:"name"`
	Slug       string  `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	ImageURL   *string `gorm:"size:500" json:"image_url"`
	Icon       *string `gorm:"size:50" json:"icon"`
	OrderIndex int     `json:"order_index"`
	IsActive   bool    `json:"is_active"`
}
