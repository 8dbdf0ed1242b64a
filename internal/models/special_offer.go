package models

import "time"

type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixedAmount  DiscountType = "fixed_amount"
	DiscountFreeDelivery DiscountType = "free_delivery"
)

// SpecialOffer with a nil RestaurantID applies to every restaurant.
type SpecialOffer struct {
	Base
	RestaurantID  *string      `gorm:"type:uuid;index" json:"restaurant_id"`
	Title         string       `gorm:"size:200;not null" json:"title"`
	Description   *string      `gorm:"type:text" json:"description"`
	DiscountType  DiscountType `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	MinimumOrder  float64      `json:"minimum_order"`
	MaxDiscount   *float64     `json:"max_discount"`
	Code          *string      `gorm:"size:50;uniqueIndex" json:"code"`
	ImageURL      *string      `gorm:"size:500" json:"image_url"`
	StartDate     time.Time    `gorm:"not null" json:"start_date"`
	EndDate       time.Time    `gorm:"not null" json:"end_date"`
	IsActive      bool         `json:"is_active"`
	UsageLimit    *int         `json:"usage_limit"`
	UsageCount    int          `json:"usage_count"`
}
