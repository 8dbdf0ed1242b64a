package models

// MenuItem.Category holds the category name, not its id: the customer app
// groups menus by that label.
type MenuItem struct {
	Base
	RestaurantID string      `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Restaurant   *Restaurant `json:"-"`
	Name         string      `gorm:"size:200;not null" json:"name"`
	Description  *string     `gorm:"type:text" json:"description"`
	ImageURL     *string     `gorm:"size:500" json:"image_url"`
	Price        float64     `gorm:"not null" json:"price"`
	Category     string      `gorm:"size:100;index" json:"category"`
	IsAvailable  bool        `json:"is_available"`
	IsVegetarian bool        `json:"is_vegetarian"`
	IsVegan      bool        `json:"is_vegan"`
	IsSpicy      bool        `json:"is_spicy"`
	Calories     int         `json:"calories"`
	OrderIndex   int         `json:"order_index"`
}

type Addon struct {
	Base
	MenuItemID    string        `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	MenuItem      *MenuItem     `json:"-"`
	Name          string        `gorm:"size:100;not null" json:"name"`
	Description   *string       `gorm:"type:text" json:"description"`
	Price         float64       `json:"price"`
	IsRequired    bool          `json:"is_required"`
	MaxSelections *int          `json:"max_selections"`
	OrderIndex    int           `json:"order_index"`
	IsActive      bool          `json:"is_active"`
	Options       []AddonOption `gorm:"constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type AddonOption struct {
	Base
	AddonID    string  `gorm:"type:uuid;index;not null" json:"addon_id"`
	Name       string  `gorm:"size:100;not null" json:"name"`
	Price      float64 `json:"price"`
	OrderIndex int     `json:"order_index"`
	IsActive   bool    `json:"is_active"`
}
