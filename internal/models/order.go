package models

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing,
	OrderOutForDelivery, OrderDelivered, OrderCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	Base
	UserID          string          `gorm:"type:uuid;index;not null" json:"user_id"`
	RestaurantID    string          `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Restaurant      *Restaurant     `json:"-"`
	OrderNumber     string          `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Status          OrderStatus     `gorm:"size:30;index;not null" json:"status"`
	Subtotal        float64         `json:"subtotal"`
	DeliveryFee     float64         `json:"delivery_fee"`
	Tax             float64         `json:"tax"`
	Total           float64         `json:"total"`
	DeliveryAddress string          `gorm:"type:text" json:"delivery_address"`
	PaymentMethod   *string         `gorm:"size:30" json:"payment_method"`
	PaymentStatus   string          `gorm:"size:30" json:"payment_status"`
	RiderID         *string         `gorm:"type:uuid;index" json:"rider_id"`
	Rider           *Rider          `json:"-"`
	Items           []OrderItem     `json:"-"`
	Tracking        []OrderTracking `json:"-"`
}

type OrderItem struct {
	Base
	OrderID             string    `gorm:"type:uuid;index;not null" json:"order_id"`
	MenuItemID          string    `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	MenuItem            *MenuItem `json:"-"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	TotalPrice          float64   `json:"total_price"`
	SpecialInstructions *string   `gorm:"type:text" json:"special_instructions"`
}

type OrderTracking struct {
	Base
	OrderID string      `gorm:"type:uuid;index;not null" json:"order_id"`
	Status  OrderStatus `gorm:"size:30;not null" json:"status"`
	Note    *string     `gorm:"type:text" json:"note"`
}

func (OrderTracking) TableName() string { return "order_tracking" }
