// Package orders lets operators follow orders through delivery: status
// changes, rider assignment, removal and spreadsheet export.
package orders

import (
	"strconv"
	"strings"

	"delivery-admin/internal/broker"
	"delivery-admin/internal/currency"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"
	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var log = logger.New("orders")

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type OrderResponse struct {
	models.Order
	RestaurantName string  `json:"restaurant_name"`
	RiderName      *string `json:"rider_name"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

type OrderItemResponse struct {
	models.OrderItem
	MenuItemName     string  `json:"menu_item_name"`
	MenuItemImageURL *string `json:"menu_item_image_url"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items    []OrderItemResponse    `json:"items"`
	Tracking []models.OrderTracking `json:"tracking"`

	SubtotalFormatted    string `json:"subtotal_formatted"`
	DeliveryFeeFormatted string `json:"delivery_fee_formatted"`
	TaxFormatted         string `json:"tax_formatted"`
	TotalFormatted       string `json:"total_formatted"`
}

type StatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note"`
}

type RiderRequest struct {
	RiderID *string `json:"rider_id"`
}

type statusChangedMessage struct {
	OrderID        string             `json:"order_id"`
	OrderNumber    string             `json:"order_number"`
	UserID         string             `json:"user_id"`
	RestaurantID   string             `json:"restaurant_id"`
	PreviousStatus models.OrderStatus `json:"previous_status"`
	Status         models.OrderStatus `json:"status"`
}

func toOrderResponse(o models.Order) OrderResponse {
	res := OrderResponse{Order: o}
	if o.Restaurant != nil {
		res.RestaurantName = o.Restaurant.Name
	}
	if o.Rider != nil {
		name := o.Rider.Name
		res.RiderName = &name
	}
	return res
}

// filtered applies the status and restaurant filters shared by the list and
// the export.
func filtered(c *fiber.Ctx) (*gorm.DB, error) {
	dbq := database.DB.Model(&models.Order{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		status := models.OrderStatus(s)
		if !status.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown order status")
		}
		dbq = dbq.Where("status = ?", status)
	}
	if restaurantID := strings.TrimSpace(c.Query("restaurant_id")); restaurantID != "" {
		dbq = dbq.Where("restaurant_id = ?", restaurantID)
	}
	return dbq, nil
}

func pageParams(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// GET /api/orders?status=&restaurant_id=&page=&limit=
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := filtered(c)
		if err != nil {
			return err
		}
		page, limit := pageParams(c)

		var total int64
		if err := dbq.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count orders")
		}

		var orders []models.Order
		if err := dbq.Preload("Restaurant").Preload("Rider").
			Order("created_at DESC").
			Limit(limit).Offset((page - 1) * limit).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		res := OrderListResponse{
			Orders: make([]OrderResponse, 0, len(orders)),
			Total:  total,
			Page:   page,
			Limit:  limit,
		}
		for _, o := range orders {
			res.Orders = append(res.Orders, toOrderResponse(o))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var o models.Order
		if err := database.DB.
			Preload("Restaurant").
			Preload("Rider").
			Preload("Items.MenuItem").
			Preload("Tracking", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
			First(&o, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		res := OrderDetailResponse{
			OrderResponse:        toOrderResponse(o),
			Items:                make([]OrderItemResponse, 0, len(o.Items)),
			Tracking:             o.Tracking,
			SubtotalFormatted:    currency.FormatPrice(o.Subtotal),
			DeliveryFeeFormatted: currency.FormatPrice(o.DeliveryFee),
			TaxFormatted:         currency.FormatPrice(o.Tax),
			TotalFormatted:       currency.FormatPrice(o.Total),
		}
		if res.Tracking == nil {
			res.Tracking = []models.OrderTracking{}
		}
		for _, it := range o.Items {
			item := OrderItemResponse{OrderItem: it}
			if it.MenuItem != nil {
				item.MenuItemName = it.MenuItem.Name
				item.MenuItemImageURL = it.MenuItem.ImageURL
			}
			res.Items = append(res.Items, item)
		}
		return c.JSON(res)
	}
}

// PUT /api/orders/:id/status
// Every change is appended to order_tracking.
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		status := models.OrderStatus(strings.TrimSpace(body.Status))
		if !status.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown order status")
		}

		var (
			o        models.Order
			previous models.OrderStatus
		)
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&o, "id = ?", id).Error; err != nil {
				return err
			}
			previous = o.Status

			if err := tx.Model(&o).Update("status", status).Error; err != nil {
				return err
			}
			return tx.Create(&models.OrderTracking{
				OrderID: o.ID,
				Status:  status,
				Note:    payload.OptionalString(body.Note),
			}).Error
		})
		if err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Order not found")
			}
			log.Errorf("update order %s status: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update order status")
		}

		broker.Notify(c.UserContext(), broker.OrderStatusChanged, statusChangedMessage{
			OrderID:        o.ID,
			OrderNumber:    o.OrderNumber,
			UserID:         o.UserID,
			RestaurantID:   o.RestaurantID,
			PreviousStatus: previous,
			Status:         status,
		})

		o.Status = status
		return c.JSON(o)
	}
}

// PUT /api/orders/:id/rider
// An empty rider_id unassigns the order.
func AssignRiderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body RiderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		riderID := payload.OptionalString(body.RiderID)

		var o models.Order
		if err := database.DB.First(&o, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		if riderID != nil {
			var count int64
			database.DB.Model(&models.Rider{}).Where("id = ?", *riderID).Count(&count)
			if count == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Rider not found")
			}
		}

		if err := database.DB.Model(&o).Update("rider_id", riderID).Error; err != nil {
			log.Errorf("assign rider to order %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not assign rider")
		}

		o.RiderID = riderID
		return c.JSON(o)
	}
}

// DELETE /api/orders/:id
// Items, tracking and the order go in one transaction.
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var o models.Order
			if err := tx.First(&o, "id = ?", id).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderTracking{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Order{}, "id = ?", id).Error
		})
		if err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Order not found")
			}
			log.Errorf("delete order %s: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete order")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
