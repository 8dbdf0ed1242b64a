package orders

import (
	"sort"
	"time"

	"delivery-admin/internal/database"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
)

// activeWindow is how recent the latest order must be for a customer to
// count as active.
const activeWindow = 30 * 24 * time.Hour

type CustomerResponse struct {
	UserID       string    `json:"user_id"`
	Email        *string   `json:"email"`
	OrderCount   int       `json:"order_count"`
	TotalSpent   float64   `json:"total_spent"`
	FirstOrderAt time.Time `json:"first_order_at"`
	LastOrderAt  time.Time `json:"last_order_at"`
}

type CustomerStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type CustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Stats     CustomerStats      `json:"stats"`
}

// summarizeCustomers folds orders into one row per user, latest order first.
func summarizeCustomers(orders []models.Order, now time.Time) CustomersResponse {
	byUser := make(map[string]*CustomerResponse)
	for _, o := range orders {
		cust, ok := byUser[o.UserID]
		if !ok {
			cust = &CustomerResponse{
				UserID:       o.UserID,
				FirstOrderAt: o.CreatedAt,
				LastOrderAt:  o.CreatedAt,
			}
			byUser[o.UserID] = cust
		}
		cust.OrderCount++
		cust.TotalSpent += o.Total
		if o.CreatedAt.Before(cust.FirstOrderAt) {
			cust.FirstOrderAt = o.CreatedAt
		}
		if o.CreatedAt.After(cust.LastOrderAt) {
			cust.LastOrderAt = o.CreatedAt
		}
	}

	res := CustomersResponse{Customers: make([]CustomerResponse, 0, len(byUser))}
	for _, cust := range byUser {
		res.Customers = append(res.Customers, *cust)
		if now.Sub(cust.LastOrderAt) <= activeWindow {
			res.Stats.Active++
		}
	}
	sort.Slice(res.Customers, func(i, j int) bool {
		return res.Customers[i].LastOrderAt.After(res.Customers[j].LastOrderAt)
	})
	res.Stats.Total = len(res.Customers)
	return res
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := database.DB.Select("user_id", "total", "created_at").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customers")
		}

		res := summarizeCustomers(orders, time.Now())
		if len(res.Customers) == 0 {
			return c.JSON(res)
		}

		ids := make([]string, 0, len(res.Customers))
		for _, cust := range res.Customers {
			ids = append(ids, cust.UserID)
		}
		var profiles []models.UserProfile
		if err := database.DB.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
			log.Warningf("load customer emails: %v", err)
			return c.JSON(res)
		}
		emails := make(map[string]string, len(profiles))
		for _, p := range profiles {
			emails[p.ID] = p.Email
		}
		for i := range res.Customers {
			if email, ok := emails[res.Customers[i].UserID]; ok {
				res.Customers[i].Email = &email
			}
		}
		return c.JSON(res)
	}
}

type RiderOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GET /api/riders/available
func AvailableRidersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var riders []RiderOption
		if err := database.DB.Model(&models.Rider{}).
			Select("id", "name").
			Where("is_active = ? AND is_available = ?", true, true).
			Order("name ASC").
			Find(&riders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list riders")
		}
		if riders == nil {
			riders = []RiderOption{}
		}
		return c.JSON(riders)
	}
}
