// Package dashboard serves the overview page: headline counts, the revenue
// chart and the localised navigation.
package dashboard

import (
	"time"

	"delivery-admin/internal/cache"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
)

var log = logger.New("dashboard")

const StatsCacheKey = "dashboard:stats"

type Stats struct {
	Restaurants int64 `json:"restaurants"`
	MenuItems   int64 `json:"menu_items"`
	Orders      int64 `json:"orders"`
	Customers   int64 `json:"customers"`
}

// countStats reads the headline numbers; customers are distinct ordering users.
func countStats() (Stats, error) {
	var s Stats
	if err := database.DB.Model(&models.Restaurant{}).Count(&s.Restaurants).Error; err != nil {
		return s, err
	}
	if err := database.DB.Model(&models.MenuItem{}).Count(&s.MenuItems).Error; err != nil {
		return s, err
	}
	if err := database.DB.Model(&models.Order{}).Count(&s.Orders).Error; err != nil {
		return s, err
	}
	if err := database.DB.Model(&models.Order{}).Distinct("user_id").Count(&s.Customers).Error; err != nil {
		return s, err
	}
	return s, nil
}

// GET /api/dashboard/stats
// Served from Redis when possible; any cache error falls through to the DB.
func StatsHandler(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var cached Stats
		hit, err := cache.GetJSON(ctx, StatsCacheKey, &cached)
		if err != nil {
			log.Warningf("read %s: %v", StatsCacheKey, err)
		}
		if hit {
			c.Set("X-Cache", "HIT")
			return c.JSON(cached)
		}

		stats, err := countStats()
		if err != nil {
			log.Errorf("count dashboard stats: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard stats")
		}

		if err := cache.SetJSON(ctx, StatsCacheKey, stats, ttl); err != nil {
			log.Warningf("write %s: %v", StatsCacheKey, err)
		}
		c.Set("X-Cache", "MISS")
		return c.JSON(stats)
	}
}
