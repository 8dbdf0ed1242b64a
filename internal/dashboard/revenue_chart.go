package dashboard

import (
	"strconv"
	"time"

	"delivery-admin/internal/currency"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RevenuePoint struct {
	Label   string  `json:"label"` // first day of the bucket
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type RevenueTotals struct {
	Orders           int     `json:"orders"`
	Revenue          float64 `json:"revenue"`
	RevenueFormatted string  `json:"revenue_formatted"`
}

type RevenueChartResponse struct {
	Period       string         `json:"period"` // daily | weekly | monthly
	RestaurantID string         `json:"restaurant_id,omitempty"`
	From         string         `json:"from"`
	To           string         `json:"to"`
	Points       []RevenuePoint `json:"points"`
	Totals       RevenueTotals  `json:"totals"`
}

func defaultCount(period string) int {
	switch period {
	case "weekly":
		return 8
	case "monthly":
		return 12
	default:
		return 7
	}
}

// bucketStart truncates t to its day, Monday-based week or month in t's zone.
func bucketStart(t time.Time, period string) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch period {
	case "weekly":
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "monthly":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

func nextBucket(t time.Time, period string) time.Time {
	switch period {
	case "weekly":
		return t.AddDate(0, 0, 7)
	case "monthly":
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// revenueChart buckets non-cancelled orders into count consecutive periods
// ending with the one containing now. Empty buckets are kept.
func revenueChart(orders []models.Order, period string, count int, now time.Time) RevenueChartResponse {
	loc := now.Location()
	last := bucketStart(now, period)
	first := last
	for i := 1; i < count; i++ {
		switch period {
		case "weekly":
			first = first.AddDate(0, 0, -7)
		case "monthly":
			first = first.AddDate(0, -1, 0)
		default:
			first = first.AddDate(0, 0, -1)
		}
	}

	index := make(map[time.Time]int, count)
	points := make([]RevenuePoint, 0, count)
	for b := first; !b.After(last); b = nextBucket(b, period) {
		index[b] = len(points)
		points = append(points, RevenuePoint{Label: b.Format("2006-01-02")})
	}

	var totals RevenueTotals
	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		i, ok := index[bucketStart(o.CreatedAt.In(loc), period)]
		if !ok {
			continue
		}
		points[i].Orders++
		points[i].Revenue += o.Total
		totals.Orders++
		totals.Revenue += o.Total
	}
	totals.RevenueFormatted = currency.FormatPrice(totals.Revenue)

	return RevenueChartResponse{
		Period: period,
		From:   first.Format("2006-01-02"),
		To:     nextBucket(last, period).AddDate(0, 0, -1).Format("2006-01-02"),
		Points: points,
		Totals: totals,
	}
}

// GET /api/dashboard/revenue-chart?period=daily&count=7&restaurant_id=
func RevenueChartHandler(loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily")
		if period != "weekly" && period != "monthly" {
			period = "daily"
		}

		count := defaultCount(period)
		if raw := c.Query("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > 366 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid count")
			}
			count = n
		}

		now := time.Now().In(loc)
		chart := revenueChart(nil, period, count, now)
		from, err := time.ParseInLocation("2006-01-02", chart.From, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build chart")
		}

		dbq := database.DB.Select("status", "total", "created_at").Where("created_at >= ?", from.UTC())
		restaurantID := c.Query("restaurant_id")
		if restaurantID != "" {
			dbq = dbq.Where("restaurant_id = ?", restaurantID)
		}

		var orders []models.Order
		if err := dbq.Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not aggregate orders")
		}

		chart = revenueChart(orders, period, count, now)
		chart.RestaurantID = restaurantID
		return c.JSON(chart)
	}
}
