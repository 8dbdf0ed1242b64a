package orders

import (
	"fmt"
	"time"

	"delivery-admin/internal/currency"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet = "Orders"
	xlsxMIME    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []any{
	"Order number", "Restaurant", "Status", "Subtotal",
	"Delivery fee", "Tax", "Total", "Created at",
}

// buildWorkbook writes one row per order under a bold header.
func buildWorkbook(orders []models.Order, loc *time.Location) (*excelize.File, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := book.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	if err := book.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := book.SetColWidth(exportSheet, "A", "H", 18); err != nil {
		return nil, err
	}

	for i, o := range orders {
		restaurant := ""
		if o.Restaurant != nil {
			restaurant = o.Restaurant.Name
		}
		row := []any{
			o.OrderNumber,
			restaurant,
			string(o.Status),
			currency.FormatPrice(o.Subtotal),
			currency.FormatPrice(o.DeliveryFee),
			currency.FormatPrice(o.Tax),
			currency.FormatPrice(o.Total),
			o.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// GET /api/orders/export?status=&restaurant_id=
func ExportOrdersHandler(loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := filtered(c)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := dbq.Preload("Restaurant").Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		book, err := buildWorkbook(orders, loc)
		if err != nil {
			log.Errorf("build orders workbook: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not export orders")
		}
		defer book.Close()

		buf, err := book.WriteToBuffer()
		if err != nil {
			log.Errorf("write orders workbook: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not export orders")
		}

		filename := fmt.Sprintf("orders-%s.xlsx", time.Now().In(loc).Format("20060102"))
		c.Set(fiber.HeaderContentType, xlsxMIME)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
