package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"delivery-admin/internal/audit"
	"delivery-admin/internal/database"
	"delivery-admin/internal/i18n"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// Column order used when the sheet has no header row.
var defaultImportColumns = []string{
	"name", "price", "category", "description", "calories",
	"is_vegetarian", "is_vegan", "is_spicy",
}

var headerAliases = map[string]string{
	"vegetarian": "is_vegetarian",
	"vegan":      "is_vegan",
	"spicy":      "is_spicy",
	"kcal":       "calories",
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Message  string   `json:"message"`
}

// parseMenuRows turns spreadsheet rows into menu items. A first row whose
// first cell mentions "name" is read as the header and decides the column
// order; rows without a name are skipped, rows with a bad number are reported.
func parseMenuRows(rows [][]string) ([]models.MenuItem, int, []string) {
	if len(rows) == 0 {
		return nil, 0, nil
	}

	columns := map[string]int{}
	start := 0
	if len(rows[0]) > 0 && strings.Contains(strings.ToLower(rows[0][0]), "name") {
		for i, h := range rows[0] {
			key := importColumn(h)
			if _, dup := columns[key]; !dup {
				columns[key] = i
			}
		}
		start = 1
	} else {
		for i, k := range defaultImportColumns {
			columns[k] = i
		}
	}

	cell := func(row []string, key string) string {
		i, ok := columns[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		items   []models.MenuItem
		skipped int
		errs    []string
	)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		line := i + 1

		name := cell(row, "name")
		if name == "" {
			skipped++
			continue
		}

		price, err := parseSheetNumber(cell(row, "price"))
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d (%s): invalid price %q", line, name, cell(row, "price")))
			continue
		}
		calories, err := parseSheetNumber(cell(row, "calories"))
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d (%s): invalid calories %q", line, name, cell(row, "calories")))
			continue
		}

		item := models.MenuItem{
			Name:         name,
			Price:        price,
			Category:     cell(row, "category"),
			Calories:     int(calories),
			IsAvailable:  true,
			IsVegetarian: parseSheetBool(cell(row, "is_vegetarian")),
			IsVegan:      parseSheetBool(cell(row, "is_vegan")),
			IsSpicy:      parseSheetBool(cell(row, "is_spicy")),
			OrderIndex:   len(items),
		}
		if d := cell(row, "description"); d != "" {
			item.Description = &d
		}
		items = append(items, item)
	}
	return items, skipped, errs
}

// importColumn maps a header cell to a column key. Punctuation and unit
// suffixes are dropped, so "Price (€)" and "Calories (kcal)" still match.
func importColumn(header string) string {
	fields := strings.FieldsFunc(strings.ToLower(header), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	key := strings.Join(fields, "_")
	if strings.Contains(key, "name") {
		return "name"
	}
	if k, ok := knownImportColumn(key); ok {
		return k
	}
	if len(fields) > 1 {
		if k, ok := knownImportColumn(fields[0]); ok {
			return k
		}
	}
	return key
}

func knownImportColumn(key string) (string, bool) {
	if alias, ok := headerAliases[key]; ok {
		return alias, true
	}
	for _, c := range defaultImportColumns {
		if c == key {
			return c, true
		}
	}
	return "", false
}

// parseSheetNumber accepts "12.50", "12,50", "€ 12.50", "1,234.50" and
// "1.234,50"; blank is zero. With both separators the last one is the
// decimal point; a lone comma is a decimal comma unless it repeats.
func parseSheetNumber(s string) (float64, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) || r == '\'' || r == '’' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, nil
	}

	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") > 1:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}

func parseSheetBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "x", "si", "sì":
		return true
	}
	return false
}

// POST /api/menu-items/import?restaurant_id=
// Reads the first sheet of an .xlsx upload into the restaurant's menu.
func ImportMenuItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID := trimmedQuery(c, "restaurant_id")
		if restaurantID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Restaurant is required")
		}
		if !restaurantExists(restaurantID) {
			return fiber.NewError(fiber.StatusBadRequest, "Restaurant not found")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
		}
		defer file.Close()

		book, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read spreadsheet: "+err.Error())
		}
		defer book.Close()

		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet has no sheets")
		}
		rows, err := book.GetRows(sheets[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read sheet: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet is empty")
		}

		items, skipped, errs := parseMenuRows(rows)
		res := ImportResponse{Skipped: skipped, Errors: errs}
		if res.Errors == nil {
			res.Errors = []string{}
		}

		for _, item := range items {
			item.RestaurantID = restaurantID
			if err := database.DB.Create(&item).Error; err != nil {
				log.Errorf("import menu item %s: %v", item.Name, err)
				res.Errors = append(res.Errors, fmt.Sprintf("%s: could not be saved", item.Name))
				continue
			}
			audit.Record(c, audit.EntityMenuItem, item.ID, models.AuditActionCreate, "Menu item imported: "+item.Name, nil, item)
			res.Imported++
		}

		log.Infof("menu import for %s: %d imported, %d skipped, %d errors", restaurantID, res.Imported, res.Skipped, len(res.Errors))
		res.Message = i18n.T(i18n.Lang(c), "import.done")
		return c.JSON(res)
	}
}
