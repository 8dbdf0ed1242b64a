// Package currency formats prices for the EUR market.
package currency

import "strconv"

const (
	symbol = "€"
	code   = "EUR"
)

// Format renders amount with the given number of decimals, prefixed by the
// euro sign when showSymbol is set.
func Format(amount float64, showSymbol bool, decimals int) string {
	if decimals < 0 {
		decimals = 2
	}
	formatted := strconv.FormatFloat(amount, 'f', decimals, 64)
	if showSymbol {
		return symbol + formatted
	}
	return formatted
}

// FormatPrice is the table format used across the dashboard, e.g. "€12.50".
func FormatPrice(amount float64) string {
	return Format(amount, true, 2)
}

func Symbol() string { return symbol }

func Code() string { return code }
