// Package view holds presentation helpers shared by HTTP handlers.
package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Dutch)

// Money renders an amount in euros for display. Grouping and decimal
// separators follow the storefront locale.
func Money(amount float64) string {
	return printer.Sprintf("€ %v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
