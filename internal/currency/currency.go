// Package currency implements the single display rule used for every
// monetary amount in the app: locale-aware digit grouping, zero decimal
// places, prefixed with the code "PKR".
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// PKR formats an amount for display or export, e.g. PKR(3500) == "PKR 3,500".
func PKR(amount float64) string {
	return printer.Sprintf("PKR %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
