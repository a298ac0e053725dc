package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice renders a currency amount as "$35,750.00".
func FormatPrice(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", v)
}
