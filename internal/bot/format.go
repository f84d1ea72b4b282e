package bot

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts are rendered with thousands separators and a fixed currency
// suffix, matching the chat display format.
var printer = message.NewPrinter(language.English)

func formatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%v VND", number.Decimal(f))
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
