package invoice2pdf

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// zeroAmount is printed for prices that are not numbers.
const zeroAmount = "0.00"

var amountPrinter = message.NewPrinter(language.English)

// parseDecimal accepts plain numbers plus the "$" and thousands separators
// that spreadsheets add when a money column is exported as text.
func parseDecimal(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// formatMoney renders d with thousands separators and two decimals.
func formatMoney(d decimal.Decimal) string {
	return amountPrinter.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatPrice renders a raw price cell as "1,234.50", or "0.00" when the
// cell is not a number.
func FormatPrice(raw string) string {
	d, ok := parseDecimal(raw)
	if !ok {
		return zeroAmount
	}
	return formatMoney(d)
}

// FormatQuantity normalises numeric quantities ("3.0" becomes "3") and
// returns anything else unchanged. An empty cell is "0".
func FormatQuantity(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return d.String()
}

// LineAmount multiplies quantity by unit price. Either side failing to parse
// yields "0.00"; an empty quantity counts as zero.
func LineAmount(quantity, price string) string {
	q := decimal.Zero
	if strings.TrimSpace(quantity) != "" {
		var err error
		if q, err = decimal.NewFromString(strings.TrimSpace(quantity)); err != nil {
			return zeroAmount
		}
	}
	p, ok := parseDecimal(price)
	if !ok {
		return zeroAmount
	}
	return formatMoney(q.Mul(p))
}
