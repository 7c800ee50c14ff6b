package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyPrefix is prepended to every formatted price.
const CurrencyPrefix = "Rs. "

var (
	pricePrinter = message.NewPrinter(language.English)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// ParsePrice parses a store price string. Empty or malformed strings fail.
func ParsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// samePrice compares two price strings numerically when both parse, so that
// "1500" and "1500.00" are equal; otherwise it falls back to string equality.
func samePrice(a, b string) bool {
	da, errA := ParsePrice(a)
	db, errB := ParsePrice(b)
	if errA == nil && errB == nil {
		return da.Equal(db)
	}
	return a == b
}

// FormatPrice renders a price with the currency prefix and thousands
// separators, e.g. "Rs. 125,000" or "Rs. 1,499.5". Unparseable input
// renders as "Rs. 0".
func FormatPrice(price string) string {
	d, err := ParsePrice(price)
	if err != nil {
		return CurrencyPrefix + "0"
	}

	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Truncate(0)
	out := pricePrinter.Sprintf("%d", whole.IntPart())
	if frac := d.Sub(whole); !frac.IsZero() {
		digits := strings.TrimRight(strings.TrimPrefix(frac.StringFixed(2), "0."), "0")
		out += "." + digits
	}
	return CurrencyPrefix + sign + out
}

// StripHTML removes markup from rich text fields and trims the result.
func StripHTML(html string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(html, ""))
}

// Truncate shortens text to maxLength runes, appending "..." when cut.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
