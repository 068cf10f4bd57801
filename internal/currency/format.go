// Package currency renders amounts for display using Turkish locale
// conventions (thousands separator ".", decimal comma).
package currency

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// zeroFallback is returned for any input that is not a finite number.
const zeroFallback = "0,00"

var printer = message.NewPrinter(language.Turkish)

// FormatCurrency renders amount with exactly two fraction digits and
// locale-aware grouping, e.g. 1234.5 -> "1.234,50".
func FormatCurrency(amount float64) string {
	if !isFinite(amount) {
		return zeroFallback
	}
	return printer.Sprintf("%.2f", amount)
}

// FormatCurrencyString parses raw as a decimal number and formats it.
// Unparsable input yields the zero fallback, never an error.
func FormatCurrencyString(raw string) string {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return zeroFallback
	}
	return FormatCurrency(amount)
}

// FormatCompactCurrency abbreviates large magnitudes: 1500000 -> "1,5M",
// 2500 -> "2,5K". Amounts below a thousand format as FormatCurrency does.
func FormatCompactCurrency(amount float64) string {
	if !isFinite(amount) {
		return zeroFallback
	}
	abs := math.Abs(amount)
	switch {
	case abs >= 1_000_000:
		return printer.Sprintf("%.1f", amount/1_000_000) + "M"
	case abs >= 1_000:
		return printer.Sprintf("%.1f", amount/1_000) + "K"
	default:
		return FormatCurrency(amount)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
