// Package money holds the shared money formatting and rounding helpers.
// Every surface that displays an amount goes through this package so the
// preview, the print view and the exported PDF can never disagree.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a value to two decimal places, half away from zero.
func Round2(value float64) float64 {
	if !isFinite(value) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// Sanitize clamps non-finite or negative numeric input to zero. The
// calculation path never raises on malformed input; bad values degrade to 0.
func Sanitize(value float64) float64 {
	if !isFinite(value) || value < 0 {
		return 0
	}
	return value
}

// FormatThousands renders an amount with thousands separators and exactly
// two fraction digits: 1234567.5 -> "1,234,567.50".
func FormatThousands(value float64) string {
	if !isFinite(value) {
		value = 0
	}

	d := decimal.NewFromFloat(value).Round(2)
	raw := d.StringFixed(2)

	negative := strings.HasPrefix(raw, "-")
	if negative {
		raw = raw[1:]
	}

	intPart, fracPart, _ := strings.Cut(raw, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
