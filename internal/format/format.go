// Package format renders dashboard numbers as display strings.
// Every formatter prints Placeholder for NaN and infinite input.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown wherever a value is absent or not finite
const Placeholder = "—"

var printer = message.NewPrinter(language.English)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// USD renders v as US dollars with two fraction digits and grouping,
// e.g. $1,234.57 or -$1,234.57
func USD(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	s := "$" + printer.Sprintf("%.2f", math.Abs(v))
	if v < 0 {
		return "-" + s
	}
	return s
}

// Fixed renders v with exactly digits fraction digits and no grouping
func Fixed(v float64, digits int) string {
	if !finite(v) {
		return Placeholder
	}
	if digits < 0 {
		digits = 0
	}
	return fmt.Sprintf("%.*f", digits, v)
}

// Percent renders a signed percentage with two fraction digits
func Percent(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	if v >= 0 {
		return "+" + Fixed(v+0, 2) + "%"
	}
	return Fixed(v, 2) + "%"
}

// Share renders an unsigned percentage such as a win rate
func Share(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return Fixed(v, 2) + "%"
}

var compactUnits = []struct {
	scale  float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
}

// Compact renders v in K/M/B notation based on its magnitude, falling
// back to Fixed below one thousand. A value that rounds up to 1000 of one
// unit moves to the next, so 999999 renders as "1.00M".
func Compact(v float64, digits int) string {
	if !finite(v) {
		return Placeholder
	}

	abs := math.Abs(v)
	unit := 0
	for unit < len(compactUnits)-1 && abs >= compactUnits[unit+1].scale {
		unit++
	}
	for unit < len(compactUnits)-1 && roundedAbs(v/compactUnits[unit].scale, digits) >= 1000 {
		unit++
	}

	u := compactUnits[unit]
	return Fixed(v/u.scale, digits) + u.suffix
}

// roundedAbs returns |v| as it prints with digits fraction digits
func roundedAbs(v float64, digits int) float64 {
	if digits < 0 {
		digits = 0
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(math.Abs(v), 'f', digits, 64), 64)
	return r
}

// Amount renders a token quantity with grouping and at most maxDigits
// fraction digits; trailing zeros are trimmed
func Amount(v float64, maxDigits int) string {
	if !finite(v) {
		return Placeholder
	}
	if maxDigits < 0 {
		maxDigits = 0
	}

	s := printer.Sprintf(fmt.Sprintf("%%.%df", maxDigits), v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Count renders an integer count with grouping
func Count(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// Timestamp renders a millisecond epoch as a UTC date. Zero and negative
// values are treated as absent.
func Timestamp(ms float64) string {
	if !finite(ms) || ms <= 0 {
		return Placeholder
	}
	return time.UnixMilli(int64(ms)).UTC().Format("2006-01-02")
}
