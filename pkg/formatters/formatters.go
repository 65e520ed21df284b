// Package formatters renders numeric values as display strings.
//
// Every formatter is total: NaN and infinities render as Placeholder instead of
// leaking "NaN" or "+Inf" into the UI.
package formatters

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aristath/workbench/internal/domain"
)

// Placeholder is rendered for values that cannot be displayed
const Placeholder = "—"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Currency renders v as US dollars with two decimals, e.g. "$1,234.56" or "-$5.00"
func Currency(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	d := decimal.NewFromFloat(v).Round(2)
	body := "$" + group(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-" + body
	}
	return body
}

// SignedCurrency is Currency with an explicit "+" for positive values
func SignedCurrency(v float64) string {
	s := Currency(v)
	if s != Placeholder && decimal.NewFromFloat(v).Round(2).IsPositive() {
		return "+" + s
	}
	return s
}

var compactUnits = []struct {
	div    float64
	suffix string
}{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// CompactCurrency renders v with a K/M/B suffix and one decimal, e.g. "$1.2M".
// Values below one thousand fall back to Currency.
func CompactCurrency(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}

	for i, u := range compactUnits {
		if abs < u.div {
			continue
		}
		scaled := decimal.NewFromFloat(abs / u.div).Round(1)
		// 999.96K rounds up to 1000.0K; promote to the next unit
		if i > 0 && scaled.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
			bigger := compactUnits[i-1]
			scaled = decimal.NewFromFloat(abs / bigger.div).Round(1)
			return sign + "$" + scaled.StringFixed(1) + bigger.suffix
		}
		return sign + "$" + group(scaled.StringFixed(1)) + u.suffix
	}

	return Currency(v)
}

// Percent renders v (already in percent units) with two decimals.
// With showSign, strictly positive values get a leading "+".
func Percent(v float64, showSign bool) string {
	if !finite(v) {
		return Placeholder
	}
	d := decimal.NewFromFloat(v).Round(2)
	s := d.StringFixed(2) + "%"
	if showSign && d.IsPositive() {
		return "+" + s
	}
	return s
}

// MaxDecimals caps the decimals Number renders
const MaxDecimals = 20

// Number renders v with thousands separators and a fixed number of decimals.
// decimals is clamped to [0, MaxDecimals].
func Number(v float64, decimals int) string {
	if !finite(v) {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	if decimals > MaxDecimals {
		decimals = MaxDecimals
	}
	d := decimal.NewFromFloat(v).Round(int32(decimals))
	body := group(d.Abs().StringFixed(int32(decimals)))
	if d.IsNegative() {
		return "-" + body
	}
	return body
}

// Quantity renders a position size with up to four decimals and no trailing zeros,
// e.g. "1,200", "0.5", "12.3456"
func Quantity(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	d := decimal.NewFromFloat(v).Round(4)
	body := group(d.Abs().String())
	if d.IsNegative() {
		return "-" + body
	}
	return body
}

// Ratio renders v with two decimals and no grouping, e.g. "1.85"
func Ratio(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// MaxDurationMinutes is the largest span Duration renders. Every whole minute up to
// it is exact in a float64.
const MaxDurationMinutes = 1 << 53

// Duration renders a span given in minutes:
//
//	45   -> "45m"
//	125  -> "2h 5m"
//	1500 -> "1d 1h"
//
// Fractional minutes are floored. Spans beyond MaxDurationMinutes in either
// direction render as Placeholder.
func Duration(minutes float64) string {
	if !finite(minutes) || math.Abs(minutes) > MaxDurationMinutes {
		return Placeholder
	}
	if minutes < 0 {
		return "-" + Duration(-minutes)
	}

	total := int64(math.Floor(minutes))
	switch {
	case total < 60:
		return fmt.Sprintf("%dm", total)
	case total < 24*60:
		return fmt.Sprintf("%dh %dm", total/60, total%60)
	default:
		return fmt.Sprintf("%dd %dh", total/(24*60), (total%(24*60))/60)
	}
}

// Metric renders value according to format. Strings pass through unchanged.
func Metric(value interface{}, format domain.MetricFormat) string {
	var v float64
	switch x := value.(type) {
	case nil:
		return Placeholder
	case string:
		return x
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case int32:
		v = float64(x)
	case decimal.Decimal:
		v = x.InexactFloat64()
	default:
		return fmt.Sprint(x)
	}

	switch format {
	case domain.FormatCurrency:
		return Currency(v)
	case domain.FormatPercent:
		return Percent(v, false)
	case domain.FormatRatio:
		return Ratio(v)
	case domain.FormatNumber:
		return Number(v, 0)
	default:
		return Number(v, 2)
	}
}

// group inserts thousands separators into the integer part of an unsigned
// fixed-point string such as "1234567.89"
func group(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
