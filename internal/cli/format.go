// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a whole-unit amount with the configured currency
// symbol. e.g., 1234567 -> "$1,234,567"
func FormatMoney(currency string, amount int64) string {
	if amount < 0 {
		return "-" + FormatMoney(currency, -amount)
	}
	return currency + FormatNumber(amount)
}

// FormatDecimal formats a decimal money value with the currency symbol.
// Fractional values keep two decimal places; whole values drop them.
func FormatDecimal(currency string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatDecimal(currency, d.Neg())
	}
	if d.Equal(d.Truncate(0)) {
		return currency + FormatNumber(d.IntPart())
	}
	return currency + d.StringFixed(2)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPercent formats a percentage delta with an explicit sign.
// e.g., 33.4 -> "+33.4%", -12 -> "-12.0%"
func FormatSignedPercent(pct float64) string {
	if pct >= 0 {
		return "+" + FormatPercent(pct)
	}
	return FormatPercent(pct)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatHour formats an hour of day as a 12-hour clock label.
// e.g., 0 -> "12am", 13 -> "1pm"
func FormatHour(hour int) string {
	switch {
	case hour < 0 || hour > 23:
		return "???"
	case hour == 0:
		return "12am"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	case hour == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}
