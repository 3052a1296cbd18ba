package timekeeping

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
)

// FormatHours renders an hour amount with two decimals, e.g. "7.50".
func FormatHours(a generic.Amount) string {
	return a.Value.StringFixed(2)
}

// FormatBalance renders hours as a signed "+HH:MM" / "-HH:MM". The sign is
// always present and zero is positive.
func FormatBalance(a generic.Amount) string {
	sign, h, m := splitMinutes(a)
	if sign == "" {
		sign = "+"
	}
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// FormatHoursMinutes renders hours as "HH:MM", prefixed with "-" only when
// negative.
func FormatHoursMinutes(a generic.Amount) string {
	sign, h, m := splitMinutes(a)
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// splitMinutes rounds to the nearest whole minute first so a value such as
// 1.9999 hours becomes 02:00 instead of 01:60.
func splitMinutes(a generic.Amount) (sign string, hours, minutes int64) {
	total := a.Value.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	if total < 0 {
		sign = "-"
		total = -total
	}
	return sign, total / 60, total % 60
}
