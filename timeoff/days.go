/*
days.go - Vacation days consumed by a date range

PURPOSE:
  Counts the entitlement days a vacation costs. Weekends and public
  holidays are free; every other day costs one day, or half a day at a
  flagged endpoint.

HALF-DAY RULE:
  For each counted day:
    first day of the range and HalfDayStart -> 0.5
    else last day of the range and HalfDayEnd -> 0.5
    else                                       -> 1

  The first-day check runs before the last-day check, so a single-day
  vacation with both flags set costs 0.5, not 0 or 1.

EXAMPLE:
  Mon 2024-06-10 .. Fri 2024-06-14, HalfDayEnd, HH:
    1 + 1 + 1 + 1 + 0.5 = 4.5 days

SEE ALSO:
  - summary.go: Remaining entitlement
  - holiday: Which days are free
*/
package timeoff

import (
	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
)

var (
	fullDay = generic.Days(1)
	halfDay = generic.Days(0.5)
)

// DaysUsed returns the vacation days consumed by [startDate, endDate].
func DaysUsed(startDate, endDate generic.Date, halfDayStart, halfDayEnd bool, state holiday.State) generic.Amount {
	entry := Entry{StartDate: startDate, EndDate: endDate, HalfDayStart: halfDayStart, HalfDayEnd: halfDayEnd}
	return DaysUsedWithin(entry, entry.Period(), state)
}

// DaysUsedWithin counts only the days of entry that fall inside window.
// Half-day flags stay bound to the entry's own first and last day, so a
// vacation over New Year splits into two years without gaining or losing
// half days.
func DaysUsedWithin(entry Entry, window generic.Period, state holiday.State) generic.Amount {
	used := generic.Days(0)
	for _, day := range entry.Period().Intersect(window).Days() {
		if day.IsWeekend() {
			continue
		}
		if _, ok := holiday.IsHoliday(day, state); ok {
			continue
		}

		isFirst := day == entry.StartDate
		isLast := day == entry.EndDate
		switch {
		case isFirst && entry.HalfDayStart:
			used = used.Add(halfDay)
		case isLast && entry.HalfDayEnd:
			used = used.Add(halfDay)
		default:
			used = used.Add(fullDay)
		}
	}
	return used
}

// UsedInPeriod sums DaysUsedWithin over entries. Overlapping entries are
// counted once each.
func UsedInPeriod(entries []Entry, window generic.Period, state holiday.State) generic.Amount {
	total := generic.Days(0)
	for _, e := range entries {
		total = total.Add(DaysUsedWithin(e, window, state))
	}
	return total
}
