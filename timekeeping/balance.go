/*
balance.go - Target vs. actual hours over a range of days

PURPOSE:
  Answers "how far ahead or behind is this person?" for any caller-chosen
  range: a month, the current week, or the running total since the start
  of the year.

ALGORITHM:
  Holidays of the period are looked up once, then for every day in the
  period (both endpoints included):
    target += weeklyHours/5, unless the day is a weekend or a holiday
    actual += WorkedHours(entry for that day), if there is one

  Balance = actual - target. A day without an entry simply adds nothing
  to actual; the gap only shows up as a negative balance.

RANGES:
  The accountant does not care about granularity. Callers pick the
  period with generic.MonthPeriod, generic.WeekPeriod, RunningPeriod or
  ClosedMonthRunningPeriod.

SEE ALSO:
  - worktime.go: The per-day building blocks
  - report: Runs this per user against stored entries
*/
package timekeeping

import (
	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
)

// Summary is the outcome of an aggregation.
type Summary struct {
	Target  generic.Amount `json:"target_hours"`
	Actual  generic.Amount `json:"actual_hours"`
	Balance generic.Amount `json:"balance_hours"`
}

// Day is one row of a per-day breakdown.
type Day struct {
	Date    generic.Date
	Weekend bool
	Holiday *holiday.PublicHoliday
	Target  generic.Amount
	Worked  generic.Amount
	Entry   *Entry

	workedMinutes int
}

// Balance returns worked minus target for the day.
func (d Day) Balance() generic.Amount { return d.Worked.Sub(d.Target) }

// AggregateBalance sums target and worked hours over every day of period.
// When entries hold more than one record for a day, the first one counts.
func AggregateBalance(period generic.Period, weeklyHours decimal.Decimal, entries []Entry, state holiday.State) Summary {
	byDay := indexEntries(entries)
	holidays := indexHolidays(period, state)

	target := generic.Hours(0)
	workedMinutes := 0
	for _, day := range period.Days() {
		_, isHoliday := holidays[day]
		target = target.Add(targetHours(day, weeklyHours, isHoliday))
		if e, ok := byDay[day]; ok {
			workedMinutes += WorkedMinutes(e.StartTime, e.EndTime, e.BreakMinutes)
		}
	}

	actual := generic.MinutesToHours(workedMinutes)
	return Summary{
		Target:  target,
		Actual:  actual,
		Balance: actual.Sub(target),
	}
}

// DailyBreakdown returns one row per day of period. Summing the rows gives
// the same totals as AggregateBalance.
func DailyBreakdown(period generic.Period, weeklyHours decimal.Decimal, entries []Entry, state holiday.State) []Day {
	byDay := indexEntries(entries)
	holidays := indexHolidays(period, state)
	days := period.Days()
	rows := make([]Day, 0, len(days))

	for _, date := range days {
		h, isHoliday := holidays[date]
		row := Day{
			Date:    date,
			Weekend: date.IsWeekend(),
			Target:  targetHours(date, weeklyHours, isHoliday),
			Worked:  generic.Hours(0),
		}
		if isHoliday {
			row.Holiday = &h
		}
		if e, ok := byDay[date]; ok {
			entry := e
			row.Entry = &entry
			row.workedMinutes = WorkedMinutes(e.StartTime, e.EndTime, e.BreakMinutes)
			row.Worked = generic.MinutesToHours(row.workedMinutes)
		}
		rows = append(rows, row)
	}
	return rows
}

// Totals sums a breakdown back into a Summary.
func Totals(rows []Day) Summary {
	target := generic.Hours(0)
	minutes := 0
	for _, r := range rows {
		target = target.Add(r.Target)
		minutes += r.workedMinutes
	}
	actual := generic.MinutesToHours(minutes)
	return Summary{Target: target, Actual: actual, Balance: actual.Sub(target)}
}

func indexEntries(entries []Entry) map[generic.Date]Entry {
	byDay := make(map[generic.Date]Entry, len(entries))
	for _, e := range entries {
		if _, seen := byDay[e.Date]; !seen {
			byDay[e.Date] = e
		}
	}
	return byDay
}

func indexHolidays(period generic.Period, state holiday.State) map[generic.Date]holiday.PublicHoliday {
	out := make(map[generic.Date]holiday.PublicHoliday)
	for _, h := range holiday.InPeriod(period, state) {
		out[h.Date] = h
	}
	return out
}

// =============================================================================
// CALLER RANGES
// =============================================================================

// RunningPeriod is the year-to-date range for a user: from January 1st of
// asOf's year, or the user's creation day if later, through asOf.
func RunningPeriod(createdAt, asOf generic.Date) generic.Period {
	return generic.Period{
		Start: generic.MaxDate(generic.StartOfYear(asOf.Year), createdAt),
		End:   asOf,
	}
}

// ClosedMonthRunningPeriod is the running range used by a report for a past
// or current month: it ends at the month's last day, or today if earlier.
func ClosedMonthRunningPeriod(createdAt generic.Date, month generic.Period, today generic.Date) generic.Period {
	return generic.Period{
		Start: generic.MaxDate(generic.StartOfYear(month.Start.Year), createdAt),
		End:   generic.MinDate(month.End, today),
	}
}
