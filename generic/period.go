package generic

import "time"

// =============================================================================
// PERIOD - The range every aggregation runs over
// =============================================================================

// Period is an inclusive calendar-day range [Start, End].
//
// Examples:
//   - March 2024:       MonthPeriod(2024, time.March)
//   - Week of a date:   WeekPeriod(d), Monday through Sunday
//   - Year to date:     Period{Start: StartOfYear(y), End: today}
//
// A period whose End lies before its Start is empty: it has no days and
// every aggregation over it is zero.
type Period struct {
	Start Date
	End   Date
}

// NewPeriod validates that end is not before start.
func NewPeriod(start, end Date) (Period, error) {
	if end.Before(start) {
		return Period{}, &ValidationError{Field: "end", Message: "must not be before start", Err: ErrInvalidPeriod}
	}
	return Period{Start: start, End: end}, nil
}

func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

func YearPeriod(year int) Period {
	return Period{Start: StartOfYear(year), End: EndOfYear(year)}
}

// WeekPeriod returns the Monday-to-Sunday week containing d.
func WeekPeriod(d Date) Period {
	start := StartOfWeek(d)
	return Period{Start: start, End: start.AddDays(6)}
}

// IsEmpty reports whether the period contains no days.
func (p Period) IsEmpty() bool { return p.End.Before(p.Start) }

// Contains returns true if d is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Len returns the number of days in the period.
func (p Period) Len() int {
	if p.IsEmpty() {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days returns every day of the period, both endpoints included.
func (p Period) Days() []Date {
	if p.IsEmpty() {
		return nil
	}
	days := make([]Date, 0, p.Len())
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Intersect returns the overlap of two periods; the result may be empty.
func (p Period) Intersect(other Period) Period {
	return Period{Start: MaxDate(p.Start, other.Start), End: MinDate(p.End, other.End)}
}

// Overlaps reports whether the two periods share at least one day.
func (p Period) Overlaps(other Period) bool {
	return !p.Intersect(other).IsEmpty()
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
