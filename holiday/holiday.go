/*
Package holiday computes German public holidays per federal state.

PURPOSE:
  Answers "which days of year Y are public holidays in state S?" and
  "is this day a holiday?". Everything is derived from the year: Easter
  Sunday anchors the moveable feasts, a static table adds the regional ones.

RULES:
  Nationwide fixed:    Jan 1, May 1, Oct 3, Dec 25, Dec 26
  Nationwide moveable: Easter -2, +1, +39, +50
  Regional:            per stateHolidays below

  An unknown state code is never an error; it falls back to DefaultState.

DETERMINISM:
  Integer arithmetic on calendar days only. The same (year, state) always
  yields the same, identically ordered slice. Results are fresh slices, so
  callers may keep or modify them.

SEE ALSO:
  - state.go: State codes and the regional table
  - timekeeping: Target hours skip holidays
  - timeoff: Vacation days skip holidays
*/
package holiday

import (
	"sort"
	"time"

	"github.com/lu-ally/AllyTimeTracking/generic"
)

// PublicHoliday is a named day off.
type PublicHoliday struct {
	Date generic.Date `json:"date"`
	Name string       `json:"name"`
}

// =============================================================================
// EASTER - Meeus/Jones/Butcher
// =============================================================================

// Easter returns Easter Sunday of the Gregorian calendar.
func Easter(year int) generic.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return generic.Date{Year: year, Month: time.Month(month), Day: day}
}

// RepentanceDay returns Buss- und Bettag: the Wednesday on or before Nov 23.
func RepentanceDay(year int) generic.Date {
	nov23 := generic.Date{Year: year, Month: time.November, Day: 23}
	wd := int(nov23.Weekday())
	offset := wd + 4
	if wd >= int(time.Wednesday) {
		offset = wd - 3
	}
	return nov23.AddDays(-offset)
}

// =============================================================================
// CALCULATOR
// =============================================================================

// HolidaysForYear returns all public holidays of year in state, ascending by date.
func HolidaysForYear(year int, state State) []PublicHoliday {
	easter := Easter(year)
	fixed := func(month time.Month, day int, name string) PublicHoliday {
		return PublicHoliday{Date: generic.Date{Year: year, Month: month, Day: day}, Name: name}
	}
	moveable := func(offset int, name string) PublicHoliday {
		return PublicHoliday{Date: easter.AddDays(offset), Name: name}
	}

	holidays := []PublicHoliday{
		fixed(time.January, 1, "Neujahr"),
		fixed(time.May, 1, "Tag der Arbeit"),
		fixed(time.October, 3, "Tag der Deutschen Einheit"),
		fixed(time.December, 25, "1. Weihnachtstag"),
		fixed(time.December, 26, "2. Weihnachtstag"),

		moveable(-2, "Karfreitag"),
		moveable(1, "Ostermontag"),
		moveable(39, "Christi Himmelfahrt"),
		moveable(50, "Pfingstmontag"),
	}

	for _, r := range stateHolidays[state.Normalize()] {
		switch r {
		case Epiphany:
			holidays = append(holidays, fixed(time.January, 6, "Heilige Drei Könige"))
		case CorpusChristi:
			holidays = append(holidays, moveable(60, "Fronleichnam"))
		case Assumption:
			holidays = append(holidays, fixed(time.August, 15, "Mariä Himmelfahrt"))
		case ReformationDay:
			holidays = append(holidays, fixed(time.October, 31, "Reformationstag"))
		case AllSaints:
			holidays = append(holidays, fixed(time.November, 1, "Allerheiligen"))
		case RepentanceDayHoliday:
			holidays = append(holidays, PublicHoliday{Date: RepentanceDay(year), Name: "Buß- und Bettag"})
		case WorldChildrensDay:
			holidays = append(holidays, fixed(time.September, 20, "Weltkindertag"))
		case WomensDay:
			holidays = append(holidays, fixed(time.March, 8, "Internationaler Frauentag"))
		}
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// IsHoliday returns the holiday falling on date in state, if any.
func IsHoliday(date generic.Date, state State) (PublicHoliday, bool) {
	for _, h := range HolidaysForYear(date.Year, state) {
		if h.Date == date {
			return h, true
		}
	}
	return PublicHoliday{}, false
}

// InPeriod returns the holidays of state that fall within p, ascending.
func InPeriod(p generic.Period, state State) []PublicHoliday {
	var out []PublicHoliday
	if p.IsEmpty() {
		return out
	}
	for year := p.Start.Year; year <= p.End.Year; year++ {
		for _, h := range HolidaysForYear(year, state) {
			if p.Contains(h.Date) {
				out = append(out, h)
			}
		}
	}
	return out
}
