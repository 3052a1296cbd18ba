// Package timekeeping computes worked hours, daily target hours and the
// running balance between them. All functions are pure.
package timekeeping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
)

// WorkdaysPerWeek divides the weekly contract into the flat daily target.
const WorkdaysPerWeek = 5

// Entry is one recorded working day. Start and end are "HH:MM" on Date;
// shifts past midnight are not representable.
type Entry struct {
	Date         generic.Date `json:"date"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	BreakMinutes int          `json:"break_minutes"`
	Notes        string       `json:"notes,omitempty"`
}

// Worked returns the hours recorded by the entry.
func (e Entry) Worked() generic.Amount {
	return WorkedHours(e.StartTime, e.EndTime, e.BreakMinutes)
}

// =============================================================================
// WORKED HOURS
// =============================================================================

// WorkedMinutes returns end - start - break in minutes, never below zero.
// End before start is not wrapped to the next day.
func WorkedMinutes(startTime, endTime string, breakMinutes int) int {
	minutes := clockMinutes(endTime) - clockMinutes(startTime) - breakMinutes
	if minutes < 0 {
		return 0
	}
	return minutes
}

// WorkedHours is WorkedMinutes expressed in hours.
func WorkedHours(startTime, endTime string, breakMinutes int) generic.Amount {
	return generic.MinutesToHours(WorkedMinutes(startTime, endTime, breakMinutes))
}

// ParseClock parses a strict 24-hour "HH:MM" into minutes of the day.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", generic.ErrInvalidClock, s)
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", generic.ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// clockMinutes is the lenient parser behind WorkedMinutes: an unreadable
// hour or minute part counts as zero. Validation happens before entries
// are stored.
func clockMinutes(s string) int {
	hour, minute, _ := strings.Cut(s, ":")
	h, _ := strconv.Atoi(strings.TrimSpace(hour))
	m, _ := strconv.Atoi(strings.TrimSpace(minute))
	return h*60 + m
}

// =============================================================================
// TARGET HOURS
// =============================================================================

// DailyTargetHours is weeklyHours/5 on working days and zero on weekends
// and on public holidays of state.
func DailyTargetHours(date generic.Date, weeklyHours decimal.Decimal, state holiday.State) generic.Amount {
	_, isHoliday := holiday.IsHoliday(date, state)
	return targetHours(date, weeklyHours, isHoliday)
}

func targetHours(date generic.Date, weeklyHours decimal.Decimal, isHoliday bool) generic.Amount {
	if isHoliday || date.IsWeekend() {
		return generic.Hours(0)
	}
	return generic.Amount{
		Value: weeklyHours.Div(decimal.NewFromInt(WorkdaysPerWeek)),
		Unit:  generic.UnitHours,
	}
}
