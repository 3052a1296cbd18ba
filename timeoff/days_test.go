package timeoff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/timeoff"
)

func date(s string) generic.Date { return generic.MustParseDate(s) }

func assertDays(t *testing.T, want float64, got generic.Amount) {
	t.Helper()
	assert.True(t, got.Equal(generic.Days(want)), "want %v days, got %s", want, got)
}

// =============================================================================
// DAYS USED
// =============================================================================

func TestDaysUsed_FullWeek(t *testing.T) {
	assertDays(t, 5, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-16"), false, false, holiday.HH))
}

func TestDaysUsed_HalfDayEnd(t *testing.T) {
	// GIVEN: Mon..Fri with an afternoon off on Friday
	assertDays(t, 4.5, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-14"), false, true, holiday.HH))
}

func TestDaysUsed_BothHalfDays(t *testing.T) {
	assertDays(t, 4, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-14"), true, true, holiday.HH))
}

func TestDaysUsed_SingleDayBothFlags(t *testing.T) {
	// GIVEN: one day flagged as half at both ends
	// THEN: it costs half a day, not zero
	assertDays(t, 0.5, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-10"), true, true, holiday.HH))
	assertDays(t, 0.5, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-10"), false, true, holiday.HH))
	assertDays(t, 1, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-10"), false, false, holiday.HH))
}

func TestDaysUsed_WeekendEndpointHalfFlagIgnored(t *testing.T) {
	// The half-day flag is tied to the endpoint; a weekend endpoint costs nothing anyway.
	assertDays(t, 5, timeoff.DaysUsed(date("2024-06-10"), date("2024-06-15"), false, true, holiday.HH))
}

func TestDaysUsed_SkipsHolidays(t *testing.T) {
	// Christmas week 2024: Mon 23 .. Fri 27, two holidays
	assertDays(t, 3, timeoff.DaysUsed(date("2024-12-23"), date("2024-12-27"), false, false, holiday.HH))

	// Reformationstag counts in BY but not in HH
	assertDays(t, 1, timeoff.DaysUsed(date("2024-10-31"), date("2024-10-31"), false, false, holiday.BY))
	assertDays(t, 0, timeoff.DaysUsed(date("2024-10-31"), date("2024-10-31"), false, false, holiday.HH))
}

func TestDaysUsed_InvertedRange(t *testing.T) {
	assertDays(t, 0, timeoff.DaysUsed(date("2024-06-14"), date("2024-06-10"), false, false, holiday.HH))
}

func TestDaysUsed_SplitIsAdditive(t *testing.T) {
	// GIVEN: a range split at an arbitrary day
	// THEN: the parts add up to the whole
	whole := timeoff.DaysUsed(date("2024-05-01"), date("2024-06-30"), false, false, holiday.BY)

	for _, split := range []string{"2024-05-09", "2024-05-18", "2024-05-31", "2024-06-15"} {
		mid := date(split)
		left := timeoff.DaysUsed(date("2024-05-01"), mid, false, false, holiday.BY)
		right := timeoff.DaysUsed(mid.AddDays(1), date("2024-06-30"), false, false, holiday.BY)
		assert.True(t, whole.Equal(left.Add(right)), "split at %s", split)
	}
}

func TestDaysUsedWithin_CrossYear(t *testing.T) {
	// GIVEN: Mon 2024-12-30 (half) .. Fri 2025-01-03 (half)
	e := timeoff.Entry{
		StartDate:    date("2024-12-30"),
		EndDate:      date("2025-01-03"),
		HalfDayStart: true,
		HalfDayEnd:   true,
	}

	// THEN: each year gets only its own days; the halves stay on the real endpoints
	in2024 := timeoff.DaysUsedWithin(e, generic.YearPeriod(2024), holiday.HH)
	in2025 := timeoff.DaysUsedWithin(e, generic.YearPeriod(2025), holiday.HH)

	assertDays(t, 1.5, in2024) // Dec 30 half, Dec 31 full
	assertDays(t, 1.5, in2025) // Jan 1 holiday, Jan 2 full, Jan 3 half
	assertDays(t, 3, in2024.Add(in2025))
	assert.True(t, in2024.Add(in2025).Equal(timeoff.DaysUsed(e.StartDate, e.EndDate, true, true, holiday.HH)))
}

func TestUsedInPeriod(t *testing.T) {
	entries := []timeoff.Entry{
		{StartDate: date("2024-03-04"), EndDate: date("2024-03-08")},
		{StartDate: date("2024-08-12"), EndDate: date("2024-08-12"), HalfDayStart: true},
		{StartDate: date("2023-12-27"), EndDate: date("2024-01-02")},
	}

	got := timeoff.UsedInPeriod(entries, generic.YearPeriod(2024), holiday.HH)

	// 5 + 0.5 + Jan 2 (Jan 1 is a holiday)
	assertDays(t, 6.5, got)
}

// =============================================================================
// ENTRY
// =============================================================================

func TestEntry_Validate(t *testing.T) {
	ok := timeoff.Entry{StartDate: date("2024-06-10"), EndDate: date("2024-06-10")}
	require.NoError(t, ok.Validate())

	bad := timeoff.Entry{StartDate: date("2024-06-11"), EndDate: date("2024-06-10")}
	err := bad.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)

	var verr *generic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Field)
}

func TestEntry_Overlaps(t *testing.T) {
	a := timeoff.Entry{StartDate: date("2024-06-10"), EndDate: date("2024-06-14")}

	assert.True(t, a.Overlaps(timeoff.Entry{StartDate: date("2024-06-14"), EndDate: date("2024-06-20")}))
	assert.True(t, a.Overlaps(timeoff.Entry{StartDate: date("2024-06-01"), EndDate: date("2024-06-30")}))
	assert.False(t, a.Overlaps(timeoff.Entry{StartDate: date("2024-06-15"), EndDate: date("2024-06-20")}))
}
