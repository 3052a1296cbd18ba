package holiday_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
)

func date(s string) generic.Date { return generic.MustParseDate(s) }

func names(hs []holiday.PublicHoliday) map[generic.Date]string {
	out := make(map[generic.Date]string, len(hs))
	for _, h := range hs {
		out[h.Date] = h.Name
	}
	return out
}

// =============================================================================
// EASTER
// =============================================================================

func TestEaster_KnownYears(t *testing.T) {
	cases := map[int]string{
		2019: "2019-04-21",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2038: "2038-04-25",
		2000: "2000-04-23",
	}
	for year, want := range cases {
		assert.Equal(t, date(want), holiday.Easter(year), "easter %d", year)
	}
}

func TestHolidaysForYear_MoveableFeasts2024(t *testing.T) {
	got := names(holiday.HolidaysForYear(2024, holiday.BY))

	assert.Equal(t, "Karfreitag", got[date("2024-03-29")])
	assert.Equal(t, "Ostermontag", got[date("2024-04-01")])
	assert.Equal(t, "Christi Himmelfahrt", got[date("2024-05-09")])
	assert.Equal(t, "Pfingstmontag", got[date("2024-05-20")])
	assert.Equal(t, "Fronleichnam", got[date("2024-05-30")])
}

// =============================================================================
// CARDINALITY AND ORDER
// =============================================================================

func TestHolidaysForYear_Cardinality(t *testing.T) {
	// GIVEN: 9 nationwide holidays plus the regional table
	// THEN: each state gets exactly its share
	want := map[holiday.State]int{
		holiday.BW: 12, holiday.BY: 13, holiday.BE: 10, holiday.BB: 10,
		holiday.HB: 10, holiday.HH: 10, holiday.HE: 10, holiday.MV: 11,
		holiday.NI: 10, holiday.NW: 11, holiday.RP: 11, holiday.SL: 12,
		holiday.SN: 11, holiday.ST: 11, holiday.SH: 10, holiday.TH: 11,
	}
	for state, n := range want {
		assert.Len(t, holiday.HolidaysForYear(2024, state), n, "state %s", state)
	}
}

func TestHolidaysForYear_SortedAndUnique(t *testing.T) {
	for year := 1990; year <= 2060; year++ {
		// Easter on March 23 puts Ascension on May 1; covered below.
		ascensionOnMayDay := holiday.Easter(year) == generic.Date{Year: year, Month: time.March, Day: 23}

		for _, state := range holiday.States() {
			hs := holiday.HolidaysForYear(year, state)
			seen := make(map[generic.Date]bool, len(hs))
			for i, h := range hs {
				if !ascensionOnMayDay {
					require.False(t, seen[h.Date], "duplicate %s in %d/%s", h.Date, year, state)
				}
				seen[h.Date] = true
				if i > 0 {
					require.False(t, h.Date.Before(hs[i-1].Date), "unsorted at %s in %d/%s", h.Date, year, state)
				}
				require.Equal(t, year, h.Date.Year)
			}
		}
	}
}

func TestHolidaysForYear_AscensionOnMayDay(t *testing.T) {
	// GIVEN: 2008, Easter on March 23
	// THEN: both holidays are listed, May Day first, and the lookup finds May Day
	hs := holiday.HolidaysForYear(2008, holiday.HH)
	require.Len(t, hs, 10)

	var onMayDay []string
	for _, h := range hs {
		if h.Date == date("2008-05-01") {
			onMayDay = append(onMayDay, h.Name)
		}
	}
	assert.Equal(t, []string{"Tag der Arbeit", "Christi Himmelfahrt"}, onMayDay)

	h, ok := holiday.IsHoliday(date("2008-05-01"), holiday.HH)
	require.True(t, ok)
	assert.Equal(t, "Tag der Arbeit", h.Name)
}

func TestHolidaysForYear_Deterministic(t *testing.T) {
	for _, state := range holiday.States() {
		first := holiday.HolidaysForYear(2031, state)
		second := holiday.HolidaysForYear(2031, state)
		assert.Equal(t, first, second, "state %s", state)
	}
}

func TestHolidaysForYear_ReturnsFreshSlice(t *testing.T) {
	first := holiday.HolidaysForYear(2024, holiday.HH)
	first[0].Name = "changed"

	second := holiday.HolidaysForYear(2024, holiday.HH)
	assert.Equal(t, "Neujahr", second[0].Name)
}

// =============================================================================
// REGIONAL HOLIDAYS
// =============================================================================

func TestRepentanceDay(t *testing.T) {
	cases := map[int]string{
		2023: "2023-11-22", // Nov 23 is a Thursday
		2024: "2024-11-20", // Saturday
		2025: "2025-11-19", // Sunday
		2022: "2022-11-23", // Wednesday: the day itself
		2026: "2026-11-18", // Monday wraps to the prior week
	}
	for year, want := range cases {
		got := holiday.RepentanceDay(year)
		assert.Equal(t, date(want), got, "year %d", year)
		assert.Equal(t, time.Wednesday, got.Weekday())
	}
}

func TestHolidaysForYear_RegionalOnlyWhereObserved(t *testing.T) {
	reformation := date("2024-10-31")
	allSaints := date("2024-11-01")

	_, ok := holiday.IsHoliday(reformation, holiday.HH)
	assert.True(t, ok, "HH observes Reformationstag")
	_, ok = holiday.IsHoliday(reformation, holiday.BY)
	assert.False(t, ok, "BY does not observe Reformationstag")

	_, ok = holiday.IsHoliday(allSaints, holiday.NW)
	assert.True(t, ok)
	_, ok = holiday.IsHoliday(allSaints, holiday.HH)
	assert.False(t, ok)

	h, ok := holiday.IsHoliday(date("2024-09-20"), holiday.TH)
	require.True(t, ok)
	assert.Equal(t, "Weltkindertag", h.Name)

	h, ok = holiday.IsHoliday(date("2024-03-08"), holiday.BE)
	require.True(t, ok)
	assert.Equal(t, "Internationaler Frauentag", h.Name)

	h, ok = holiday.IsHoliday(date("2024-11-20"), holiday.SN)
	require.True(t, ok)
	assert.Equal(t, "Buß- und Bettag", h.Name)
}

// =============================================================================
// LOOKUP AND FALLBACK
// =============================================================================

func TestIsHoliday(t *testing.T) {
	h, ok := holiday.IsHoliday(date("2024-12-25"), holiday.HH)
	require.True(t, ok)
	assert.Equal(t, "1. Weihnachtstag", h.Name)

	_, ok = holiday.IsHoliday(date("2024-12-27"), holiday.HH)
	assert.False(t, ok)
}

func TestUnknownState_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, holiday.HH, holiday.ParseState("XX"))
	assert.Equal(t, holiday.HH, holiday.ParseState(""))
	assert.Equal(t, holiday.BY, holiday.ParseState("BY"))
	assert.False(t, holiday.State("by").Valid())

	assert.Equal(t,
		holiday.HolidaysForYear(2024, holiday.HH),
		holiday.HolidaysForYear(2024, holiday.State("XX")),
	)
}

func TestInPeriod_SpansYears(t *testing.T) {
	p := generic.Period{Start: date("2024-12-20"), End: date("2025-01-10")}

	got := holiday.InPeriod(p, holiday.BY)

	require.Len(t, got, 4)
	assert.Equal(t, date("2024-12-25"), got[0].Date)
	assert.Equal(t, date("2024-12-26"), got[1].Date)
	assert.Equal(t, date("2025-01-01"), got[2].Date)
	assert.Equal(t, date("2025-01-06"), got[3].Date)
}

func TestStates_AllValid(t *testing.T) {
	states := holiday.States()
	require.Len(t, states, 16)
	for _, s := range states {
		assert.True(t, s.Valid(), "state %s", s)
	}
}
