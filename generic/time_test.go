package generic_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-ally/AllyTimeTracking/generic"
)

func TestDateOf_IgnoresTimeOfDayAndZone(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	morning := generic.DateOf(time.Date(2024, time.March, 10, 0, 30, 0, 0, berlin))
	evening := generic.DateOf(time.Date(2024, time.March, 10, 23, 59, 0, 0, berlin))

	assert.Equal(t, morning, evening)
	assert.Equal(t, "2024-03-10", morning.String())

	// 00:30 CET is still the previous day in UTC; the calendar day of the
	// value's own location wins.
	instant := time.Date(2024, time.March, 10, 0, 30, 0, 0, berlin)
	assert.Equal(t, generic.MustParseDate("2024-03-09"), generic.DateOf(instant.UTC()))
	assert.Equal(t, generic.MustParseDate("2024-03-10"), generic.DateOf(instant))
}

func TestParseDate(t *testing.T) {
	d, err := generic.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, generic.Date{Year: 2024, Month: time.February, Day: 29}, d)

	_, err = generic.ParseDate("2023-02-29")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)

	_, err = generic.ParseDate("10.03.2024")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

func TestDate_Arithmetic(t *testing.T) {
	d := generic.NewDate(2024, time.December, 31)

	assert.Equal(t, generic.NewDate(2025, time.January, 1), d.AddDays(1))
	assert.Equal(t, generic.NewDate(2024, time.February, 29), generic.NewDate(2024, time.March, 1).AddDays(-1))
	assert.Equal(t, generic.NewDate(2024, time.February, 1), generic.NewDate(2024, time.January, 32))
	assert.Equal(t, 366, generic.DaysBetween(generic.StartOfYear(2024), generic.StartOfYear(2025)))
}

func TestDate_Compare(t *testing.T) {
	a := generic.NewDate(2024, time.May, 1)
	b := generic.NewDate(2024, time.May, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, a.AfterOrEqual(a))
	assert.Equal(t, 0, a.Compare(generic.NewDate(2024, time.May, 1)))
	assert.Equal(t, a, generic.MinDate(a, b))
	assert.Equal(t, b, generic.MaxDate(a, b))
}

func TestDate_Weekend(t *testing.T) {
	assert.True(t, generic.MustParseDate("2024-06-08").IsWeekend())  // Saturday
	assert.True(t, generic.MustParseDate("2024-06-09").IsWeekend())  // Sunday
	assert.False(t, generic.MustParseDate("2024-06-10").IsWeekend()) // Monday
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, generic.MustParseDate("2024-02-29"), generic.EndOfMonth(2024, time.February))
	assert.Equal(t, generic.MustParseDate("2023-02-28"), generic.EndOfMonth(2023, time.February))
	assert.Equal(t, generic.MustParseDate("2024-12-31"), generic.EndOfMonth(2024, time.December))
}

func TestStartOfWeek_Monday(t *testing.T) {
	assert.Equal(t, generic.MustParseDate("2024-06-10"), generic.StartOfWeek(generic.MustParseDate("2024-06-16")))
	assert.Equal(t, generic.MustParseDate("2024-06-10"), generic.StartOfWeek(generic.MustParseDate("2024-06-10")))
	assert.Equal(t, generic.MustParseDate("2024-12-30"), generic.StartOfWeek(generic.MustParseDate("2025-01-01")))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Day generic.Date `json:"day"`
	}

	out, err := json.Marshal(payload{Day: generic.MustParseDate("2024-03-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2024-03-01"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2025-04-20"}`), &in))
	assert.Equal(t, generic.MustParseDate("2025-04-20"), in.Day)

	assert.Error(t, json.Unmarshal([]byte(`{"day":"20.04.2025"}`), &in))
}
