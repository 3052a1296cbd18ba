package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/report"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/store/memory"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
	"github.com/lu-ally/AllyTimeTracking/timeoff"
)

// today is a Friday.
var today = generic.MustParseDate("2024-06-14")

func date(s string) generic.Date { return generic.MustParseDate(s) }

func assertHours(t *testing.T, want float64, got generic.Amount, msg string) {
	t.Helper()
	assert.True(t, got.Equal(generic.Hours(want)), "%s: want %v, got %s", msg, want, got)
}

func assertDays(t *testing.T, want float64, got generic.Amount, msg string) {
	t.Helper()
	assert.True(t, got.Equal(generic.Days(want)), "%s: want %v, got %s", msg, want, got)
}

type fixture struct {
	store *memory.Memory
	svc   *report.Service
	anna  store.User // admin, HH, 40h, created 2024-05-01
	bernd store.User // BY, 20h, created 2023
	carla store.User // inactive
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()

	add := func(id, name string, role store.Role, weekly int64, state holiday.State, active bool, created time.Time) store.User {
		u := store.User{
			ID:                  id,
			Email:               strings.ToLower(strings.Fields(name)[0]) + "@example.com",
			Name:                name,
			Role:                role,
			PasswordHash:        "hash",
			WeeklyHours:         decimal.NewFromInt(weekly),
			VacationDaysPerYear: decimal.NewFromInt(30),
			State:               state,
			IsActive:            active,
			CreatedAt:           created,
		}
		require.NoError(t, st.CreateUser(ctx, u))
		got, err := st.GetUser(ctx, id)
		require.NoError(t, err)
		return got
	}

	f := &fixture{store: st}
	// Inserted out of name order on purpose.
	f.carla = add("c", "Carla Inaktiv", store.RoleUser, 40, holiday.HH, false, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	f.bernd = add("b", "Bernd Beispiel", store.RoleUser, 20, holiday.BY, true, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	f.anna = add("a", "Anna Admin", store.RoleAdmin, 40, holiday.HH, true, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))

	f.svc = report.New(st, report.WithWorkers(2), report.WithClock(func() generic.Date { return today }))
	return f
}

func (f *fixture) work(t *testing.T, u store.User, day, start, end string, breakMinutes int, notes string) {
	t.Helper()
	_, err := f.store.SaveTimeEntry(context.Background(), store.TimeEntry{UserID: u.ID, Entry: timekeeping.Entry{
		Date: date(day), StartTime: start, EndTime: end, BreakMinutes: breakMinutes, Notes: notes,
	}})
	require.NoError(t, err)
}

func (f *fixture) vacation(t *testing.T, u store.User, start, end string, halfStart, halfEnd bool) {
	t.Helper()
	require.NoError(t, f.store.CreateVacation(context.Background(), store.VacationEntry{UserID: u.ID, Entry: timeoff.Entry{
		StartDate: date(start), EndDate: date(end), HalfDayStart: halfStart, HalfDayEnd: halfEnd,
	}}))
}

// =============================================================================
// BALANCE
// =============================================================================

func TestBalance_RunningWeekAndMonth(t *testing.T) {
	f := newFixture(t)
	f.work(t, f.anna, "2024-05-02", "09:00", "17:30", 30, "")
	f.work(t, f.anna, "2024-06-10", "08:00", "17:00", 30, "") // 8.5
	f.work(t, f.anna, "2024-06-11", "09:00", "17:00", 0, "")  // 8
	f.work(t, f.anna, "2024-06-17", "09:00", "17:00", 0, "")  // after asOf, next week

	got, err := f.svc.Balance(context.Background(), f.anna.ID, today)
	require.NoError(t, err)

	// Running: created May 1st. May has 20 target days in HH, June 1..14 has 10.
	assert.Equal(t, date("2024-05-01"), got.Running.Period.Start)
	assert.Equal(t, today, got.Running.Period.End)
	assertHours(t, 240, got.Running.Target, "running target")
	assertHours(t, 24.5, got.Running.Actual, "running actual")
	assertHours(t, -215.5, got.Running.Balance, "running balance")

	// Week: Mon 10 .. Sun 16
	assert.Equal(t, date("2024-06-10"), got.Week.Period.Start)
	assertHours(t, 40, got.Week.Target, "week target")
	assertHours(t, 16.5, got.Week.Actual, "week actual")

	// Month: all of June, future days included
	assertHours(t, 160, got.Month.Target, "month target")
	assertHours(t, 24.5, got.Month.Actual, "month actual")
}

func TestBalance_UnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Balance(context.Background(), "nobody", today)
	assert.True(t, generic.IsNotFound(err))
}

func TestBalance_CreationDayInConfiguredLocation(t *testing.T) {
	// GIVEN: an account created at 00:30 Berlin time on Tuesday March 5th,
	// which is still March 4th in UTC
	ctx := context.Background()
	st := memory.New()
	berlin := time.FixedZone("CET", 60*60)
	require.NoError(t, st.CreateUser(ctx, store.User{
		ID:                  "night",
		Email:               "night@example.com",
		Name:                "Nachteule",
		Role:                store.RoleUser,
		PasswordHash:        "hash",
		WeeklyHours:         decimal.NewFromInt(40),
		VacationDaysPerYear: decimal.NewFromInt(30),
		State:               holiday.HH,
		IsActive:            true,
		CreatedAt:           time.Date(2024, 3, 5, 0, 30, 0, 0, berlin).UTC(),
	}))
	svc := report.New(st,
		report.WithLocation(berlin),
		report.WithClock(func() generic.Date { return date("2024-03-05") }),
	)

	// WHEN
	got, err := svc.Balance(ctx, "night", svc.Today())
	require.NoError(t, err)

	// THEN: the running balance starts on the local creation day
	assert.Equal(t, date("2024-03-05"), got.Running.Period.Start)
	assertHours(t, 8, got.Running.Target, "running target")

	// AND: the monthly report agrees
	rows, err := svc.MonthlyReport(ctx, 2024, time.March)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assertHours(t, -8, rows[0].RunningBalance, "monthly running balance")
}

func TestNew_DefaultClockUsesLocation(t *testing.T) {
	east := report.New(memory.New(), report.WithLocation(time.FixedZone("UTC+14", 14*60*60)))
	west := report.New(memory.New(), report.WithLocation(time.FixedZone("UTC-12", -12*60*60)))

	assert.Equal(t, "UTC+14", east.Location().String())
	assert.True(t, east.Today().After(west.Today()))
}

func TestDailyBreakdown(t *testing.T) {
	f := newFixture(t)
	f.work(t, f.bernd, "2024-05-30", "08:00", "12:00", 0, "Fronleichnam")

	got, err := f.svc.DailyBreakdown(context.Background(), f.bernd.ID, generic.WeekPeriod(date("2024-05-30")))
	require.NoError(t, err)
	require.Len(t, got.Days, 7)

	corpusChristi := got.Days[3]
	require.NotNil(t, corpusChristi.Holiday)
	assert.Equal(t, "Fronleichnam", corpusChristi.Holiday.Name)
	assertHours(t, 4, corpusChristi.Worked, "holiday worked")

	// 4 workdays at 4h, one holiday
	assertHours(t, 16, got.Totals.Target, "target")
	assertHours(t, 4, got.Totals.Actual, "actual")

	_, err = f.svc.DailyBreakdown(context.Background(), f.bernd.ID,
		generic.Period{Start: date("2024-06-02"), End: date("2024-06-01")})
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

// =============================================================================
// VACATION SUMMARY
// =============================================================================

func TestVacationSummary_DefaultBalance(t *testing.T) {
	// GIVEN: no balance row and two vacations, one crossing New Year
	f := newFixture(t)
	f.vacation(t, f.anna, "2024-06-10", "2024-06-14", false, true) // 4.5
	f.vacation(t, f.anna, "2024-12-30", "2025-01-03", false, false)

	got, err := f.svc.VacationSummary(context.Background(), f.anna.ID, 2024)
	require.NoError(t, err)

	// THEN: 30 days assumed, only Dec 30 and 31 count for 2024
	assert.False(t, got.Stored)
	assertDays(t, 30, got.TotalEntitlement, "total")
	assertDays(t, 6.5, got.Used, "used")
	assertDays(t, 23.5, got.Remaining, "remaining")
	assert.Len(t, got.Entries, 2)

	next, err := f.svc.VacationSummary(context.Background(), f.anna.ID, 2025)
	require.NoError(t, err)
	// Jan 1 is a holiday
	assertDays(t, 2, next.Used, "used 2025")
}

func TestVacationSummary_StoredBalanceAndOverdraft(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SaveVacationBalance(context.Background(), store.VacationBalance{
		UserID: f.bernd.ID, Year: 2024, Balance: timeoff.Balance{
			AnnualEntitlement: decimal.NewFromInt(5),
			CarryOver:         decimal.NewFromInt(1),
			Correction:        decimal.Zero,
		},
	}))
	// Mon 2024-07-01 .. Fri 2024-07-12: 10 working days in BY
	f.vacation(t, f.bernd, "2024-07-01", "2024-07-12", false, false)

	got, err := f.svc.VacationSummary(context.Background(), f.bernd.ID, 2024)
	require.NoError(t, err)

	assert.True(t, got.Stored)
	assertDays(t, 6, got.TotalEntitlement, "total")
	assertDays(t, 10, got.Used, "used")
	assertDays(t, -4, got.Remaining, "remaining")
	assert.True(t, got.Overdrawn())
}

// =============================================================================
// MONTHLY REPORT
// =============================================================================

func TestMonthlyReport_PastMonth(t *testing.T) {
	f := newFixture(t)
	f.work(t, f.anna, "2024-05-02", "09:00", "17:30", 30, "")

	rows, err := f.svc.MonthlyReport(context.Background(), 2024, time.May)
	require.NoError(t, err)

	// Inactive users are left out; name order
	require.Len(t, rows, 2)
	assert.Equal(t, "Anna Admin", rows[0].Name)
	assert.Equal(t, "Bernd Beispiel", rows[1].Name)

	// Anna, HH: 23 weekdays minus May 1, Ascension, Whit Monday
	anna := rows[0]
	assertHours(t, 160, anna.Month.Target, "anna target")
	assertHours(t, 8, anna.Month.Actual, "anna actual")
	assertHours(t, -152, anna.Month.Balance, "anna month")
	// Created May 1st, month closed: running equals the month
	assertHours(t, -152, anna.RunningBalance, "anna running")

	// Bernd, BY at 4h/day: Corpus Christi is off too
	assertHours(t, 76, rows[1].Month.Target, "bernd target")
	assert.True(t, rows[1].RunningBalance.Value.LessThan(rows[1].Month.Balance.Value))
}

func TestMonthlyReport_CurrentAndFutureMonth(t *testing.T) {
	f := newFixture(t)
	f.work(t, f.anna, "2024-05-02", "09:00", "17:30", 30, "")
	f.work(t, f.anna, "2024-06-03", "09:00", "17:30", 30, "")

	june, err := f.svc.MonthlyReport(context.Background(), 2024, time.June)
	require.NoError(t, err)
	anna := june[0]

	// Month target counts all of June, the running total stops today
	assertHours(t, 160, anna.Month.Target, "month target")
	assertHours(t, -152, anna.Month.Balance, "month balance")
	assertHours(t, -224, anna.RunningBalance, "running")

	september, err := f.svc.MonthlyReport(context.Background(), 2024, time.September)
	require.NoError(t, err)
	assert.True(t, september[0].RunningBalance.Equal(anna.RunningBalance))
	assertHours(t, 0, september[0].Month.Actual, "september actual")
}

func TestMonthlyReport_InvalidMonth(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.MonthlyReport(context.Background(), 2024, time.Month(13))
	assert.True(t, generic.IsClientError(err))
}

// =============================================================================
// TEAM CALENDAR
// =============================================================================

func TestTeamCalendar(t *testing.T) {
	f := newFixture(t)
	f.vacation(t, f.anna, "2024-05-27", "2024-06-04", false, false)
	f.vacation(t, f.anna, "2024-07-01", "2024-07-05", false, false)
	f.vacation(t, f.carla, "2024-06-10", "2024-06-14", false, false)

	got, err := f.svc.TeamCalendar(context.Background(), 2024, time.June)
	require.NoError(t, err)

	assert.Equal(t, generic.MonthPeriod(2024, time.June), got.Month)
	require.Len(t, got.Members, 2)
	assert.Equal(t, "Anna Admin", got.Members[0].Name)
	assert.Equal(t, holiday.HH, got.Members[0].State)
	assert.Equal(t, holiday.BY, got.Members[1].State)
	require.Len(t, got.Members[0].Vacations, 1)
	assert.Equal(t, date("2024-05-27"), got.Members[0].Vacations[0].StartDate)
	assert.Equal(t, "Bernd Beispiel", got.Members[1].Name)
	assert.Empty(t, got.Members[1].Vacations)
}

// =============================================================================
// CSV EXPORT
// =============================================================================

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	f.work(t, f.bernd, "2024-06-03", "08:00", "12:00", 0, "Kunde; vor Ort")
	f.work(t, f.anna, "2024-06-04", "09:00", "17:30", 30, "")
	f.work(t, f.anna, "2024-05-02", "08:00", "17:00", 30, "")
	f.work(t, f.carla, "2024-06-04", "09:00", "17:00", 0, "")
	f.work(t, f.anna, "2024-07-01", "09:00", "17:00", 0, "")

	var buf bytes.Buffer
	err := f.svc.ExportCSV(context.Background(), &buf, generic.Period{Start: date("2024-05-01"), End: date("2024-06-30")})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\uFEFF"))

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\uFEFF"), "\n"), "\n")
	assert.Equal(t, []string{
		"Mitarbeiter;E-Mail;Datum;Start;Ende;Pause (min);Gearbeitet (Std);Soll (Std);Saldo (Std);Notizen",
		"Anna Admin;anna@example.com;02.05.2024;08:00;17:00;30;8.50;8.00;0.50;",
		"Anna Admin;anna@example.com;04.06.2024;09:00;17:30;30;8.00;8.00;0.00;",
		`Bernd Beispiel;bernd@example.com;03.06.2024;08:00;12:00;0;4.00;4.00;0.00;"Kunde; vor Ort"`,
	}, lines)
}

func TestExportCSV_InvertedRange(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	err := f.svc.ExportCSV(context.Background(), &buf, generic.Period{Start: date("2024-06-30"), End: date("2024-05-01")})
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
	assert.Zero(t, buf.Len())
}

func TestExportFilename(t *testing.T) {
	p := generic.Period{Start: date("2024-05-01"), End: date("2024-05-31")}
	assert.Equal(t, "zeiterfassung-2024-05-01-2024-05-31.csv", report.ExportFilename(p))
}
