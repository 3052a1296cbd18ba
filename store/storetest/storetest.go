// Package storetest runs the same behavioural checks against every
// store.Store implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
	"github.com/lu-ally/AllyTimeTracking/timeoff"
)

// Run executes the suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, store.Store)
	}{
		{"UserRoundTrip", testUserRoundTrip},
		{"DuplicateEmail", testDuplicateEmail},
		{"MissingUser", testMissingUser},
		{"CountActiveAdmins", testCountActiveAdmins},
		{"TimeEntryUpsert", testTimeEntryUpsert},
		{"TimeEntryRange", testTimeEntryRange},
		{"TimeEntryDelete", testTimeEntryDelete},
		{"VacationOverlap", testVacationOverlap},
		{"VacationListing", testVacationListing},
		{"VacationBalance", testVacationBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func date(s string) generic.Date { return generic.MustParseDate(s) }

func createUser(t *testing.T, s store.Store, email, name string, role store.Role) store.User {
	t.Helper()
	u := store.User{
		Email:               email,
		Name:                name,
		Role:                role,
		PasswordHash:        "hash",
		WeeklyHours:         decimal.NewFromInt(40),
		VacationDaysPerYear: decimal.NewFromInt(30),
		State:               holiday.HH,
		IsActive:            true,
		CreatedAt:           time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateUser(context.Background(), u))

	got, err := s.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return got
}

func testUserRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleAdmin)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, store.RoleAdmin, got.Role)
	assert.True(t, got.WeeklyHours.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, holiday.HH, got.State)
	assert.True(t, got.IsActive)
	assert.Equal(t, date("2024-01-15"), got.CreatedOn(time.UTC))

	got.Name = "Anna B."
	got.WeeklyHours = decimal.RequireFromString("38.5")
	got.State = holiday.BY
	require.NoError(t, s.UpdateUser(ctx, got))

	again, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna B.", again.Name)
	assert.True(t, again.WeeklyHours.Equal(decimal.RequireFromString("38.5")))
	assert.Equal(t, holiday.BY, again.State)

	createUser(t, s, "bernd@example.com", "Bernd", store.RoleUser)
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Anna B.", users[0].Name)
	assert.Equal(t, "Bernd", users[1].Name)
}

func testDuplicateEmail(t *testing.T, s store.Store) {
	createUser(t, s, "anna@example.com", "Anna", store.RoleUser)

	err := s.CreateUser(context.Background(), store.User{
		Email: "ANNA@example.com", Name: "Other", Role: store.RoleUser, PasswordHash: "x",
	})
	assert.ErrorIs(t, err, generic.ErrDuplicate)
}

func testMissingUser(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetUser(ctx, "nope")
	assert.ErrorIs(t, err, generic.ErrNotFound)

	err = s.UpdateUser(ctx, store.User{ID: "nope", Email: "x@example.com"})
	assert.ErrorIs(t, err, generic.ErrNotFound)

	_, err = s.SaveTimeEntry(ctx, store.TimeEntry{UserID: "nope", Entry: timekeeping.Entry{
		Date: date("2024-06-10"), StartTime: "09:00", EndTime: "17:00",
	}})
	assert.ErrorIs(t, err, generic.ErrNotFound)
}

func testCountActiveAdmins(t *testing.T, s store.Store) {
	ctx := context.Background()
	admin := createUser(t, s, "admin@example.com", "Admin", store.RoleAdmin)
	createUser(t, s, "user@example.com", "User", store.RoleUser)

	n, err := s.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	admin.IsActive = false
	require.NoError(t, s.UpdateUser(ctx, admin))

	n, err = s.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func testTimeEntryUpsert(t *testing.T, s store.Store) {
	// GIVEN: an entry for a day
	// WHEN: the same day is saved again
	// THEN: it is replaced, keeping its ID
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleUser)

	first, err := s.SaveTimeEntry(ctx, store.TimeEntry{UserID: u.ID, Entry: timekeeping.Entry{
		Date: date("2024-06-10"), StartTime: "09:00", EndTime: "17:00", BreakMinutes: 30,
	}})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := s.SaveTimeEntry(ctx, store.TimeEntry{UserID: u.ID, Entry: timekeeping.Entry{
		Date: date("2024-06-10"), StartTime: "08:00", EndTime: "16:00", Notes: "early",
	}})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := s.ListTimeEntries(ctx, u.ID, generic.YearPeriod(2024))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "08:00", entries[0].StartTime)
	assert.Equal(t, 0, entries[0].BreakMinutes)
	assert.Equal(t, "early", entries[0].Notes)
}

func testTimeEntryRange(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleUser)
	other := createUser(t, s, "bernd@example.com", "Bernd", store.RoleUser)

	for _, d := range []string{"2024-06-12", "2024-05-31", "2024-06-01", "2024-06-30", "2024-07-01"} {
		_, err := s.SaveTimeEntry(ctx, store.TimeEntry{UserID: u.ID, Entry: timekeeping.Entry{
			Date: date(d), StartTime: "09:00", EndTime: "17:00",
		}})
		require.NoError(t, err)
	}
	_, err := s.SaveTimeEntry(ctx, store.TimeEntry{UserID: other.ID, Entry: timekeeping.Entry{
		Date: date("2024-06-12"), StartTime: "09:00", EndTime: "17:00",
	}})
	require.NoError(t, err)

	entries, err := s.ListTimeEntries(ctx, u.ID, generic.MonthPeriod(2024, time.June))
	require.NoError(t, err)

	var days []string
	for _, e := range entries {
		days = append(days, e.Date.String())
	}
	assert.Equal(t, []string{"2024-06-01", "2024-06-12", "2024-06-30"}, days)
}

func testTimeEntryDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleUser)

	_, err := s.SaveTimeEntry(ctx, store.TimeEntry{UserID: u.ID, Entry: timekeeping.Entry{
		Date: date("2024-06-10"), StartTime: "09:00", EndTime: "17:00",
	}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTimeEntry(ctx, u.ID, date("2024-06-10")))
	assert.ErrorIs(t, s.DeleteTimeEntry(ctx, u.ID, date("2024-06-10")), generic.ErrNotFound)
}

func testVacationOverlap(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleUser)
	other := createUser(t, s, "bernd@example.com", "Bernd", store.RoleUser)

	first := store.VacationEntry{UserID: u.ID, Entry: timeoff.Entry{
		StartDate: date("2024-06-10"), EndDate: date("2024-06-14"),
	}}
	require.NoError(t, s.CreateVacation(ctx, first))

	// GIVEN: a vacation sharing only its first day with the existing one
	err := s.CreateVacation(ctx, store.VacationEntry{UserID: u.ID, Entry: timeoff.Entry{
		StartDate: date("2024-06-14"), EndDate: date("2024-06-18"),
	}})

	// THEN: rejected with a pointer to the existing vacation
	require.ErrorIs(t, err, generic.ErrOverlap)
	var overlap *generic.OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, date("2024-06-10"), overlap.Existing.Start)
	assert.True(t, generic.IsConflict(err))

	// Adjacent ranges and other users are fine
	require.NoError(t, s.CreateVacation(ctx, store.VacationEntry{UserID: u.ID, Entry: timeoff.Entry{
		StartDate: date("2024-06-15"), EndDate: date("2024-06-18"),
	}}))
	require.NoError(t, s.CreateVacation(ctx, store.VacationEntry{UserID: other.ID, Entry: timeoff.Entry{
		StartDate: date("2024-06-10"), EndDate: date("2024-06-14"),
	}}))

	// Inverted ranges never reach the table
	err = s.CreateVacation(ctx, store.VacationEntry{UserID: u.ID, Entry: timeoff.Entry{
		StartDate: date("2024-08-10"), EndDate: date("2024-08-01"),
	}})
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

func testVacationListing(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleUser)
	other := createUser(t, s, "bernd@example.com", "Bernd", store.RoleUser)

	for _, v := range []store.VacationEntry{
		{UserID: u.ID, Entry: timeoff.Entry{StartDate: date("2024-12-27"), EndDate: date("2025-01-03"), HalfDayEnd: true, Notes: "Jahreswechsel"}},
		{UserID: u.ID, Entry: timeoff.Entry{StartDate: date("2024-03-04"), EndDate: date("2024-03-08")}},
		{UserID: u.ID, Entry: timeoff.Entry{StartDate: date("2023-07-01"), EndDate: date("2023-07-10")}},
		{UserID: other.ID, Entry: timeoff.Entry{StartDate: date("2024-03-01"), EndDate: date("2024-03-01")}},
	} {
		require.NoError(t, s.CreateVacation(ctx, v))
	}

	mine, err := s.ListVacations(ctx, u.ID, generic.YearPeriod(2024))
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, date("2024-03-04"), mine[0].StartDate)
	assert.Equal(t, date("2025-01-03"), mine[1].EndDate)
	assert.True(t, mine[1].HalfDayEnd)
	assert.Equal(t, "Jahreswechsel", mine[1].Notes)

	march, err := s.ListAllVacations(ctx, generic.MonthPeriod(2024, time.March))
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.Equal(t, other.ID, march[0].UserID)
	assert.Equal(t, u.ID, march[1].UserID)

	require.NoError(t, s.DeleteVacation(ctx, u.ID, mine[0].ID))
	assert.ErrorIs(t, s.DeleteVacation(ctx, other.ID, mine[1].ID), generic.ErrNotFound)
}

func testVacationBalance(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "anna@example.com", "Anna", store.RoleUser)

	_, err := s.GetVacationBalance(ctx, u.ID, 2024)
	assert.ErrorIs(t, err, generic.ErrNotFound)

	b := store.VacationBalance{UserID: u.ID, Year: 2024, Balance: timeoff.Balance{
		AnnualEntitlement: decimal.NewFromInt(28),
		CarryOver:         decimal.RequireFromString("2.5"),
		Correction:        decimal.NewFromInt(-1),
	}}
	require.NoError(t, s.SaveVacationBalance(ctx, b))

	b.Correction = decimal.Zero
	require.NoError(t, s.SaveVacationBalance(ctx, b))

	got, err := s.GetVacationBalance(ctx, u.ID, 2024)
	require.NoError(t, err)
	assert.True(t, got.AnnualEntitlement.Equal(decimal.NewFromInt(28)))
	assert.True(t, got.CarryOver.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, got.Correction.IsZero())
}
