package report

import (
	"context"
	"time"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timeoff"
)

// VacationSummary is the yearly vacation account of a user.
type VacationSummary struct {
	UserID string
	Year   int
	timeoff.Summary
	// Stored is false when no balance row exists and the default
	// entitlement was assumed.
	Stored  bool
	Entries []store.VacationEntry
}

// VacationSummary counts the days the user's vacations cost inside year,
// including the in-year part of vacations that cross New Year, and
// subtracts them from the stored balance.
func (s *Service) VacationSummary(ctx context.Context, userID string, year int) (VacationSummary, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return VacationSummary{}, err
	}

	balance := timeoff.DefaultBalance()
	stored := true
	b, err := s.store.GetVacationBalance(ctx, u.ID, year)
	switch {
	case err == nil:
		balance = b.Balance
	case isNotFound(err):
		stored = false
	default:
		return VacationSummary{}, err
	}

	window := generic.YearPeriod(year)
	entries, err := s.store.ListVacations(ctx, u.ID, window)
	if err != nil {
		return VacationSummary{}, err
	}
	used := timeoff.UsedInPeriod(store.Vacations(entries), window, u.State)

	return VacationSummary{
		UserID:  u.ID,
		Year:    year,
		Summary: timeoff.Summarize(balance, used),
		Stored:  stored,
		Entries: entries,
	}, nil
}

// =============================================================================
// TEAM CALENDAR
// =============================================================================

// TeamMember is one row of the team calendar.
// State is the member's holiday calendar, needed to count vacation days.
type TeamMember struct {
	UserID    string
	Name      string
	State     holiday.State
	Vacations []store.VacationEntry
}

// TeamCalendar lists the vacations of all active users touching a month.
type TeamCalendar struct {
	Month   generic.Period
	Members []TeamMember
}

// TeamCalendar returns every active user, in name order, with the
// vacations that share at least one day with the month. Users without
// vacations are listed with none.
func (s *Service) TeamCalendar(ctx context.Context, year int, month time.Month) (TeamCalendar, error) {
	period := generic.MonthPeriod(year, month)

	users, err := s.activeUsers(ctx)
	if err != nil {
		return TeamCalendar{}, err
	}
	vacations, err := s.store.ListAllVacations(ctx, period)
	if err != nil {
		return TeamCalendar{}, err
	}

	byUser := make(map[string][]store.VacationEntry, len(users))
	for _, v := range vacations {
		byUser[v.UserID] = append(byUser[v.UserID], v)
	}

	members := make([]TeamMember, 0, len(users))
	for _, u := range users {
		members = append(members, TeamMember{UserID: u.ID, Name: u.Name, State: u.State, Vacations: byUser[u.ID]})
	}
	return TeamCalendar{Month: period, Members: members}, nil
}
