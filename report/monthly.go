package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
)

// UserMonth is one row of the monthly admin report.
type UserMonth struct {
	UserID string
	Name   string
	Email  string
	// Month covers every day of the month, future days included.
	Month timekeeping.Summary
	// RunningBalance runs from January 1st (or account creation) to the
	// end of the month, or today if the month is not over yet.
	RunningBalance generic.Amount
}

// MonthlyReport computes one row per active user, in name order.
func (s *Service) MonthlyReport(ctx context.Context, year int, month time.Month) ([]UserMonth, error) {
	if month < time.January || month > time.December {
		return nil, &generic.ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}

	users, err := s.activeUsers(ctx)
	if err != nil {
		return nil, err
	}

	period := generic.MonthPeriod(year, month)
	today := s.today()
	rows := make([]UserMonth, len(users))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, u := range users {
		g.Go(func() error {
			row, err := s.userMonth(ctx, u, period, today)
			if err != nil {
				return fmt.Errorf("report for %s: %w", u.ID, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) userMonth(ctx context.Context, u store.User, month generic.Period, today generic.Date) (UserMonth, error) {
	running := timekeeping.ClosedMonthRunningPeriod(s.createdOn(u), month, today)

	span := month
	if !running.IsEmpty() {
		span = generic.Period{
			Start: generic.MinDate(month.Start, running.Start),
			End:   generic.MaxDate(month.End, running.End),
		}
	}
	records, err := s.store.ListTimeEntries(ctx, u.ID, span)
	if err != nil {
		return UserMonth{}, err
	}
	entries := store.Entries(records)

	return UserMonth{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Month:          timekeeping.AggregateBalance(month, u.WeeklyHours, entries, u.State),
		RunningBalance: timekeeping.AggregateBalance(running, u.WeeklyHours, entries, u.State).Balance,
	}, nil
}
