/*
Package report answers the questions users and admins ask of the stored
data: balances, per-day breakdowns, vacation summaries, the monthly admin
report, the team calendar and the CSV export.

PURPOSE:
  Every operation loads records through store.Store and hands plain
  values to the pure packages (timekeeping, timeoff). Nothing here
  computes hours or days on its own.

TODAY:
  Running balances stop at "today" and start no earlier than the day the
  account was created. Both days are read in one location (WithLocation,
  UTC unless configured) so a signup shortly after midnight local time
  lands on the right day. Tests pin the clock with WithClock.

CONCURRENCY:
  MonthlyReport computes users in parallel with errgroup, bounded by
  the configured worker count. Each worker only reads from the store.

SEE ALSO:
  - timekeeping: Target vs. actual hours
  - timeoff: Vacation days and remaining entitlement
  - api: Exposes these over HTTP
*/
package report

import (
	"context"
	"errors"
	"time"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
)

const defaultWorkers = 4

// Service builds reports from a store.
type Service struct {
	store   store.Store
	workers int
	loc     *time.Location
	today   func() generic.Date
}

type Option func(*Service)

// WithWorkers bounds the parallelism of MonthlyReport.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLocation sets the time zone in which calendar days are read.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(today func() generic.Date) Option {
	return func(s *Service) { s.today = today }
}

func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, workers: defaultWorkers, loc: time.UTC}
	s.today = func() generic.Date { return generic.TodayIn(s.loc) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the service's notion of the current day.
func (s *Service) Today() generic.Date { return s.today() }

// Location is the time zone calendar days are read in.
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) createdOn(u store.User) generic.Date { return u.CreatedOn(s.loc) }

// activeUsers returns active users in name order.
func (s *Service) activeUsers(ctx context.Context) ([]store.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	active := users[:0:0]
	for _, u := range users {
		if u.IsActive {
			active = append(active, u)
		}
	}
	return active, nil
}

// =============================================================================
// BALANCE
// =============================================================================

// Balance is a user's standing on one day.
type Balance struct {
	UserID  string
	AsOf    generic.Date
	Running PeriodSummary
	Week    PeriodSummary
	Month   PeriodSummary
}

// PeriodSummary is an aggregation together with the range it covers.
type PeriodSummary struct {
	Period generic.Period
	timekeeping.Summary
}

// Balance returns the running balance (January 1st or account creation
// through asOf) and the totals of the calendar week and month of asOf.
func (s *Service) Balance(ctx context.Context, userID string, asOf generic.Date) (Balance, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Balance{}, err
	}

	running := timekeeping.RunningPeriod(s.createdOn(u), asOf)
	week := generic.WeekPeriod(asOf)
	month := generic.MonthPeriod(asOf.Year, asOf.Month)

	span := generic.Period{
		Start: generic.MinDate(running.Start, generic.MinDate(week.Start, month.Start)),
		End:   generic.MaxDate(week.End, month.End),
	}
	records, err := s.store.ListTimeEntries(ctx, u.ID, span)
	if err != nil {
		return Balance{}, err
	}
	entries := store.Entries(records)

	summarize := func(p generic.Period) PeriodSummary {
		return PeriodSummary{
			Period:  p,
			Summary: timekeeping.AggregateBalance(p, u.WeeklyHours, entries, u.State),
		}
	}
	return Balance{
		UserID:  u.ID,
		AsOf:    asOf,
		Running: summarize(running),
		Week:    summarize(week),
		Month:   summarize(month),
	}, nil
}

// =============================================================================
// DAYS
// =============================================================================

// Days is a per-day breakdown of a range.
type Days struct {
	UserID string
	Period generic.Period
	Days   []timekeeping.Day
	Totals timekeeping.Summary
}

// DailyBreakdown lists every day of p with its target, worked hours and
// holiday, for the user's contract and state.
func (s *Service) DailyBreakdown(ctx context.Context, userID string, p generic.Period) (Days, error) {
	if p.IsEmpty() {
		return Days{}, &generic.ValidationError{Field: "to", Message: "must be on or after from", Err: generic.ErrInvalidPeriod}
	}
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Days{}, err
	}
	records, err := s.store.ListTimeEntries(ctx, u.ID, p)
	if err != nil {
		return Days{}, err
	}

	rows := timekeeping.DailyBreakdown(p, u.WeeklyHours, store.Entries(records), u.State)
	return Days{UserID: u.ID, Period: p, Days: rows, Totals: timekeeping.Totals(rows)}, nil
}

func isNotFound(err error) bool { return errors.Is(err, generic.ErrNotFound) }
