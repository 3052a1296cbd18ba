/*
Package store defines the persisted records and the repository interfaces
the API and the reports work against.

PURPOSE:
  The calendar and balance packages are pure. Everything that has an ID,
  an owner or a timestamp lives here: users, recorded working days,
  vacations and yearly vacation balances.

INVARIANTS ENFORCED BY EVERY IMPLEMENTATION:
  - At most one time entry per (user, date). Saving an entry for a day
    that already has one replaces it.
  - Vacations of one user never overlap. CreateVacation rejects an
    overlapping range with *generic.OverlapError.
  - User emails are unique (generic.ErrDuplicate).
  - Lookups of missing rows return an error wrapping generic.ErrNotFound.

IMPLEMENTATIONS:
  - store/sqlite: mattn/go-sqlite3, used by the server
  - store/memory: maps behind a RWMutex, used by tests

SEE ALSO:
  - report: Reads through Store and calls the pure packages
  - api: HTTP handlers on top of Store
*/
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
	"github.com/lu-ally/AllyTimeTracking/timeoff"
)

// =============================================================================
// RECORDS
// =============================================================================

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is an employee account.
type User struct {
	ID                  string          `json:"id"`
	Email               string          `json:"email"`
	Name                string          `json:"name"`
	Role                Role            `json:"role"`
	PasswordHash        string          `json:"-"`
	WeeklyHours         decimal.Decimal `json:"weekly_hours"`
	VacationDaysPerYear decimal.Decimal `json:"vacation_days_per_year"`
	State               holiday.State   `json:"state"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CreatedOn is the calendar day the account was created, as seen from loc.
func (u User) CreatedOn(loc *time.Location) generic.Date { return generic.DateOf(u.CreatedAt.In(loc)) }

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// TimeEntry is a stored working day of a user.
type TimeEntry struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	timekeeping.Entry
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VacationEntry is a stored vacation of a user.
type VacationEntry struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	timeoff.Entry
	CreatedAt time.Time `json:"created_at"`
}

// VacationBalance is the entitlement of a user for one year.
type VacationBalance struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	timeoff.Balance
}

// DefaultVacationBalance is the row created for a user and year: their own
// yearly days, or the default entitlement if unset.
func DefaultVacationBalance(u User, year int) VacationBalance {
	b := timeoff.DefaultBalance()
	if u.VacationDaysPerYear.IsPositive() {
		b.AnnualEntitlement = u.VacationDaysPerYear
	}
	return VacationBalance{UserID: u.ID, Year: year, Balance: b}
}

// Entries strips the records down to the values the calculations use.
func Entries(records []TimeEntry) []timekeeping.Entry {
	out := make([]timekeeping.Entry, len(records))
	for i, r := range records {
		out[i] = r.Entry
	}
	return out
}

// Vacations strips the records down to the values the calculations use.
func Vacations(records []VacationEntry) []timeoff.Entry {
	out := make([]timeoff.Entry, len(records))
	for i, r := range records {
		out[i] = r.Entry
	}
	return out
}

// =============================================================================
// REPOSITORIES
// =============================================================================

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u User) error
	CountActiveAdmins(ctx context.Context) (int, error)
}

// TimeEntryStore persists working days.
type TimeEntryStore interface {
	// SaveTimeEntry inserts or replaces the entry for (UserID, Date) and
	// returns the stored record.
	SaveTimeEntry(ctx context.Context, e TimeEntry) (TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, userID string, date generic.Date) error
	// ListTimeEntries returns the user's entries inside p, ordered by date.
	ListTimeEntries(ctx context.Context, userID string, p generic.Period) ([]TimeEntry, error)
}

// VacationStore persists vacations and yearly balances.
type VacationStore interface {
	// CreateVacation stores v unless it overlaps another vacation of the
	// same user, in which case it returns *generic.OverlapError.
	CreateVacation(ctx context.Context, v VacationEntry) error
	DeleteVacation(ctx context.Context, userID, id string) error
	// ListVacations returns the user's vacations sharing a day with p,
	// ordered by start date.
	ListVacations(ctx context.Context, userID string, p generic.Period) ([]VacationEntry, error)
	// ListAllVacations is ListVacations across users.
	ListAllVacations(ctx context.Context, p generic.Period) ([]VacationEntry, error)

	GetVacationBalance(ctx context.Context, userID string, year int) (VacationBalance, error)
	SaveVacationBalance(ctx context.Context, b VacationBalance) error
}

// Store is everything the application persists.
type Store interface {
	UserStore
	TimeEntryStore
	VacationStore
	Close() error
}
