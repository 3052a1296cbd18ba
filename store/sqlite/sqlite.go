/*
Package sqlite provides a SQLite-backed implementation of store.Store.

KEY TABLES:
  users:              Accounts, contract hours and holiday state
  time_entries:       One row per (user, date)
  vacation_entries:   Vacation ranges with half-day flags
  vacation_balances:  Yearly entitlement per user

INDEXES:
  - idx_time_entries_user_date: UNIQUE, the one-entry-per-day rule and
    the upsert target
  - idx_vacation_entries_user_range: Overlap checks and yearly listings

STORAGE FORMAT:
  Dates are TEXT "YYYY-MM-DD" so range filters compare lexically.
  Decimals are TEXT so no float rounding happens on the way in or out.
  Timestamps are RFC 3339 in UTC.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and a single connection so that
  ":memory:" databases are shared by every query.

USAGE:
  db, err := sqlite.New("./data/timetracking.db")
  if err != nil {
      log.Fatal(err)
  }
  defer db.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - store/store.go: Interface definitions
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/store"
)

var _ store.Store = (*Store)(nil)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates it.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		password_hash TEXT NOT NULL,
		weekly_hours TEXT NOT NULL DEFAULT '40',
		vacation_days_per_year TEXT NOT NULL DEFAULT '30',
		state TEXT NOT NULL DEFAULT 'HH',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_user_date
		ON time_entries(user_id, date);

	CREATE TABLE IF NOT EXISTS vacation_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		half_day_start BOOLEAN NOT NULL DEFAULT FALSE,
		half_day_end BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_vacation_entries_user_range
		ON vacation_entries(user_id, start_date, end_date);

	CREATE TABLE IF NOT EXISTS vacation_balances (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		annual_entitlement TEXT NOT NULL,
		carry_over TEXT NOT NULL DEFAULT '0',
		correction TEXT NOT NULL DEFAULT '0',
		PRIMARY KEY (user_id, year)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

const userColumns = `id, email, name, role, password_hash, weekly_hours,
	vacation_days_per_year, state, is_active, created_at, updated_at`

// CreateUser inserts a user. A missing ID is generated.
func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, string(u.Role), u.PasswordHash,
		u.WeeklyHours.String(), u.VacationDaysPerYear.String(), string(u.State),
		u.IsActive, formatTime(u.CreatedAt), formatTime(now),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("email %q: %w", u.Email, generic.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row, "user "+id)
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row, "user "+email)
}

// ListUsers returns all users ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, email`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []store.User
	for rows.Next() {
		u, err := scanUser(rows, "")
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites the mutable fields of an existing user.
func (s *Store) UpdateUser(ctx context.Context, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			email = ?, name = ?, role = ?, password_hash = ?, weekly_hours = ?,
			vacation_days_per_year = ?, state = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		u.Email, u.Name, string(u.Role), u.PasswordHash, u.WeeklyHours.String(),
		u.VacationDaysPerYear.String(), string(u.State), u.IsActive,
		formatTime(time.Now().UTC()), u.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("email %q: %w", u.Email, generic.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res, "user "+u.ID)
}

// CountActiveAdmins counts users that are both active and admins.
func (s *Store) CountActiveAdmins(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ? AND is_active`,
		string(store.RoleAdmin),
	).Scan(&count)
	return count, err
}

func scanUser(row scanner, what string) (store.User, error) {
	var (
		u                    store.User
		role, state          string
		weekly, vacation     string
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &weekly,
		&vacation, &state, &u.IsActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, fmt.Errorf("%s: %w", what, generic.ErrNotFound)
	}
	if err != nil {
		return u, fmt.Errorf("failed to scan user: %w", err)
	}

	u.Role = store.Role(role)
	u.State = holiday.ParseState(state)
	u.WeeklyHours = parseDecimal(weekly)
	u.VacationDaysPerYear = parseDecimal(vacation)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return u, nil
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

const timeEntryColumns = `id, user_id, date, start_time, end_time, break_minutes,
	notes, created_at, updated_at`

// SaveTimeEntry upserts on (user_id, date). The first write fixes the ID
// and created_at; later writes only replace the values.
func (s *Store) SaveTimeEntry(ctx context.Context, e store.TimeEntry) (store.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := formatTime(time.Now().UTC())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_entries (`+timeEntryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			break_minutes = excluded.break_minutes,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		e.ID, e.UserID, e.Date.String(), e.StartTime, e.EndTime, e.BreakMinutes,
		nullString(e.Notes), now, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return e, fmt.Errorf("user %s: %w", e.UserID, generic.ErrNotFound)
		}
		return e, fmt.Errorf("failed to save time entry: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE user_id = ? AND date = ?`,
		e.UserID, e.Date.String(),
	)
	return scanTimeEntry(row)
}

// DeleteTimeEntry removes the entry of a user for one day.
func (s *Store) DeleteTimeEntry(ctx context.Context, userID string, date generic.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM time_entries WHERE user_id = ? AND date = ?`,
		userID, date.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("time entry %s/%s", userID, date))
}

// ListTimeEntries returns a user's entries inside p, ordered by date.
func (s *Store) ListTimeEntries(ctx context.Context, userID string, p generic.Period) ([]store.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+timeEntryColumns+` FROM time_entries
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID, p.Start.String(), p.End.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []store.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanTimeEntry(row scanner) (store.TimeEntry, error) {
	var (
		e                    store.TimeEntry
		date                 string
		notes                sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&e.ID, &e.UserID, &date, &e.StartTime, &e.EndTime,
		&e.BreakMinutes, &notes, &createdAt, &updatedAt)
	if err != nil {
		return e, fmt.Errorf("failed to scan time entry: %w", err)
	}

	e.Date, err = generic.ParseDate(date)
	if err != nil {
		return e, fmt.Errorf("time entry %s: %w", e.ID, err)
	}
	e.Notes = notes.String
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// =============================================================================
// VACATIONS
// =============================================================================

const vacationColumns = `id, user_id, start_date, end_date, half_day_start,
	half_day_end, notes, created_at`

// CreateVacation inserts v unless it shares a day with another vacation of
// the same user. Check and insert run in one transaction.
func (s *Store) CreateVacation(ctx context.Context, v store.VacationEntry) error {
	if err := v.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID, start, end string
	err = tx.QueryRowContext(ctx, `
		SELECT id, start_date, end_date FROM vacation_entries
		WHERE user_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date LIMIT 1`,
		v.UserID, v.EndDate.String(), v.StartDate.String(),
	).Scan(&existingID, &start, &end)
	switch {
	case err == nil:
		return &generic.OverlapError{
			ExistingID: existingID,
			Existing:   generic.Period{Start: generic.MustParseDate(start), End: generic.MustParseDate(end)},
		}
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to check overlap: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO vacation_entries (`+vacationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.StartDate.String(), v.EndDate.String(),
		v.HalfDayStart, v.HalfDayEnd, nullString(v.Notes), formatTime(v.CreatedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", v.UserID, generic.ErrNotFound)
		}
		return fmt.Errorf("failed to create vacation: %w", err)
	}
	return tx.Commit()
}

// DeleteVacation removes a vacation owned by userID.
func (s *Store) DeleteVacation(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM vacation_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}
	return requireAffected(res, "vacation "+id)
}

// ListVacations returns a user's vacations sharing a day with p.
func (s *Store) ListVacations(ctx context.Context, userID string, p generic.Period) ([]store.VacationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryVacations(ctx, `
		SELECT `+vacationColumns+` FROM vacation_entries
		WHERE user_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date ASC`,
		userID, p.End.String(), p.Start.String(),
	)
}

// ListAllVacations returns every user's vacations sharing a day with p.
func (s *Store) ListAllVacations(ctx context.Context, p generic.Period) ([]store.VacationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryVacations(ctx, `
		SELECT `+vacationColumns+` FROM vacation_entries
		WHERE start_date <= ? AND end_date >= ?
		ORDER BY start_date ASC, user_id ASC`,
		p.End.String(), p.Start.String(),
	)
}

func (s *Store) queryVacations(ctx context.Context, query string, args ...any) ([]store.VacationEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacations: %w", err)
	}
	defer rows.Close()

	var vacations []store.VacationEntry
	for rows.Next() {
		var (
			v          store.VacationEntry
			start, end string
			notes      sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&v.ID, &v.UserID, &start, &end, &v.HalfDayStart,
			&v.HalfDayEnd, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}
		if v.StartDate, err = generic.ParseDate(start); err != nil {
			return nil, fmt.Errorf("vacation %s: %w", v.ID, err)
		}
		if v.EndDate, err = generic.ParseDate(end); err != nil {
			return nil, fmt.Errorf("vacation %s: %w", v.ID, err)
		}
		v.Notes = notes.String
		v.CreatedAt = parseTime(createdAt)
		vacations = append(vacations, v)
	}
	return vacations, rows.Err()
}

// GetVacationBalance returns the stored balance of a user for year.
func (s *Store) GetVacationBalance(ctx context.Context, userID string, year int) (store.VacationBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := store.VacationBalance{UserID: userID, Year: year}
	var annual, carry, correction string
	err := s.db.QueryRowContext(ctx, `
		SELECT annual_entitlement, carry_over, correction FROM vacation_balances
		WHERE user_id = ? AND year = ?`,
		userID, year,
	).Scan(&annual, &carry, &correction)
	if errors.Is(err, sql.ErrNoRows) {
		return b, fmt.Errorf("vacation balance %s/%d: %w", userID, year, generic.ErrNotFound)
	}
	if err != nil {
		return b, fmt.Errorf("failed to get vacation balance: %w", err)
	}

	b.AnnualEntitlement = parseDecimal(annual)
	b.CarryOver = parseDecimal(carry)
	b.Correction = parseDecimal(correction)
	return b, nil
}

// SaveVacationBalance inserts or replaces the balance for (UserID, Year).
func (s *Store) SaveVacationBalance(ctx context.Context, b store.VacationBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vacation_balances (user_id, year, annual_entitlement, carry_over, correction)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, year) DO UPDATE SET
			annual_entitlement = excluded.annual_entitlement,
			carry_over = excluded.carry_over,
			correction = excluded.correction`,
		b.UserID, b.Year, b.AnnualEntitlement.String(), b.CarryOver.String(), b.Correction.String(),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", b.UserID, generic.ErrNotFound)
		}
		return fmt.Errorf("failed to save vacation balance: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, generic.ErrNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

func isForeignKeyError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
