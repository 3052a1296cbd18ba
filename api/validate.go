package api

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
)

// =============================================================================
// LIMITS
// =============================================================================

const (
	minNameLength     = 2
	minPasswordLength = 8
	maxPasswordBytes  = 72

	defaultWeeklyHours     = 40
	maxWeeklyHours         = 60
	defaultVacationDays    = 30
	maxVacationDaysPerYear = 50
	maxQueryRangeDays      = 366
	maxBreakMinutes        = 24 * 60
)

func invalid(field, message string) error {
	return &generic.ValidationError{Field: field, Message: message}
}

// =============================================================================
// USERS
// =============================================================================

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "is not a valid address")
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return invalid("name", "must be at least 2 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalid("password", "must be at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		return invalid("password", "must not exceed 72 bytes")
	}
	return nil
}

func parseRole(role string) (store.Role, error) {
	r := store.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !r.Valid() {
		return "", invalid("role", "must be USER or ADMIN")
	}
	return r, nil
}

// parseState accepts the 16 state codes. An empty code means fallback.
func parseState(code string, fallback holiday.State) (holiday.State, error) {
	if strings.TrimSpace(code) == "" {
		return fallback, nil
	}
	s := holiday.State(strings.ToUpper(strings.TrimSpace(code)))
	if !s.Valid() {
		return "", invalid("state", "is not a German state code")
	}
	return s, nil
}

func boundedDecimal(field string, value float64, max int64) (decimal.Decimal, error) {
	d := decimal.NewFromFloat(value)
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(max)) {
		return decimal.Zero, &generic.ValidationError{
			Field:   field,
			Message: "must be between 0 and " + decimal.NewFromInt(max).String(),
		}
	}
	return d, nil
}

func weeklyHours(value *float64) (decimal.Decimal, error) {
	if value == nil {
		return decimal.NewFromInt(defaultWeeklyHours), nil
	}
	return boundedDecimal("weekly_hours", *value, maxWeeklyHours)
}

func vacationDaysPerYear(value *float64) (decimal.Decimal, error) {
	if value == nil {
		return decimal.NewFromInt(defaultVacationDays), nil
	}
	return boundedDecimal("vacation_days_per_year", *value, maxVacationDaysPerYear)
}

// newUser validates a create request and builds the user without ID or
// password hash.
func newUser(req CreateUserRequest, defaultState holiday.State) (store.User, error) {
	u := store.User{
		Email:    normalizeEmail(req.Email),
		Name:     strings.TrimSpace(req.Name),
		Role:     store.RoleUser,
		IsActive: true,
	}
	if err := validateEmail(u.Email); err != nil {
		return u, err
	}
	if err := validateName(u.Name); err != nil {
		return u, err
	}
	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return u, err
		}
	}
	if req.Role != "" {
		role, err := parseRole(req.Role)
		if err != nil {
			return u, err
		}
		u.Role = role
	}

	var err error
	if u.WeeklyHours, err = weeklyHours(req.WeeklyHours); err != nil {
		return u, err
	}
	if u.VacationDaysPerYear, err = vacationDaysPerYear(req.VacationDaysPerYear); err != nil {
		return u, err
	}
	if u.State, err = parseState(req.State, defaultState); err != nil {
		return u, err
	}
	return u, nil
}

// applyUserUpdate copies the present fields of req onto u. The password is
// validated here and hashed by the caller.
func applyUserUpdate(u store.User, req UpdateUserRequest) (store.User, error) {
	if req.Email != nil {
		u.Email = normalizeEmail(*req.Email)
		if err := validateEmail(u.Email); err != nil {
			return u, err
		}
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
		if err := validateName(u.Name); err != nil {
			return u, err
		}
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return u, err
		}
	}
	if req.Role != nil {
		role, err := parseRole(*req.Role)
		if err != nil {
			return u, err
		}
		u.Role = role
	}
	if req.WeeklyHours != nil {
		d, err := weeklyHours(req.WeeklyHours)
		if err != nil {
			return u, err
		}
		u.WeeklyHours = d
	}
	if req.VacationDaysPerYear != nil {
		d, err := vacationDaysPerYear(req.VacationDaysPerYear)
		if err != nil {
			return u, err
		}
		u.VacationDaysPerYear = d
	}
	if req.State != nil {
		s, err := parseState(*req.State, u.State)
		if err != nil {
			return u, err
		}
		u.State = s
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	return u, nil
}

// =============================================================================
// TIME ENTRIES AND VACATIONS
// =============================================================================

// newTimeEntry checks clock format, order and break before anything is
// stored. The calculations themselves never reject input.
func newTimeEntry(date generic.Date, req SaveTimeEntryRequest) (timekeeping.Entry, error) {
	start, err := timekeeping.ParseClock(req.StartTime)
	if err != nil {
		return timekeeping.Entry{}, &generic.ValidationError{Field: "start_time", Message: "must be HH:MM", Err: generic.ErrInvalidClock}
	}
	end, err := timekeeping.ParseClock(req.EndTime)
	if err != nil {
		return timekeeping.Entry{}, &generic.ValidationError{Field: "end_time", Message: "must be HH:MM", Err: generic.ErrInvalidClock}
	}
	if end <= start {
		return timekeeping.Entry{}, invalid("end_time", "must be after start_time")
	}
	if req.BreakMinutes < 0 || req.BreakMinutes > maxBreakMinutes {
		return timekeeping.Entry{}, invalid("break_minutes", "must be between 0 and 1440")
	}
	return timekeeping.Entry{
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		Notes:        strings.TrimSpace(req.Notes),
	}, nil
}

func parseDateField(field, value string) (generic.Date, error) {
	d, err := generic.ParseDate(value)
	if err != nil {
		return d, &generic.ValidationError{Field: field, Message: "must be YYYY-MM-DD", Err: generic.ErrInvalidDate}
	}
	return d, nil
}

func newVacation(req CreateVacationRequest) (store.VacationEntry, error) {
	var v store.VacationEntry
	var err error
	if v.StartDate, err = parseDateField("start_date", req.StartDate); err != nil {
		return v, err
	}
	if v.EndDate, err = parseDateField("end_date", req.EndDate); err != nil {
		return v, err
	}
	v.HalfDayStart = req.HalfDayStart
	v.HalfDayEnd = req.HalfDayEnd
	v.Notes = strings.TrimSpace(req.Notes)
	return v, v.Validate()
}

func newVacationBalance(userID string, year int, req VacationBalanceRequest) (store.VacationBalance, error) {
	b := store.VacationBalance{UserID: userID, Year: year}
	if req.AnnualEntitlement < 0 {
		return b, invalid("annual_entitlement", "must not be negative")
	}
	b.AnnualEntitlement = decimal.NewFromFloat(req.AnnualEntitlement)
	b.CarryOver = decimal.NewFromFloat(req.CarryOver)
	b.Correction = decimal.NewFromFloat(req.Correction)
	return b, nil
}
