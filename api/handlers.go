/*
handlers.go - HTTP API handlers for time tracking and vacation accounting

PURPOSE:
  Exposes the calendar and balance engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the store and the
  report service.

ENDPOINTS:
  Calendar:
    GET    /api/health                               Liveness
    GET    /api/holidays?year=&state=                Public holidays of a state

  Users:
    GET    /api/users                                List users
    POST   /api/users                                Create user
    GET    /api/users/{id}                           Get user
    PUT    /api/users/{id}                           Update user
    DELETE /api/users/{id}                           Deactivate user

  Working time:
    GET    /api/users/{id}/time-entries?from=&to=    Recorded days
    PUT    /api/users/{id}/time-entries/{date}       Record or replace a day
    DELETE /api/users/{id}/time-entries/{date}       Remove a day
    GET    /api/users/{id}/days?from=&to=            Per-day target vs. actual
    GET    /api/users/{id}/balance?asOf=             Running, week and month balance

  Vacation:
    GET    /api/users/{id}/vacations?year=           Vacations touching a year
    POST   /api/users/{id}/vacations                 Book a vacation
    DELETE /api/users/{id}/vacations/{vid}           Cancel a vacation
    GET    /api/users/{id}/vacation-summary?year=    Entitlement, used, remaining
    PUT    /api/users/{id}/vacation-balances/{year}  Set a yearly balance
    GET    /api/team-calendar?year=&month=           Vacations of all active users

  Admin:
    GET    /api/admin/reports/monthly?year=&month=   Per-user month report
    GET    /api/admin/export?startDate=&endDate=     CSV export

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Users, entries, vacations, balances
  - Reports: Read-side calculations (report.Service)
  - Log: zap logger for failures

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (validate.go)
  3. Call the store or the report service
  4. Serialize response (dto.go)
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, last admin
  - 404: Resource not found
  - 409: Conflict (duplicate email, overlapping vacation)
  - 500: Internal errors (logged)

SECURITY NOTE:
  Authentication is handled in front of this API. Handlers trust the
  caller.

SEE ALSO:
  - dto.go: Request/response data structures
  - validate.go: Input checks
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/report"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   store.Store
	Reports *report.Service
	Log     *zap.Logger
	// DefaultState applies to users created without a state.
	DefaultState holiday.State

	// Serializes role and activity changes so two requests cannot demote
	// the last two admins at once.
	adminMu sync.Mutex
}

// NewHandler creates a new handler.
func NewHandler(st store.Store, reports *report.Service, log *zap.Logger, defaultState holiday.State) *Handler {
	return &Handler{
		Store:        st,
		Reports:      reports,
		Log:          log,
		DefaultState: defaultState.Normalize(),
	}
}

func (h *Handler) today() generic.Date { return h.Reports.Today() }

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListHolidays returns the public holidays of a state and year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r, h.today().Year)
	if err != nil {
		h.fail(w, r, "Invalid year", err)
		return
	}
	state, err := parseState(r.URL.Query().Get("state"), h.DefaultState)
	if err != nil {
		h.fail(w, r, "Invalid state", err)
		return
	}

	list := holiday.HolidaysForYear(year, state)
	dtos := make([]HolidayDTO, len(list))
	for i, ph := range list {
		dtos[i] = HolidayDTO{Date: ph.Date.String(), Weekday: ph.Date.Weekday().String(), Name: ph.Name}
	}
	writeJSON(w, http.StatusOK, HolidaysResponse{Year: year, State: string(state), Holidays: dtos})
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users, active or not, ordered by name.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list users", err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUser returns one user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// CreateUser creates an account and its vacation balance for the current
// year. Without a password one is generated and returned once.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	u, err := newUser(req, h.DefaultState)
	if err != nil {
		h.fail(w, r, "Invalid user", err)
		return
	}

	password, generated := req.Password, ""
	if password == "" {
		if password, err = GeneratePassword(GeneratedPasswordLength); err != nil {
			h.fail(w, r, "Failed to generate password", err)
			return
		}
		generated = password
	}
	if u.PasswordHash, err = HashPassword(password); err != nil {
		h.fail(w, r, "Failed to hash password", err)
		return
	}

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if err := h.Store.CreateUser(r.Context(), u); err != nil {
		h.fail(w, r, "Failed to create user", err)
		return
	}
	if err := h.Store.SaveVacationBalance(r.Context(), store.DefaultVacationBalance(u, h.today().Year)); err != nil {
		h.fail(w, r, "Failed to create vacation balance", err)
		return
	}

	h.Log.Info("user created",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
		zap.String("request_id", middleware.GetReqID(r.Context())))
	writeJSON(w, http.StatusCreated, CreateUserResponse{User: toUserDTO(u), GeneratedPassword: generated})
}

// UpdateUser changes the fields present in the body.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.adminMu.Lock()
	defer h.adminMu.Unlock()

	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	updated, err := applyUserUpdate(u, req)
	if err != nil {
		h.fail(w, r, "Invalid user", err)
		return
	}
	if req.Password != nil {
		if updated.PasswordHash, err = HashPassword(*req.Password); err != nil {
			h.fail(w, r, "Failed to hash password", err)
			return
		}
	}
	if err := h.keepAnAdmin(r, u, updated); err != nil {
		h.fail(w, r, "Cannot change user", err)
		return
	}

	if err := h.Store.UpdateUser(r.Context(), updated); err != nil {
		h.fail(w, r, "Failed to update user", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(updated))
}

// DeactivateUser marks a user inactive. Recorded data is kept.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.adminMu.Lock()
	defer h.adminMu.Unlock()

	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	updated := u
	updated.IsActive = false
	if err := h.keepAnAdmin(r, u, updated); err != nil {
		h.fail(w, r, "Cannot deactivate user", err)
		return
	}

	if err := h.Store.UpdateUser(r.Context(), updated); err != nil {
		h.fail(w, r, "Failed to deactivate user", err)
		return
	}
	h.Log.Info("user deactivated",
		zap.String("user_id", u.ID),
		zap.String("request_id", middleware.GetReqID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

// keepAnAdmin rejects a change that takes away the last active admin.
// Callers hold adminMu.
func (h *Handler) keepAnAdmin(r *http.Request, before, after store.User) error {
	wasAdmin := before.IsActive && before.IsAdmin()
	staysAdmin := after.IsActive && after.IsAdmin()
	if !wasAdmin || staysAdmin {
		return nil
	}
	n, err := h.Store.CountActiveAdmins(r.Context())
	if err != nil {
		return err
	}
	if n <= 1 {
		return generic.ErrLastAdmin
	}
	return nil
}

// =============================================================================
// TIME ENTRY HANDLERS
// =============================================================================

// ListTimeEntries returns the recorded days in a range (default: the
// current month).
func (h *Handler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	p, err := h.queryRange(r)
	if err != nil {
		h.fail(w, r, "Invalid range", err)
		return
	}

	records, err := h.Store.ListTimeEntries(r.Context(), u.ID, p)
	if err != nil {
		h.fail(w, r, "Failed to list time entries", err)
		return
	}
	dtos := make([]TimeEntryDTO, len(records))
	for i, rec := range records {
		dtos[i] = toTimeEntryDTO(rec.ID, rec.Entry)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveTimeEntry records a day, replacing the existing entry of that day.
func (h *Handler) SaveTimeEntry(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	date, err := parseDateField("date", chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, "Invalid date", err)
		return
	}

	var req SaveTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	entry, err := newTimeEntry(date, req)
	if err != nil {
		h.fail(w, r, "Invalid time entry", err)
		return
	}

	saved, err := h.Store.SaveTimeEntry(r.Context(), store.TimeEntry{ID: uuid.NewString(), UserID: u.ID, Entry: entry})
	if err != nil {
		h.fail(w, r, "Failed to save time entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimeEntryDTO(saved.ID, saved.Entry))
}

// DeleteTimeEntry removes the entry of a day.
func (h *Handler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateField("date", chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, "Invalid date", err)
		return
	}
	if err := h.Store.DeleteTimeEntry(r.Context(), chi.URLParam(r, "id"), date); err != nil {
		h.fail(w, r, "Failed to delete time entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDays returns the per-day breakdown of a range (default: the current
// month) with its totals.
func (h *Handler) GetDays(w http.ResponseWriter, r *http.Request) {
	p, err := h.queryRange(r)
	if err != nil {
		h.fail(w, r, "Invalid range", err)
		return
	}

	days, err := h.Reports.DailyBreakdown(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		h.fail(w, r, "Failed to compute days", err)
		return
	}
	dtos := make([]DayDTO, len(days.Days))
	for i, d := range days.Days {
		dtos[i] = toDayDTO(d)
	}
	writeJSON(w, http.StatusOK, DaysResponse{
		UserID: days.UserID,
		From:   days.Period.Start.String(),
		To:     days.Period.End.String(),
		Days:   dtos,
		Totals: toSummaryDTO(days.Totals),
	})
}

// GetBalance returns the running balance and the week and month totals
// on asOf (default: today).
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "asOf", h.today())
	if err != nil {
		h.fail(w, r, "Invalid asOf", err)
		return
	}

	b, err := h.Reports.Balance(r.Context(), chi.URLParam(r, "id"), asOf)
	if err != nil {
		h.fail(w, r, "Failed to compute balance", err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{
		UserID:  b.UserID,
		AsOf:    b.AsOf.String(),
		Running: toPeriodSummaryDTO(b.Running),
		Week:    toPeriodSummaryDTO(b.Week),
		Month:   toPeriodSummaryDTO(b.Month),
	})
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// ListVacations returns the vacations touching a year (default: current).
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	year, err := queryYear(r, h.today().Year)
	if err != nil {
		h.fail(w, r, "Invalid year", err)
		return
	}

	records, err := h.Store.ListVacations(r.Context(), u.ID, generic.YearPeriod(year))
	if err != nil {
		h.fail(w, r, "Failed to list vacations", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTOs(records, u.State))
}

// CreateVacation books a vacation. Overlapping an existing one is a 409.
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	var req CreateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	v, err := newVacation(req)
	if err != nil {
		h.fail(w, r, "Invalid vacation", err)
		return
	}

	v.ID = uuid.NewString()
	v.UserID = u.ID
	v.CreatedAt = time.Now().UTC()
	if err := h.Store.CreateVacation(r.Context(), v); err != nil {
		var overlap *generic.OverlapError
		if errors.As(err, &overlap) {
			writeError(w, http.StatusConflict, "Vacation overlaps an existing vacation", err)
			return
		}
		h.fail(w, r, "Failed to create vacation", err)
		return
	}
	writeJSON(w, http.StatusCreated, toVacationDTO(v, u.State))
}

// DeleteVacation cancels a vacation of the user in the path.
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteVacation(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "vid")); err != nil {
		h.fail(w, r, "Failed to delete vacation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetVacationSummary returns entitlement, used and remaining days.
func (h *Handler) GetVacationSummary(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	year, err := queryYear(r, h.today().Year)
	if err != nil {
		h.fail(w, r, "Invalid year", err)
		return
	}

	s, err := h.Reports.VacationSummary(r.Context(), u.ID, year)
	if err != nil {
		h.fail(w, r, "Failed to compute vacation summary", err)
		return
	}
	writeJSON(w, http.StatusOK, VacationSummaryDTO{
		UserID:            s.UserID,
		Year:              s.Year,
		AnnualEntitlement: s.AnnualEntitlement.Float64(),
		CarryOver:         s.CarryOver.Float64(),
		Correction:        s.Correction.Float64(),
		TotalEntitlement:  s.TotalEntitlement.Float64(),
		Used:              s.Used.Float64(),
		Remaining:         s.Remaining.Float64(),
		Overdrawn:         s.Overdrawn(),
		Stored:            s.Stored,
		Entries:           toVacationDTOs(s.Entries, u.State),
	})
}

// SetVacationBalance stores the yearly balance of a user.
func (h *Handler) SetVacationBalance(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		h.fail(w, r, "Invalid year", err)
		return
	}

	var req VacationBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	b, err := newVacationBalance(u.ID, year, req)
	if err != nil {
		h.fail(w, r, "Invalid vacation balance", err)
		return
	}

	if err := h.Store.SaveVacationBalance(r.Context(), b); err != nil {
		h.fail(w, r, "Failed to save vacation balance", err)
		return
	}
	writeJSON(w, http.StatusOK, VacationBalanceDTO{UserID: u.ID, Year: year, VacationBalanceRequest: req})
}

// GetTeamCalendar returns every active user with the vacations touching
// a month (default: current).
func (h *Handler) GetTeamCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := h.queryMonth(r)
	if err != nil {
		h.fail(w, r, "Invalid month", err)
		return
	}

	cal, err := h.Reports.TeamCalendar(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, "Failed to build team calendar", err)
		return
	}

	members := make([]TeamMemberDTO, len(cal.Members))
	for i, m := range cal.Members {
		members[i] = TeamMemberDTO{
			UserID:    m.UserID,
			Name:      m.Name,
			State:     string(m.State),
			Vacations: toVacationDTOs(m.Vacations, m.State),
		}
	}
	writeJSON(w, http.StatusOK, TeamCalendarResponse{
		Year:    year,
		Month:   int(month),
		From:    cal.Month.Start.String(),
		To:      cal.Month.End.String(),
		Members: members,
	})
}

func toVacationDTOs(records []store.VacationEntry, state holiday.State) []VacationDTO {
	dtos := make([]VacationDTO, len(records))
	for i, v := range records {
		dtos[i] = toVacationDTO(v, state)
	}
	return dtos
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// GetMonthlyReport returns target, actual and running balance per active
// user for a month (default: current).
func (h *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := h.queryMonth(r)
	if err != nil {
		h.fail(w, r, "Invalid month", err)
		return
	}

	rows, err := h.Reports.MonthlyReport(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, "Failed to build monthly report", err)
		return
	}
	dtos := make([]MonthlyReportRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = MonthlyReportRowDTO{
			UserID:              row.UserID,
			Name:                row.Name,
			Email:               row.Email,
			TargetHours:         row.Month.Target.Float64(),
			ActualHours:         row.Month.Actual.Float64(),
			MonthBalanceHours:   row.Month.Balance.Float64(),
			MonthBalance:        timekeeping.FormatBalance(row.Month.Balance),
			RunningBalanceHours: row.RunningBalance.Float64(),
			RunningBalance:      timekeeping.FormatBalance(row.RunningBalance),
		}
	}
	writeJSON(w, http.StatusOK, MonthlyReportResponse{Year: year, Month: int(month), Users: dtos})
}

// ExportCSV streams the recorded days of all active users as a CSV file.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("startDate") == "" || q.Get("endDate") == "" {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required", nil)
		return
	}
	start, err := parseDateField("startDate", q.Get("startDate"))
	if err != nil {
		h.fail(w, r, "Invalid startDate", err)
		return
	}
	end, err := parseDateField("endDate", q.Get("endDate"))
	if err != nil {
		h.fail(w, r, "Invalid endDate", err)
		return
	}
	p := generic.Period{Start: start, End: end}

	// Buffered so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := h.Reports.ExportCSV(r.Context(), &buf, p); err != nil {
		h.fail(w, r, "Failed to export", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.ExportFilename(p)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// loadUser resolves {id} and writes the error response itself.
func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request) (store.User, bool) {
	u, err := h.Store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "User not found", err)
		return u, false
	}
	return u, true
}

func queryDate(r *http.Request, name string, fallback generic.Date) (generic.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return parseDateField(name, v)
}

// queryRange reads from/to, defaulting to the current month.
func (h *Handler) queryRange(r *http.Request) (generic.Period, error) {
	today := h.today()
	month := generic.MonthPeriod(today.Year, today.Month)

	from, err := queryDate(r, "from", month.Start)
	if err != nil {
		return generic.Period{}, err
	}
	to, err := queryDate(r, "to", month.End)
	if err != nil {
		return generic.Period{}, err
	}
	p, err := generic.NewPeriod(from, to)
	if err != nil {
		return p, &generic.ValidationError{Field: "to", Message: "must be on or after from", Err: err}
	}
	if p.Len() > maxQueryRangeDays {
		return p, invalid("to", "range must not exceed 366 days")
	}
	return p, nil
}

func parseYear(v string) (int, error) {
	year, err := strconv.Atoi(v)
	if err != nil || year < 1900 || year > 9999 {
		return 0, invalid("year", "must be a year between 1900 and 9999")
	}
	return year, nil
}

func queryYear(r *http.Request, fallback int) (int, error) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return fallback, nil
	}
	return parseYear(v)
}

// queryMonth reads year and month, defaulting to the current month.
func (h *Handler) queryMonth(r *http.Request) (int, time.Month, error) {
	today := h.today()
	year, err := queryYear(r, today.Year)
	if err != nil {
		return 0, 0, err
	}
	v := r.URL.Query().Get("month")
	if v == "" {
		return year, today.Month, nil
	}
	m, err := strconv.Atoi(v)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, invalid("month", "must be between 1 and 12")
	}
	return year, time.Month(m), nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// fail maps err onto a status code. Unexpected errors are logged and their
// details withheld.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case generic.IsClientError(err):
		writeFieldError(w, http.StatusBadRequest, message, err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.Log.Error(message,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())))
		writeError(w, http.StatusInternalServerError, message, nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeFieldError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message, Details: err.Error()}
	var verr *generic.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	writeJSON(w, status, resp)
}
