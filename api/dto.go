/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the stored records and the calculation results from the external API
  contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

NUMBERS:
  Hours and days leave the API as JSON numbers (float64) for display.
  Balances additionally come pre-formatted as "+HH:MM" so every client
  shows the same rounding.

VALIDATION:
  Validation is done in validate.go, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - validate.go: Request checks
*/
package api

import (
	"time"

	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/report"
	"github.com/lu-ally/AllyTimeTracking/store"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
	"github.com/lu-ally/AllyTimeTracking/timeoff"
)

// =============================================================================
// USERS
// =============================================================================

// UserDTO represents a user in API responses. The password hash never
// leaves the server.
type UserDTO struct {
	ID                  string  `json:"id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	Role                string  `json:"role"`
	WeeklyHours         float64 `json:"weekly_hours"`
	VacationDaysPerYear float64 `json:"vacation_days_per_year"`
	State               string  `json:"state"`
	IsActive            bool    `json:"is_active"`
	CreatedAt           string  `json:"created_at"`
}

// CreateUserRequest creates a user. An empty password is generated and
// returned once in CreateUserResponse.
type CreateUserRequest struct {
	Email               string   `json:"email"`
	Name                string   `json:"name"`
	Password            string   `json:"password"`
	Role                string   `json:"role"`
	WeeklyHours         *float64 `json:"weekly_hours"`
	VacationDaysPerYear *float64 `json:"vacation_days_per_year"`
	State               string   `json:"state"`
}

// CreateUserResponse carries the generated password, if any.
type CreateUserResponse struct {
	User              UserDTO `json:"user"`
	GeneratedPassword string  `json:"generated_password,omitempty"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Email               *string  `json:"email"`
	Name                *string  `json:"name"`
	Password            *string  `json:"password"`
	Role                *string  `json:"role"`
	WeeklyHours         *float64 `json:"weekly_hours"`
	VacationDaysPerYear *float64 `json:"vacation_days_per_year"`
	State               *string  `json:"state"`
	IsActive            *bool    `json:"is_active"`
}

func toUserDTO(u store.User) UserDTO {
	weekly, _ := u.WeeklyHours.Float64()
	vacation, _ := u.VacationDaysPerYear.Float64()
	return UserDTO{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                string(u.Role),
		WeeklyHours:         weekly,
		VacationDaysPerYear: vacation,
		State:               string(u.State),
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// TIME ENTRIES AND BALANCES
// =============================================================================

// TimeEntryDTO represents a recorded working day.
type TimeEntryDTO struct {
	ID           string  `json:"id,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        string  `json:"notes,omitempty"`
	WorkedHours  float64 `json:"worked_hours"`
	Worked       string  `json:"worked"`
}

// SaveTimeEntryRequest is the body of PUT .../time-entries/{date}.
type SaveTimeEntryRequest struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	Notes        string `json:"notes"`
}

func toTimeEntryDTO(id string, e timekeeping.Entry) TimeEntryDTO {
	worked := e.Worked()
	return TimeEntryDTO{
		ID:           id,
		Date:         e.Date.String(),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		BreakMinutes: e.BreakMinutes,
		Notes:        e.Notes,
		WorkedHours:  worked.Float64(),
		Worked:       timekeeping.FormatHoursMinutes(worked),
	}
}

// SummaryDTO is target vs. actual over a range.
type SummaryDTO struct {
	TargetHours  float64 `json:"target_hours"`
	ActualHours  float64 `json:"actual_hours"`
	BalanceHours float64 `json:"balance_hours"`
	Balance      string  `json:"balance"`
}

func toSummaryDTO(s timekeeping.Summary) SummaryDTO {
	return SummaryDTO{
		TargetHours:  s.Target.Float64(),
		ActualHours:  s.Actual.Float64(),
		BalanceHours: s.Balance.Float64(),
		Balance:      timekeeping.FormatBalance(s.Balance),
	}
}

// PeriodSummaryDTO is a SummaryDTO with its range.
type PeriodSummaryDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
	SummaryDTO
}

func toPeriodSummaryDTO(p report.PeriodSummary) PeriodSummaryDTO {
	return PeriodSummaryDTO{
		From:       p.Period.Start.String(),
		To:         p.Period.End.String(),
		SummaryDTO: toSummaryDTO(p.Summary),
	}
}

// BalanceResponse is the answer of GET .../balance.
type BalanceResponse struct {
	UserID  string           `json:"user_id"`
	AsOf    string           `json:"as_of"`
	Running PeriodSummaryDTO `json:"running"`
	Week    PeriodSummaryDTO `json:"week"`
	Month   PeriodSummaryDTO `json:"month"`
}

// DayDTO is one row of a per-day breakdown.
type DayDTO struct {
	Date         string        `json:"date"`
	Weekday      string        `json:"weekday"`
	Weekend      bool          `json:"weekend"`
	Holiday      string        `json:"holiday,omitempty"`
	TargetHours  float64       `json:"target_hours"`
	WorkedHours  float64       `json:"worked_hours"`
	BalanceHours float64       `json:"balance_hours"`
	Entry        *TimeEntryDTO `json:"entry,omitempty"`
}

// DaysResponse is the answer of GET .../days.
type DaysResponse struct {
	UserID string     `json:"user_id"`
	From   string     `json:"from"`
	To     string     `json:"to"`
	Days   []DayDTO   `json:"days"`
	Totals SummaryDTO `json:"totals"`
}

func toDayDTO(d timekeeping.Day) DayDTO {
	dto := DayDTO{
		Date:         d.Date.String(),
		Weekday:      d.Date.Weekday().String(),
		Weekend:      d.Weekend,
		TargetHours:  d.Target.Float64(),
		WorkedHours:  d.Worked.Float64(),
		BalanceHours: d.Balance().Float64(),
	}
	if d.Holiday != nil {
		dto.Holiday = d.Holiday.Name
	}
	if d.Entry != nil {
		entry := toTimeEntryDTO("", *d.Entry)
		dto.Entry = &entry
	}
	return dto
}

// =============================================================================
// VACATIONS
// =============================================================================

// VacationDTO represents a vacation. Days is what the whole range costs.
type VacationDTO struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	HalfDayStart bool    `json:"half_day_start"`
	HalfDayEnd   bool    `json:"half_day_end"`
	Notes        string  `json:"notes,omitempty"`
	Days         float64 `json:"days"`
}

// CreateVacationRequest is the body of POST .../vacations.
type CreateVacationRequest struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	HalfDayStart bool   `json:"half_day_start"`
	HalfDayEnd   bool   `json:"half_day_end"`
	Notes        string `json:"notes"`
}

func toVacationDTO(v store.VacationEntry, state holiday.State) VacationDTO {
	return VacationDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		StartDate:    v.StartDate.String(),
		EndDate:      v.EndDate.String(),
		HalfDayStart: v.HalfDayStart,
		HalfDayEnd:   v.HalfDayEnd,
		Notes:        v.Notes,
		Days:         timeoff.DaysUsed(v.StartDate, v.EndDate, v.HalfDayStart, v.HalfDayEnd, state).Float64(),
	}
}

// VacationSummaryDTO is the yearly vacation account.
type VacationSummaryDTO struct {
	UserID            string        `json:"user_id"`
	Year              int           `json:"year"`
	AnnualEntitlement float64       `json:"annual_entitlement"`
	CarryOver         float64       `json:"carry_over"`
	Correction        float64       `json:"correction"`
	TotalEntitlement  float64       `json:"total_entitlement"`
	Used              float64       `json:"used"`
	Remaining         float64       `json:"remaining"`
	Overdrawn         bool          `json:"overdrawn"`
	Stored            bool          `json:"stored"`
	Entries           []VacationDTO `json:"entries"`
}

// VacationBalanceRequest is the body of PUT .../vacation-balances/{year}.
type VacationBalanceRequest struct {
	AnnualEntitlement float64 `json:"annual_entitlement"`
	CarryOver         float64 `json:"carry_over"`
	Correction        float64 `json:"correction"`
}

// VacationBalanceDTO echoes a stored balance.
type VacationBalanceDTO struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	VacationBalanceRequest
}

// =============================================================================
// CALENDAR AND REPORTS
// =============================================================================

// HolidayDTO is one public holiday.
type HolidayDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Name    string `json:"name"`
}

// HolidaysResponse lists the holidays of a state and year.
type HolidaysResponse struct {
	Year     int          `json:"year"`
	State    string       `json:"state"`
	Holidays []HolidayDTO `json:"holidays"`
}

// TeamMemberDTO is one row of the team calendar.
type TeamMemberDTO struct {
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	State     string        `json:"state"`
	Vacations []VacationDTO `json:"vacations"`
}

// TeamCalendarResponse is the answer of GET /api/team-calendar.
type TeamCalendarResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Members []TeamMemberDTO `json:"members"`
}

// MonthlyReportRowDTO is one user of the monthly report.
type MonthlyReportRowDTO struct {
	UserID              string  `json:"user_id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	TargetHours         float64 `json:"target_hours"`
	ActualHours         float64 `json:"actual_hours"`
	MonthBalanceHours   float64 `json:"month_balance_hours"`
	MonthBalance        string  `json:"month_balance"`
	RunningBalanceHours float64 `json:"running_balance_hours"`
	RunningBalance      string  `json:"running_balance"`
}

// MonthlyReportResponse is the answer of GET /api/admin/reports/monthly.
type MonthlyReportResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Users []MonthlyReportRowDTO `json:"users"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
