// Package timeoff implements vacation accounting: how many entitlement days
// a vacation consumes and what remains of a yearly balance.
// It uses the generic calendar types and the holiday calendar.
package timeoff

import (
	"github.com/shopspring/decimal"

	"github.com/lu-ally/AllyTimeTracking/generic"
)

// DefaultAnnualEntitlement applies when a user has no balance for a year.
const DefaultAnnualEntitlement = 30

// Entry is one vacation range. Half-day flags halve the first or last day.
type Entry struct {
	StartDate    generic.Date `json:"start_date"`
	EndDate      generic.Date `json:"end_date"`
	HalfDayStart bool         `json:"half_day_start"`
	HalfDayEnd   bool         `json:"half_day_end"`
	Notes        string       `json:"notes,omitempty"`
}

// Period returns the inclusive range the entry covers.
func (e Entry) Period() generic.Period {
	return generic.Period{Start: e.StartDate, End: e.EndDate}
}

// Validate rejects ranges that end before they start.
func (e Entry) Validate() error {
	if e.EndDate.Before(e.StartDate) {
		return &generic.ValidationError{
			Field:   "end_date",
			Message: "must be on or after start_date",
			Err:     generic.ErrInvalidPeriod,
		}
	}
	return nil
}

// Overlaps reports whether two entries share at least one calendar day.
func (e Entry) Overlaps(other Entry) bool {
	return e.Period().Overlaps(other.Period())
}

// Balance is the yearly entitlement record of a user, in days.
type Balance struct {
	AnnualEntitlement decimal.Decimal `json:"annual_entitlement"`
	CarryOver         decimal.Decimal `json:"carry_over"`
	Correction        decimal.Decimal `json:"correction"`
}

// DefaultBalance is the balance assumed when none is stored.
func DefaultBalance() Balance {
	return Balance{
		AnnualEntitlement: decimal.NewFromInt(DefaultAnnualEntitlement),
		CarryOver:         decimal.Zero,
		Correction:        decimal.Zero,
	}
}
