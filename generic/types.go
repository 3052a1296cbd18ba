/*
Package generic provides the calendar and quantity primitives shared by the
holiday, timekeeping and timeoff packages.

KEY CONCEPTS:
  - Date:   A calendar day (year/month/day), never an instant
  - Period: An inclusive range of days that aggregations run over
  - Amount: A quantity with a unit (8.5 hours, 0.5 days)

DESIGN PRINCIPLES:
  1. Calendar-day semantics only: no time zones, no time-of-day
  2. Precision: Uses decimal.Decimal so running totals are exact and
     identical on every platform
  3. No I/O: everything here is a value type

USAGE:
  month := generic.MonthPeriod(2024, time.March)
  for _, day := range month.Days() {
      ...
  }
  total := generic.Hours(0).Add(generic.NewAmount(8.5, generic.UnitHours))

SEE ALSO:
  - time.go: Date
  - period.go: Period and range helpers
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
)

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func Hours(value float64) Amount { return NewAmount(value, UnitHours) }
func Days(value float64) Amount  { return NewAmount(value, UnitDays) }

// MinutesToHours converts whole minutes into an hour amount.
func MinutesToHours(minutes int) Amount {
	return Amount{Value: decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)), Unit: UnitHours}
}

func (a Amount) Add(b Amount) Amount       { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount       { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) IsNegative() bool          { return a.Value.IsNegative() }
func (a Amount) GreaterThan(b Amount) bool { return a.Value.GreaterThan(b.Value) }
func (a Amount) Equal(b Amount) bool       { return a.Value.Equal(b.Value) }

// Float64 is for presentation only; never feed it back into arithmetic.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

func (a Amount) String() string { return a.Value.String() + " " + string(a.Unit) }
