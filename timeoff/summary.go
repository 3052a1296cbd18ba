package timeoff

import (
	"github.com/lu-ally/AllyTimeTracking/generic"
)

// Summary is a yearly balance after consumption.
//
//	TotalEntitlement = AnnualEntitlement + CarryOver + Correction
//	Remaining        = TotalEntitlement - Used
//
// Remaining is not clamped: a negative value is an overdraft and must be
// shown as such.
type Summary struct {
	AnnualEntitlement generic.Amount `json:"annual_entitlement"`
	CarryOver         generic.Amount `json:"carry_over"`
	Correction        generic.Amount `json:"correction"`
	TotalEntitlement  generic.Amount `json:"total_entitlement"`
	Used              generic.Amount `json:"used"`
	Remaining         generic.Amount `json:"remaining"`
}

// Summarize computes the summary for a balance and the days already used.
func Summarize(b Balance, used generic.Amount) Summary {
	annual := generic.Amount{Value: b.AnnualEntitlement, Unit: generic.UnitDays}
	carry := generic.Amount{Value: b.CarryOver, Unit: generic.UnitDays}
	correction := generic.Amount{Value: b.Correction, Unit: generic.UnitDays}
	total := annual.Add(carry).Add(correction)

	return Summary{
		AnnualEntitlement: annual,
		CarryOver:         carry,
		Correction:        correction,
		TotalEntitlement:  total,
		Used:              generic.Amount{Value: used.Value, Unit: generic.UnitDays},
		Remaining:         total.Sub(used),
	}
}

// Overdrawn reports whether more days were used than granted.
func (s Summary) Overdrawn() bool {
	return s.Remaining.IsNegative()
}
