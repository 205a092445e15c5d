package internal

import "math"

// Rate is the fixed conversion rate: 1 EUR = Rate BGN
const Rate = 1.95583

// balanceTolerance absorbs floating point noise when checking for exact settlement
const balanceTolerance = 0.01

type Settlement string

const (
	SettlementBalanced     Settlement = "balanced"
	SettlementOverReturned Settlement = "over-returned"
	SettlementPending      Settlement = "pending"
)

// DerivedBalance is everything computed from a FormState. It is never stored.
type DerivedBalance struct {
	PriceEUR    float64 `json:"price_eur"`
	PaidEUR     float64 `json:"paid_eur"`
	PaidBGN     float64 `json:"paid_bgn"`
	ReturnedEUR float64 `json:"returned_eur"`
	ReturnedBGN float64 `json:"returned_bgn"`

	PaidBGNInEUR     float64 `json:"paid_bgn_in_eur"`
	ReturnedBGNInEUR float64 `json:"returned_bgn_in_eur"`

	TotalPaidEUR       float64 `json:"total_paid_eur"`
	TotalChangeEUR     float64 `json:"total_change_eur"`
	TotalReturnedEUR   float64 `json:"total_returned_eur"`
	RemainingChangeEUR float64 `json:"remaining_change_eur"`
	RemainingChangeBGN float64 `json:"remaining_change_bgn"`

	// IsActivated is true once any payment or return is positive
	IsActivated bool `json:"is_activated"`
}

// ComputeBalance derives totals and remaining change from the raw inputs.
// It has no side effects.
func ComputeBalance(state FormState) DerivedBalance {
	b := DerivedBalance{
		PriceEUR:    ParseAmount(state.PriceEUR),
		PaidEUR:     ParseAmount(state.PaidEUR),
		PaidBGN:     ParseAmount(state.PaidBGN),
		ReturnedEUR: ParseAmount(state.ReturnedEUR),
		ReturnedBGN: ParseAmount(state.ReturnedBGN),
	}

	b.PaidBGNInEUR = b.PaidBGN / Rate
	b.ReturnedBGNInEUR = b.ReturnedBGN / Rate

	b.TotalPaidEUR = b.PaidEUR + b.PaidBGNInEUR
	b.TotalChangeEUR = b.TotalPaidEUR - b.PriceEUR
	b.TotalReturnedEUR = b.ReturnedEUR + b.ReturnedBGNInEUR
	b.RemainingChangeEUR = b.TotalChangeEUR - b.TotalReturnedEUR
	b.RemainingChangeBGN = b.RemainingChangeEUR * Rate

	b.IsActivated = b.PaidEUR > 0 || b.PaidBGN > 0 || b.ReturnedEUR > 0 || b.ReturnedBGN > 0

	return b
}

// Settlement classifies the balance. ok is false until the balance is activated.
// Balanced is checked before over-returned so the tolerant comparison wins at the boundary.
func (b DerivedBalance) Settlement() (s Settlement, ok bool) {
	if !b.IsActivated {
		return "", false
	}
	if math.Abs(b.RemainingChangeEUR) < balanceTolerance {
		return SettlementBalanced, true
	}
	if b.TotalPaidEUR >= b.PriceEUR && b.RemainingChangeEUR < 0 {
		return SettlementOverReturned, true
	}
	return SettlementPending, true
}
