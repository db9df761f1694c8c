package types

import "github.com/shopspring/decimal"

// RateFact is a single priced (instance, option) observation collected from
// the pricing source. Rate fields are only meaningful when Available is true.
type RateFact struct {
	Spec   InstanceSpec  `json:"spec"`
	Option PricingOption `json:"option"`

	// HourlyRate is the on-demand hourly rate in USD.
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	// UpfrontFee is the reserved upfront payment in USD.
	UpfrontFee decimal.Decimal `json:"upfront_fee"`

	// MonthlyFee is the reserved recurring monthly fee in USD,
	// already converted from the hourly charge at HoursPerMonth.
	MonthlyFee decimal.Decimal `json:"monthly_fee"`

	// Available reports whether the pricing source returned data.
	Available bool `json:"available"`
}

var (
	hoursPerMonth = decimal.NewFromInt(HoursPerMonth)
	monthsPerYear = decimal.NewFromInt(MonthsPerYear)
)

// Monthly returns the recurring monthly cost of the instance. For on-demand
// this is the hourly rate at 730 hours; for reserved terms it is the fee
// component only, keeping the upfront/monthly distinction visible.
func (f *RateFact) Monthly() (decimal.Decimal, bool) {
	if !f.Available {
		return decimal.Zero, false
	}
	if f.Option == OnDemand {
		return f.HourlyRate.Mul(hoursPerMonth), true
	}
	return f.MonthlyFee, true
}

// Annual returns the total cost of the full commitment term:
// on-demand at monthly x 12, reserved at upfront + monthly x term months.
// A 3-year term therefore reports the 36-month figure, not a per-year slice.
func (f *RateFact) Annual() (decimal.Decimal, bool) {
	monthly, ok := f.Monthly()
	if !ok {
		return decimal.Zero, false
	}
	if f.Option == OnDemand {
		return monthly.Mul(monthsPerYear), true
	}
	termMonths := decimal.NewFromInt(int64(f.Option.TermYears() * MonthsPerYear))
	return f.UpfrontFee.Add(f.MonthlyFee.Mul(termMonths)), true
}

// Unavailable builds a placeholder fact for a missing price point.
func Unavailable(spec InstanceSpec, option PricingOption) *RateFact {
	return &RateFact{Spec: spec, Option: option, Available: false}
}
