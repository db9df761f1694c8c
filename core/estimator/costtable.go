package estimator

import (
	"sort"

	"github.com/shopspring/decimal"

	"rds-cost/core/factstore"
	"rds-cost/core/types"
)

// CostRow is one line of the console comparison table: the yearly instance
// cost per purchase option plus the savings rate against the on-prem spend.
// Reserved columns use the All-Upfront plans; nil marks missing data.
type CostRow struct {
	InstanceType string                  `json:"instance_type"`
	Strategy     types.MigrationStrategy `json:"strategy"`
	Engine       string                  `json:"engine"`

	OnDemandAnnual *decimal.Decimal `json:"on_demand_annual,omitempty"`
	RI1YrAnnual    *decimal.Decimal `json:"ri_1yr_annual,omitempty"`
	RI3YrAnnual    *decimal.Decimal `json:"ri_3yr_annual,omitempty"`

	// SavingsRatePercent compares the best available annual cost against
	// the on-prem baseline. Nil when no baseline was given.
	SavingsRatePercent *float64 `json:"savings_rate_percent,omitempty"`
}

// effectiveAnnual averages a plan's cost over one year of its term, so
// three-year plans compare fairly against yearly figures.
func effectiveAnnual(fact *types.RateFact, ok bool) *decimal.Decimal {
	if !ok {
		return nil
	}
	total, avail := fact.Annual()
	if !avail {
		return nil
	}
	if years := fact.Option.TermYears(); years > 1 {
		total = total.Div(decimal.NewFromInt(int64(years))).Round(2)
	}
	return &total
}

// CostRows flattens the store's Single-AZ facts into comparison rows, one
// per instance and strategy, ordered replatform before refactoring and by
// instance type within a strategy.
func (e *Estimator) CostRows() []CostRow {
	var rows []CostRow
	for _, strategy := range []types.MigrationStrategy{types.StrategyReplatform, types.StrategyRefactoring} {
		facts := e.store.Index(strategy)
		if len(facts) == 0 {
			continue
		}

		engine := e.engine
		if strategy == types.StrategyRefactoring {
			engine = types.RefactoringEngine
		}

		seen := map[string]bool{}
		var instances []string
		for k := range facts {
			if k.Deployment == types.SingleAZ && !seen[k.InstanceType] {
				seen[k.InstanceType] = true
				instances = append(instances, k.InstanceType)
			}
		}
		sort.Strings(instances)

		for _, inst := range instances {
			lookup := func(opt types.PricingOption) *decimal.Decimal {
				f, ok := facts[factstore.IndexKey{InstanceType: inst, Deployment: types.SingleAZ, Option: opt}]
				return effectiveAnnual(f, ok)
			}

			row := CostRow{
				InstanceType:   inst,
				Strategy:       strategy,
				Engine:         engine,
				OnDemandAnnual: lookup(types.OnDemand),
				RI1YrAnnual:    lookup(types.RI1YrAllUpfront),
				RI3YrAnnual:    lookup(types.RI3YrAllUpfront),
			}
			row.SavingsRatePercent = e.savingsRate(row)
			rows = append(rows, row)
		}
	}
	return rows
}

// savingsRate compares the cheapest priced option against the on-prem
// annual baseline.
func (e *Estimator) savingsRate(row CostRow) *float64 {
	if e.onPrem == nil || *e.onPrem <= 0 {
		return nil
	}

	var best *decimal.Decimal
	for _, annual := range []*decimal.Decimal{row.OnDemandAnnual, row.RI1YrAnnual, row.RI3YrAnnual} {
		if annual == nil {
			continue
		}
		if best == nil || annual.LessThan(*best) {
			best = annual
		}
	}
	if best == nil {
		return nil
	}

	onPrem := decimal.NewFromFloat(*e.onPrem)
	rate, _ := onPrem.Sub(*best).Div(onPrem).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return &rate
}
