package estimator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rds-cost/core/factstore"
	"rds-cost/core/projection"
	"rds-cost/core/types"
)

// fillRefactoring prices the Aurora PostgreSQL refactoring path next to the
// like-for-like replatform figures. Savings compare yearly totals per
// purchase option; a missing side leaves that option's savings at N/A.
func (b *builder) fillRefactoring(idx map[factstore.IndexKey]*types.RateFact, specInstances, sgaInstances map[string]string, families []string) {
	months := decimal.NewFromInt(types.MonthsPerYear)
	auroraStor := projection.AuroraMonthly(b.dbSizeGB).Total

	for _, family := range families {
		inst := sgaInstances[family]
		if inst == "" {
			inst = specInstances[family]
		}

		for _, opt := range types.PricingOptions() {
			code := opt.ShortCode()
			keyBase := fmt.Sprintf("refac_%s_%s", family, code)

			monthly, ok := decimal.Zero, false
			if inst != "" {
				monthly, ok = monthlyFrom(idx, inst, types.SingleAZ, opt)
			}
			if !ok {
				b.setRefacNA(keyBase)
				continue
			}

			totalMonthly := monthly.Add(auroraStor).Add(b.netMonthly)
			totalYearly := totalMonthly.Mul(months)
			b.set(keyBase+"_monthly", b.money(monthly))
			b.set(keyBase+"_total_yearly", b.money(totalYearly))

			replatKey := fmt.Sprintf("sga_%s_%s_total_yearly", family, code)
			replatStr, present := b.data[replatKey]
			if !present || replatStr == types.NotAvailable {
				b.set(keyBase+"_savings", types.NotAvailable)
				b.set(keyBase+"_savings_rate", types.NotAvailable)
				continue
			}
			replat, err := types.ParseMoney(replatStr)
			if err != nil {
				b.set(keyBase+"_savings", types.NotAvailable)
				b.set(keyBase+"_savings_rate", types.NotAvailable)
				continue
			}

			savings := replat.Sub(totalYearly)
			b.set(keyBase+"_savings", b.money(savings))
			if replat.IsPositive() {
				rate := savings.Div(replat).Mul(decimal.NewFromInt(100))
				b.set(keyBase+"_savings_rate", rate.StringFixed(1))
			} else {
				b.set(keyBase+"_savings_rate", types.NotAvailable)
			}
		}
	}
}

func (b *builder) setRefacNA(keyBase string) {
	b.set(keyBase+"_monthly", types.NotAvailable)
	b.set(keyBase+"_total_yearly", types.NotAvailable)
	b.set(keyBase+"_savings", types.NotAvailable)
	b.set(keyBase+"_savings_rate", types.NotAvailable)
}

// fillRefactoringDefaults writes the full refactoring key set as N/A for
// engines with no refactoring path, so templates can still reference it.
func (b *builder) fillRefactoringDefaults(families []string) {
	for _, family := range families {
		for _, opt := range types.PricingOptions() {
			b.setRefacNA(fmt.Sprintf("refac_%s_%s", family, opt.ShortCode()))
		}
	}
}
