package estimator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rds-cost/core/factstore"
	"rds-cost/core/types"
)

// tcoOptions maps the TCO column codes to the purchase option each one is
// computed from. Reserved columns use the All-Upfront variants: the one-year
// plan renews twice, the three-year plan is bought once.
var tcoOptions = []struct {
	code   string
	option types.PricingOption
}{
	{"od", types.OnDemand},
	{"ri1", types.RI1YrAllUpfront},
	{"ri3", types.RI3YrAllUpfront},
}

// annualOverHorizon returns the instance cost over the full projection
// horizon for one purchase option. Annual() already folds upfront fees in,
// so on-demand and one-year plans multiply by the horizon while the
// three-year figure is the term total itself.
func annualOverHorizon(fact *types.RateFact) (decimal.Decimal, bool) {
	annual, ok := fact.Annual()
	if !ok {
		return decimal.Zero, false
	}
	if fact.Option.TermYears() == tcoYears {
		return annual, true
	}
	return annual.Mul(decimal.NewFromInt(tcoYears)), true
}

func (b *builder) sumYearly(vals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return total
}

// fillTCO writes the three-year totals per candidate instance and the
// year-by-year breakdown for the SGA-sized candidates. Storage and network
// grow with the data; the instance price stays flat.
func (b *builder) fillTCO(idx map[factstore.IndexKey]*types.RateFact, specInstances, sgaInstances map[string]string, families []string) {
	stor3yr := b.sumYearly(b.yearlyStor)
	net3yr := b.sumYearly(b.yearlyNet)

	b.set("tco_stor_3yr", b.money(stor3yr))
	b.set("tco_net_3yr", b.money(net3yr))

	for _, col := range []struct {
		prefix    string
		instances map[string]string
	}{
		{"spec", specInstances},
		{"sga", sgaInstances},
	} {
		for _, family := range families {
			inst := col.instances[family]
			for _, opt := range tcoOptions {
				key := fmt.Sprintf("tco_%s_%s_%s", col.prefix, family, opt.code)
				if inst == "" {
					b.set(key, types.NotAvailable)
					continue
				}
				fact, ok := idx[factstore.IndexKey{InstanceType: inst, Deployment: types.SingleAZ, Option: opt.option}]
				if !ok {
					b.set(key, types.NotAvailable)
					continue
				}
				instTotal, ok := annualOverHorizon(fact)
				if !ok {
					b.set(key, types.NotAvailable)
					continue
				}
				b.set(key, b.money(instTotal.Add(stor3yr).Add(net3yr)))
			}
		}
	}

	b.fillTCODetail(idx, sgaInstances, families)
}

// fillTCODetail breaks the SGA-sized three-year reserved plan down per year.
// The instance line amortizes the three-year All-Upfront fee evenly so the
// yearly rows sum back to the headline figure.
func (b *builder) fillTCODetail(idx map[factstore.IndexKey]*types.RateFact, sgaInstances map[string]string, families []string) {
	years := decimal.NewFromInt(tcoYears)

	for year := 1; year <= tcoYears; year++ {
		b.set(fmt.Sprintf("tco_detail_stor_%dy", year), b.money(b.yearlyStor[year-1]))
		b.set(fmt.Sprintf("tco_detail_net_%dy", year), b.money(b.yearlyNet[year-1]))
	}

	for _, family := range families {
		inst := sgaInstances[family]
		totalKey := fmt.Sprintf("tco_detail_%s_total", family)

		var instAnnual decimal.Decimal
		available := false
		if inst != "" {
			if fact, ok := idx[factstore.IndexKey{InstanceType: inst, Deployment: types.SingleAZ, Option: types.RI3YrAllUpfront}]; ok {
				if termTotal, ok := fact.Annual(); ok {
					instAnnual = termTotal.Div(years).Round(2)
					available = true
				}
			}
		}

		if !available {
			for year := 1; year <= tcoYears; year++ {
				b.set(fmt.Sprintf("tco_detail_%s_inst_%dy", family, year), types.NotAvailable)
				b.set(fmt.Sprintf("tco_detail_%s_%dy", family, year), types.NotAvailable)
			}
			b.set(totalKey, types.NotAvailable)
			continue
		}

		total := decimal.Zero
		for year := 1; year <= tcoYears; year++ {
			yearTotal := instAnnual.Add(b.yearlyStor[year-1]).Add(b.yearlyNet[year-1])
			total = total.Add(yearTotal)
			b.set(fmt.Sprintf("tco_detail_%s_inst_%dy", family, year), b.money(instAnnual))
			b.set(fmt.Sprintf("tco_detail_%s_%dy", family, year), b.money(yearTotal))
		}
		b.set(totalKey, b.money(total))
	}
}
