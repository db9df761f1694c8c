package estimator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rds-cost/core/projection"
	"rds-cost/core/types"
)

// NetworkKeys lists every network key the report carries. The fill path and
// the defaults path both write exactly this set, so renderers never see a
// partially populated network section.
func NetworkKeys() []string {
	keys := []string{
		"sqlnet_sent_daily", "sqlnet_sent_monthly",
		"sqlnet_recv_daily", "sqlnet_recv_monthly",
		"dblink_daily", "dblink_monthly",
		"redo_daily", "redo_monthly",
		"net_total_daily", "net_total_monthly",
		"net_cost_cross_az", "net_cost_cross_az_yearly",
		"net_cost_maz_cross_az", "net_cost_maz_cross_az_yearly",
		"net_cost_rr_cross_az", "net_cost_rr_cross_az_yearly",
		"net_cost_rr_cross_region", "net_cost_rr_cross_region_yearly",
		"net_monthly", "net_maz_monthly",
		"net_scenario",
	}
	for year := 1; year <= tcoYears; year++ {
		keys = append(keys,
			fmt.Sprintf("net_total_monthly_%dy", year),
			fmt.Sprintf("net_cost_cross_az_%dy", year),
			fmt.Sprintf("net_cost_cross_az_yearly_%dy", year),
		)
	}
	return keys
}

// fillNetwork prices the cross-AZ transfer baseline and its growth, or
// writes zero defaults when the profile carried no network counters.
// Transfer volume is assumed to grow at the same rate as the data itself.
func (b *builder) fillNetwork() {
	if !b.est.store.HasTraffic() {
		b.fillNetworkDefaults()
		return
	}

	tr := b.est.store.Traffic()
	sc := projection.MonthlyScenarios(tr, b.rates)
	months := decimal.NewFromInt(types.MonthsPerYear)

	gb := func(v float64) string {
		return b.money(decimal.NewFromFloat(v))
	}

	b.set("sqlnet_sent_daily", gb(tr.SentDailyGB))
	b.set("sqlnet_sent_monthly", gb(tr.SentDailyGB*projection.DaysPerMonth))
	b.set("sqlnet_recv_daily", gb(tr.RecvDailyGB))
	b.set("sqlnet_recv_monthly", gb(tr.RecvDailyGB*projection.DaysPerMonth))
	b.set("dblink_daily", gb(tr.DBLinkDailyGB))
	b.set("dblink_monthly", gb(tr.DBLinkDailyGB*projection.DaysPerMonth))
	b.set("redo_daily", gb(tr.RedoDailyGB))
	b.set("redo_monthly", gb(tr.RedoMonthlyGB()))
	b.set("net_total_daily", gb(tr.TotalDailyGB()))
	b.set("net_total_monthly", gb(tr.TotalMonthlyGB()))

	b.set("net_cost_cross_az", b.money(sc.CrossAZ))
	b.set("net_cost_cross_az_yearly", b.money(sc.CrossAZ.Mul(months)))
	b.set("net_cost_maz_cross_az", b.money(sc.MultiAZCrossAZ))
	b.set("net_cost_maz_cross_az_yearly", b.money(sc.MultiAZCrossAZ.Mul(months)))
	b.set("net_cost_rr_cross_az", b.money(sc.ReadReplicaCrossAZ))
	b.set("net_cost_rr_cross_az_yearly", b.money(sc.ReadReplicaCrossAZ.Mul(months)))
	b.set("net_cost_rr_cross_region", b.money(sc.ReadReplicaCrossRegion))
	b.set("net_cost_rr_cross_region_yearly", b.money(sc.ReadReplicaCrossRegion.Mul(months)))

	b.set("net_monthly", b.money(sc.CrossAZ))
	b.set("net_maz_monthly", b.money(sc.MultiAZCrossAZ))
	b.set("net_scenario", "Cross-AZ")

	b.netMonthly = sc.CrossAZ
	b.netMAZMonthly = sc.MultiAZCrossAZ

	for year := 1; year <= tcoYears; year++ {
		factor := projection.GrowthFactor(b.growthRate, year)
		monthlyVolume := decimal.NewFromFloat(tr.TotalMonthlyGB()).Mul(factor)
		crossAZ := sc.CrossAZ.Mul(factor).Round(2)

		b.set(fmt.Sprintf("net_total_monthly_%dy", year), b.money(monthlyVolume))
		b.set(fmt.Sprintf("net_cost_cross_az_%dy", year), b.money(crossAZ))
		b.set(fmt.Sprintf("net_cost_cross_az_yearly_%dy", year), b.money(crossAZ.Mul(months)))

		b.yearlyNet = append(b.yearlyNet, crossAZ.Mul(months))
	}
}

// fillNetworkDefaults zeroes the section when no traffic data exists, so the
// pricing totals still add up and the renderer finds every key.
func (b *builder) fillNetworkDefaults() {
	zero := b.money(decimal.Zero)
	for _, key := range NetworkKeys() {
		b.set(key, zero)
	}
	b.set("net_scenario", types.NotAvailable)

	b.netMonthly = decimal.Zero
	b.netMAZMonthly = decimal.Zero
	for year := 1; year <= tcoYears; year++ {
		b.yearlyNet = append(b.yearlyNet, decimal.Zero)
	}
}
