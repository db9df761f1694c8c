package estimator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rds-cost/core/catalog"
	"rds-cost/core/factstore"
	"rds-cost/core/projection"
	"rds-cost/core/rates"
	"rds-cost/core/types"
)

// Report is the flat key-value map every renderer consumes. Monetary values
// are pre-formatted "#,##0.00" strings; missing figures carry "N/A".
type Report map[string]string

// tcoYears is the projection horizon.
const tcoYears = 3

// builder accumulates one report. The monetary baselines computed by the
// storage and network sections feed the pricing and TCO sections, so fills
// run in a fixed order.
type builder struct {
	est      *Estimator
	data     Report
	rates    rates.Rates
	isAurora bool

	dbSizeGB   float64
	growthRate float64
	provIOPS   int
	provTPMBps float64

	storMonthly    decimal.Decimal
	storMAZMonthly decimal.Decimal
	netMonthly     decimal.Decimal
	netMAZMonthly  decimal.Decimal

	// annual storage/network costs for years 1..3
	yearlyStor []decimal.Decimal
	yearlyNet  []decimal.Decimal
}

// BuildReport folds the store's profile and pricing facts into the report
// map. Unknown regions degrade to default-region rates with a warning.
func (e *Estimator) BuildReport() (Report, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	r, err := rates.Resolve(e.region)
	if err != nil {
		e.logger.Warn("region missing from rate tables, using default rates",
			zap.String("region", e.region), zap.Error(err))
	}

	p := e.store.Profile()
	b := &builder{
		est:        e,
		data:       make(Report, 256),
		rates:      r,
		isAurora:   types.IsAuroraEngine(e.engine),
		dbSizeGB:   e.dbSizeGB(),
		growthRate: e.growthRate(),
		provIOPS:   p.ProvisionedIOPS,
		provTPMBps: p.ProvisionedThroughputMBps,
	}

	families := e.familyList()
	specInstances := e.specInstances()
	sgaInstances := e.sgaInstances()
	priceIndex := e.store.Index(types.StrategyReplatform)

	b.fillOverview(families)
	b.fillStorage()
	b.fillNetwork()

	b.fillInstanceSpecs(specInstances, families, "spec")
	b.fillInstanceSpecs(sgaInstances, families, "sga")
	b.fillPricing(priceIndex, specInstances, families, "spec")
	b.fillPricing(priceIndex, sgaInstances, families, "sga")

	b.fillComparison(families)
	b.fillTCO(priceIndex, specInstances, sgaInstances, families)

	refacIndex := e.store.Index(types.StrategyRefactoring)
	if types.IsLicensedEngine(e.engine) && len(refacIndex) > 0 {
		b.fillRefactoring(refacIndex, specInstances, sgaInstances, families)
		b.data["refac_section_visible"] = "true"
	} else {
		b.fillRefactoringDefaults(families)
		b.data["refac_section_visible"] = "false"
	}

	return b.data, nil
}

func (b *builder) money(d decimal.Decimal) string {
	return types.FormatMoney(d)
}

func (b *builder) set(key, value string) {
	b.data[key] = value
}

func optFloat(v *float64) string {
	if v == nil {
		return types.NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func (b *builder) fillOverview(families []string) {
	e := b.est
	p := e.store.Profile()

	b.set("family_a", families[0])
	if len(families) > 1 {
		b.set("family_b", families[1])
	} else {
		b.set("family_b", types.NotAvailable)
	}

	dbName := p.Server.DBName
	if dbName == "" {
		dbName = "Unknown"
	}
	b.set("db_name", dbName)
	if p.Server.EngineVersion != "" {
		b.set("engine_version", p.Server.EngineVersion)
	} else {
		b.set("engine_version", types.NotAvailable)
	}
	b.set("aws_region", e.region)
	today := time.Now().Format("2006-01-02")
	b.set("report_date", today)
	b.set("pricing_date", today)

	if p.Server.CPUCores != nil {
		b.set("cpu_cores", strconv.Itoa(*p.Server.CPUCores))
	} else {
		b.set("cpu_cores", types.NotAvailable)
	}
	b.set("physical_memory", optFloat(p.Server.PhysicalMemoryGB))
	b.set("db_size", optFloat(p.Server.DBSizeGB))
	if p.Server.InstanceConfig != "" {
		b.set("instance_config", p.Server.InstanceConfig)
	} else {
		b.set("instance_config", types.NotAvailable)
	}

	awr := p.AWR
	b.set("avg_cpu", optFloat(awr.AvgCPUPercent))
	b.set("peak_cpu", optFloat(awr.PeakCPUPercent))
	b.set("avg_cpu_per_s", optFloat(awr.AvgCPUPerSec))
	b.set("peak_cpu_per_s", optFloat(awr.PeakCPUPerSec))
	b.set("avg_iops", optFloat(awr.AvgIOPS))
	b.set("peak_iops", optFloat(awr.PeakIOPS))
	b.set("avg_memory", optFloat(awr.AvgMemoryGB))
	b.set("peak_memory", optFloat(awr.PeakMemoryGB))

	sga := p.SGA
	b.set("current_sga", optFloat(sga.CurrentGB))
	b.set("recommended_sga", optFloat(sga.RecommendedGB))
	if sga.CurrentGB != nil && sga.RecommendedGB != nil && *sga.CurrentGB > 0 {
		rate := (*sga.RecommendedGB - *sga.CurrentGB) / *sga.CurrentGB * 100
		b.set("sga_increase_rate", oneDecimal(rate))
	} else {
		b.set("sga_increase_rate", optFloat(sga.IncreaseRatePercent))
	}
	b.set("buffer_rate", strconv.FormatFloat(SGABufferRatePercent, 'f', -1, 64))

	// storage growth trajectory
	yearlyGrowthGB := b.dbSizeGB * b.growthRate
	if p.Growth.YearlyGrowthGB != nil {
		yearlyGrowthGB = *p.Growth.YearlyGrowthGB
	}
	if yearlyGrowthGB > 0 {
		b.set("yearly_growth", oneDecimal(yearlyGrowthGB))
	} else {
		b.set("yearly_growth", types.NotAvailable)
	}
	b.set("yearly_growth_rate", oneDecimal(b.growthRate*100))

	for year := 1; year <= tcoYears; year++ {
		key := fmt.Sprintf("db_size_%dy", year)
		if b.dbSizeGB > 0 {
			b.set(key, oneDecimal(projection.SizeAtYear(b.dbSizeGB, b.growthRate, year)))
		} else {
			b.set(key, types.NotAvailable)
		}
	}

	if b.isAurora {
		b.set("storage_type", "Aurora cluster storage")
		b.set("storage_price_per_gb", "$"+rates.AuroraStorageGB.StringFixed(2)+"/GB-month")
		b.set("storage_pricing_detail", "Aurora I/O-Optimized costs $0.13/GB-month with free I/O.")
		b.set("provisioned_iops", types.NotAvailable)
		b.set("provisioned_throughput", types.NotAvailable)
		b.set("storage_note", "Aurora replicates six copies across three AZs; Multi-AZ adds no storage cost.")
		b.set("maz_storage_note", "Aurora includes six-copy replication, so Multi-AZ adds no storage cost. Cross-AZ application traffic still applies.")
	} else {
		b.set("storage_type", "gp3 (general purpose SSD)")
		b.set("storage_price_per_gb", "$"+b.rates.StorageGB.StringFixed(3)+"/GB-month")
		b.set("storage_pricing_detail", fmt.Sprintf(
			"Extra IOPS: $%s/IOPS-month beyond %d. Extra throughput: $%s/MBps-month beyond %d MB/s.",
			b.rates.ProvisionedIOPS.StringFixed(2), rates.GP3BaseIOPS,
			b.rates.ThroughputMBps.StringFixed(2), rates.GP3BaseThroughputMBps))
		if b.provIOPS > 0 {
			b.set("provisioned_iops", strconv.Itoa(b.provIOPS))
		} else {
			b.set("provisioned_iops", "none")
		}
		if b.provTPMBps > 0 {
			b.set("provisioned_throughput", strconv.FormatFloat(b.provTPMBps, 'f', -1, 64))
		} else {
			b.set("provisioned_throughput", "none")
		}
		b.set("storage_note", "")
		b.set("maz_storage_note", "Storage doubles; standby replication traffic is free, cross-AZ application traffic still applies.")
	}
}

// fillStorage projects storage costs for years 0..3 and records the year-0
// monthly baselines the pricing section adds onto.
func (b *builder) fillStorage() {
	for year := 0; year <= tcoYears; year++ {
		size := projection.SizeAtYear(b.dbSizeGB, b.growthRate, year)

		var cost projection.StorageCost
		if b.isAurora {
			cost = projection.AuroraMonthly(size)
		} else {
			cost = projection.GP3Monthly(size, b.provIOPS, b.provTPMBps, b.rates)
		}

		suffix := fmt.Sprintf("_%dy", year)
		b.set("stor_cost"+suffix, b.money(cost.Storage))
		b.set("iops_cost", b.money(cost.IOPS))
		b.set("throughput_cost", b.money(cost.Throughput))
		b.set("stor_total"+suffix, b.money(cost.Total))
		b.set("stor_yearly"+suffix, b.money(cost.Total.Mul(decimal.NewFromInt(types.MonthsPerYear))))

		mazTotal := cost.Total
		if !b.isAurora {
			mazTotal = cost.Total.Mul(projection.MultiAZStorageFactor)
		}
		b.set("stor_maz_total"+suffix, b.money(mazTotal))

		if year == 0 {
			b.storMonthly = cost.Total
			b.storMAZMonthly = mazTotal
		}
		if year >= 1 {
			b.yearlyStor = append(b.yearlyStor, cost.Total.Mul(decimal.NewFromInt(types.MonthsPerYear)))
		}
	}
}

func (b *builder) fillInstanceSpecs(instances map[string]string, families []string, prefix string) {
	for _, family := range families {
		inst := instances[family]
		keyPrefix := fmt.Sprintf("%s_%s", prefix, family)

		if inst == "" {
			b.set(keyPrefix+"_instance", types.NotAvailable)
			b.set(keyPrefix+"_vcpu", types.NotAvailable)
			b.set(keyPrefix+"_memory", types.NotAvailable)
			b.set(keyPrefix+"_network", types.NotAvailable)
			continue
		}

		b.set(keyPrefix+"_instance", inst)
		if size, ok := catalog.Lookup(inst); ok {
			b.set(keyPrefix+"_vcpu", strconv.Itoa(size.VCPU))
			b.set(keyPrefix+"_memory", strconv.FormatFloat(size.MemoryGB, 'f', -1, 64))
			b.set(keyPrefix+"_network", strconv.FormatFloat(size.NetworkGbps, 'f', -1, 64))
		} else {
			b.set(keyPrefix+"_vcpu", types.NotAvailable)
			b.set(keyPrefix+"_memory", types.NotAvailable)
			b.set(keyPrefix+"_network", types.NotAvailable)
		}
	}
}

// monthlyFrom pulls an available monthly cost from a price index.
func monthlyFrom(idx map[factstore.IndexKey]*types.RateFact, inst string, deploy types.Deployment, opt types.PricingOption) (decimal.Decimal, bool) {
	fact, ok := idx[factstore.IndexKey{InstanceType: inst, Deployment: deploy, Option: opt}]
	if !ok {
		return decimal.Zero, false
	}
	monthly, ok := fact.Monthly()
	if !ok {
		return decimal.Zero, false
	}
	return monthly.Round(2), true
}

// fillPricing writes the combined instance + storage + network costs per
// family and purchase option, for both deployments. Options without data
// degrade to N/A individually; the rest of the row still renders.
func (b *builder) fillPricing(idx map[factstore.IndexKey]*types.RateFact, instances map[string]string, families []string, prefix string) {
	months := decimal.NewFromInt(types.MonthsPerYear)

	for _, family := range families {
		inst := instances[family]
		keyBase := fmt.Sprintf("%s_%s", prefix, family)

		for _, opt := range types.PricingOptions() {
			code := opt.ShortCode()

			monthly, ok := decimal.Zero, false
			if inst != "" {
				monthly, ok = monthlyFrom(idx, inst, types.SingleAZ, opt)
			}
			if ok {
				total := monthly.Add(b.storMonthly).Add(b.netMonthly)
				b.set(fmt.Sprintf("%s_%s_monthly", keyBase, code), b.money(monthly))
				b.set(fmt.Sprintf("%s_%s_total_monthly", keyBase, code), b.money(total))
				b.set(fmt.Sprintf("%s_%s_total_yearly", keyBase, code), b.money(total.Mul(months)))
			} else {
				b.set(fmt.Sprintf("%s_%s_monthly", keyBase, code), types.NotAvailable)
				b.set(fmt.Sprintf("%s_%s_total_monthly", keyBase, code), types.NotAvailable)
				b.set(fmt.Sprintf("%s_%s_total_yearly", keyBase, code), types.NotAvailable)
			}

			monthly, ok = decimal.Zero, false
			if inst != "" {
				monthly, ok = monthlyFrom(idx, inst, types.MultiAZ, opt)
			}
			if ok {
				total := monthly.Add(b.storMAZMonthly).Add(b.netMAZMonthly)
				b.set(fmt.Sprintf("%s_maz_%s_monthly", keyBase, code), b.money(monthly))
				b.set(fmt.Sprintf("%s_maz_%s_total_monthly", keyBase, code), b.money(total))
				b.set(fmt.Sprintf("%s_maz_%s_total_yearly", keyBase, code), b.money(total.Mul(months)))
			} else {
				b.set(fmt.Sprintf("%s_maz_%s_monthly", keyBase, code), types.NotAvailable)
				b.set(fmt.Sprintf("%s_maz_%s_total_monthly", keyBase, code), types.NotAvailable)
				b.set(fmt.Sprintf("%s_maz_%s_total_yearly", keyBase, code), types.NotAvailable)
			}
		}
	}
}

// fillComparison mirrors the single-AZ yearly totals into the summary keys.
func (b *builder) fillComparison(families []string) {
	for _, prefix := range []string{"spec", "sga"} {
		for _, family := range families {
			for _, opt := range types.PricingOptions() {
				code := opt.ShortCode()
				src := fmt.Sprintf("%s_%s_%s_total_yearly", prefix, family, code)
				dst := fmt.Sprintf("comp_%s_%s_%s", prefix, family, code)
				if v, ok := b.data[src]; ok {
					b.set(dst, v)
				} else {
					b.set(dst, types.NotAvailable)
				}
			}
		}
	}
}
