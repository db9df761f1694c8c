// Package rates carries the per-region storage and network rate tables.
// Rates are list prices snapshot per region; unknown regions fall back to
// the default region with a non-fatal warning so an estimate still comes out.
package rates

import (
	"sort"

	"github.com/shopspring/decimal"

	"rds-cost/internal/errors"
)

// Rates are the per-region unit prices the projectors use.
type Rates struct {
	// StorageGB is the gp3 price per GB-month.
	StorageGB decimal.Decimal

	// ProvisionedIOPS is the price per IOPS-month beyond the gp3 baseline.
	ProvisionedIOPS decimal.Decimal

	// ThroughputMBps is the price per MB/s-month beyond the gp3 baseline.
	ThroughputMBps decimal.Decimal

	// CrossAZGB is the inter-AZ transfer price per GB (each direction).
	CrossAZGB decimal.Decimal

	// CrossRegionGB is the inter-region transfer price per GB.
	CrossRegionGB decimal.Decimal
}

// DefaultRegion is the fallback when a region is missing from the table.
const DefaultRegion = "ap-northeast-2"

// gp3 volumes include these baselines at no charge.
const (
	GP3BaseIOPS           = 3000
	GP3BaseThroughputMBps = 125
)

// Aurora cluster storage rates (Aurora Standard).
var (
	AuroraStorageGB    = decimal.NewFromFloat(0.10)
	AuroraIOPerMillion = decimal.NewFromFloat(0.20)
	AuroraBackupGB     = decimal.NewFromFloat(0.021)
)

func regionRates(storage, iops, throughput, crossAZ, crossRegion float64) Rates {
	return Rates{
		StorageGB:       decimal.NewFromFloat(storage),
		ProvisionedIOPS: decimal.NewFromFloat(iops),
		ThroughputMBps:  decimal.NewFromFloat(throughput),
		CrossAZGB:       decimal.NewFromFloat(crossAZ),
		CrossRegionGB:   decimal.NewFromFloat(crossRegion),
	}
}

var table = map[string]Rates{
	"ap-northeast-2": regionRates(0.08, 0.02, 0.04, 0.01, 0.02),
	"us-east-1":      regionRates(0.08, 0.02, 0.04, 0.01, 0.02),
	"us-west-2":      regionRates(0.08, 0.02, 0.04, 0.01, 0.02),
	"eu-west-1":      regionRates(0.088, 0.022, 0.044, 0.01, 0.02),
	"ap-northeast-1": regionRates(0.096, 0.024, 0.048, 0.01, 0.02),
	"ap-southeast-1": regionRates(0.088, 0.022, 0.044, 0.01, 0.02),
}

// Lookup returns the rates for region and whether the region is in the table.
func Lookup(region string) (Rates, bool) {
	r, ok := table[region]
	return r, ok
}

// Resolve returns the rates to use for region. Unknown regions resolve to
// the default region's rates plus a REGION_UNSUPPORTED error the caller can
// log and continue past.
func Resolve(region string) (Rates, error) {
	if r, ok := table[region]; ok {
		return r, nil
	}
	return table[DefaultRegion], errors.RegionUnsupported(region, DefaultRegion)
}

// Regions lists the regions present in the rate table, sorted.
func Regions() []string {
	regions := make([]string, 0, len(table))
	for r := range table {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}
