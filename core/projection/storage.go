// Package projection computes forward-looking storage and network costs
// from a current baseline and a compound yearly growth rate.
package projection

import (
	"math"

	"github.com/shopspring/decimal"

	"rds-cost/core/rates"
)

// MultiAZStorageFactor doubles RDS storage for the standby replica.
// Aurora never applies it; six-copy replication is built into its price.
var MultiAZStorageFactor = decimal.NewFromInt(2)

// SizeAtYear compounds baseGB forward: base * (1+growth)^year.
// Year 0 is the current size; year 1 already includes one year of growth.
func SizeAtYear(baseGB, growthRate float64, year int) float64 {
	if baseGB <= 0 {
		return 0
	}
	return baseGB * math.Pow(1+growthRate, float64(year))
}

// GrowthFactor is (1+growth)^year as a decimal multiplier.
func GrowthFactor(growthRate float64, year int) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(1+growthRate, float64(year)))
}

// StorageCost is a monthly storage cost breakdown in USD.
type StorageCost struct {
	Storage    decimal.Decimal
	IOPS       decimal.Decimal
	Throughput decimal.Decimal
	Total      decimal.Decimal
}

// GP3Monthly prices a gp3 volume of sizeGB for one month. Only IOPS and
// throughput provisioned beyond the gp3 baseline are billed.
func GP3Monthly(sizeGB float64, provisionedIOPS int, provisionedThroughputMBps float64, r rates.Rates) StorageCost {
	storage := decimal.NewFromFloat(sizeGB).Mul(r.StorageGB).Round(2)

	extraIOPS := 0
	if provisionedIOPS > rates.GP3BaseIOPS {
		extraIOPS = provisionedIOPS - rates.GP3BaseIOPS
	}
	iops := decimal.NewFromInt(int64(extraIOPS)).Mul(r.ProvisionedIOPS).Round(2)

	extraTP := 0.0
	if provisionedThroughputMBps > rates.GP3BaseThroughputMBps {
		extraTP = provisionedThroughputMBps - rates.GP3BaseThroughputMBps
	}
	throughput := decimal.NewFromFloat(extraTP).Mul(r.ThroughputMBps).Round(2)

	return StorageCost{
		Storage:    storage,
		IOPS:       iops,
		Throughput: throughput,
		Total:      storage.Add(iops).Add(throughput),
	}
}

// AuroraMonthly prices Aurora cluster storage for one month. Aurora has no
// IOPS or throughput provisioning; those components are always zero.
func AuroraMonthly(sizeGB float64) StorageCost {
	storage := decimal.NewFromFloat(sizeGB).Mul(rates.AuroraStorageGB).Round(2)
	return StorageCost{
		Storage:    storage,
		IOPS:       decimal.Zero,
		Throughput: decimal.Zero,
		Total:      storage,
	}
}
