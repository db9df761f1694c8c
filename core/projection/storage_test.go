package projection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/core/rates"
)

func defaultRates(t *testing.T) rates.Rates {
	t.Helper()
	r, ok := rates.Lookup(rates.DefaultRegion)
	require.True(t, ok)
	return r
}

func TestSizeAtYear(t *testing.T) {
	assert.InDelta(t, 500.0, SizeAtYear(500, 0.15, 0), 1e-9)
	// year 1 already compounds once
	assert.InDelta(t, 575.0, SizeAtYear(500, 0.15, 1), 1e-9)
	assert.InDelta(t, 661.25, SizeAtYear(500, 0.15, 2), 1e-6)
	assert.Equal(t, 0.0, SizeAtYear(0, 0.15, 3))
}

func TestSizeAtYearMonotonic(t *testing.T) {
	prev := SizeAtYear(500, 0.15, 0)
	for year := 1; year <= 3; year++ {
		cur := SizeAtYear(500, 0.15, year)
		assert.Greater(t, cur, prev, "year %d", year)
		prev = cur
	}
}

func TestGP3MonthlyProjectedYears(t *testing.T) {
	// 500 GB at $0.08/GB growing 15%/yr: $40.00, $46.00, $52.90
	r := defaultRates(t)

	want := []string{"40.00", "46.00", "52.90"}
	for year, w := range want {
		cost := GP3Monthly(SizeAtYear(500, 0.15, year), 0, 0, r)
		assert.Equal(t, w, cost.Total.StringFixed(2), "year %d", year)
	}
}

func TestGP3BaselineNotBilled(t *testing.T) {
	r := defaultRates(t)

	cost := GP3Monthly(100, rates.GP3BaseIOPS, rates.GP3BaseThroughputMBps, r)
	assert.True(t, cost.IOPS.IsZero())
	assert.True(t, cost.Throughput.IsZero())
	assert.Equal(t, "8.00", cost.Total.StringFixed(2))
}

func TestGP3ExcessProvisioningBilled(t *testing.T) {
	r := defaultRates(t)

	// 2000 IOPS over baseline at $0.02, 75 MB/s over baseline at $0.04
	cost := GP3Monthly(100, 5000, 200, r)
	assert.Equal(t, "40.00", cost.IOPS.StringFixed(2))
	assert.Equal(t, "3.00", cost.Throughput.StringFixed(2))
	assert.Equal(t, "51.00", cost.Total.StringFixed(2))
}

func TestAuroraMonthly(t *testing.T) {
	cost := AuroraMonthly(500)
	assert.Equal(t, "50.00", cost.Total.StringFixed(2))
	assert.True(t, cost.IOPS.IsZero())
	assert.True(t, cost.Throughput.IsZero())
}

func TestGrowthFactorYearOneIsExact(t *testing.T) {
	f := GrowthFactor(0.15, 1)
	assert.True(t, f.Sub(decimal.NewFromFloat(1.15)).Abs().LessThan(decimal.NewFromFloat(1e-9)))
}

func TestMultiAZStorageFactor(t *testing.T) {
	r := defaultRates(t)
	cost := GP3Monthly(500, 0, 0, r)
	assert.Equal(t, "80.00", cost.Total.Mul(MultiAZStorageFactor).StringFixed(2))
}
