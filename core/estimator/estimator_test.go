package estimator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/core/factstore"
	"rds-cost/core/types"
)

func floatPtr(v float64) *float64 { return &v }

func testProfile() *types.AssessmentProfile {
	return &types.AssessmentProfile{
		Server: types.ServerInfo{
			DBName:        "ORCL",
			EngineVersion: "19.3.0.0.0",
			DBSizeGB:      floatPtr(500),
		},
		Growth: types.StorageGrowth{
			YearlyGrowthRatePercent: floatPtr(0),
		},
	}
}

func hourlyFact(inst string, deploy types.Deployment, strategy types.MigrationStrategy, engine string, hourly float64) *types.RateFact {
	return &types.RateFact{
		Spec: types.InstanceSpec{
			InstanceType: inst,
			Region:       "ap-northeast-2",
			Engine:       engine,
			Strategy:     strategy,
			Deployment:   deploy,
		},
		Option:     types.OnDemand,
		HourlyRate: decimal.NewFromFloat(hourly),
		Available:  true,
	}
}

func reservedFact(inst string, opt types.PricingOption, strategy types.MigrationStrategy, upfront, monthly float64) *types.RateFact {
	return &types.RateFact{
		Spec: types.InstanceSpec{
			InstanceType: inst,
			Region:       "ap-northeast-2",
			Engine:       "oracle-ee",
			Strategy:     strategy,
			Deployment:   types.SingleAZ,
		},
		Option:     opt,
		UpfrontFee: decimal.NewFromFloat(upfront),
		MonthlyFee: decimal.NewFromFloat(monthly),
		Available:  true,
	}
}

func newTestEstimator(t *testing.T, store *factstore.Store) *Estimator {
	t.Helper()
	return New(Inputs{
		Region:              "ap-northeast-2",
		Engine:              "oracle-ee",
		RecommendedInstance: "db.r6i.xlarge",
		SGAInstance:         "db.r6i.2xlarge",
		OnPremAnnualCost:    floatPtr(50000),
	}, store)
}

func TestNewMergesProfileDefaults(t *testing.T) {
	store := factstore.New()
	store.SetProfile(&types.AssessmentProfile{
		RecommendedInstance: "db.m6i.large",
		TargetEngine:        "oracle-se2",
		OnPremAnnualCost:    floatPtr(12000),
	})

	e := New(Inputs{Region: "ap-northeast-2"}, store)
	assert.Equal(t, "oracle-se2", e.Engine())
	assert.Equal(t, "db.m6i.large", e.specBase)
	require.NotNil(t, e.onPrem)
	assert.Equal(t, 12000.0, *e.onPrem)
}

func TestNewFlagsWinOverProfile(t *testing.T) {
	store := factstore.New()
	store.SetProfile(&types.AssessmentProfile{RecommendedInstance: "db.m6i.large"})

	e := New(Inputs{Region: "ap-northeast-2", RecommendedInstance: "db.r6i.xlarge"}, store)
	assert.Equal(t, "db.r6i.xlarge", e.specBase)
	assert.Equal(t, DefaultEngine, e.Engine())
}

func TestValidate(t *testing.T) {
	store := factstore.New()
	e := New(Inputs{Region: "ap-northeast-2"}, store)
	err := e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no instance")

	store.SetProfile(&types.AssessmentProfile{
		Server: types.ServerInfo{DBSizeGB: floatPtr(-5)},
	})
	e = New(Inputs{Region: "ap-northeast-2", RecommendedInstance: "db.r6i.xlarge"}, store)
	assert.Error(t, e.Validate())

	store = factstore.New()
	e = New(Inputs{
		Region:              "ap-northeast-2",
		RecommendedInstance: "db.r6i.xlarge",
		OnPremAnnualCost:    floatPtr(-1),
	}, store)
	assert.Error(t, e.Validate())
}

func TestFamiliesSkipGravitonForLicensedEngines(t *testing.T) {
	store := factstore.New()
	e := New(Inputs{Region: "ap-northeast-2", Engine: "oracle-ee", RecommendedInstance: "db.r6i.xlarge"}, store)
	a, b := e.Families()
	assert.Equal(t, "r6i", a)
	assert.Equal(t, "r7i", b)

	e = New(Inputs{Region: "ap-northeast-2", Engine: "aurora-postgresql", RecommendedInstance: "db.r6i.xlarge"}, store)
	a, b = e.Families()
	assert.Equal(t, "r6i", a)
	assert.Equal(t, "r6g", b)
}

func TestPlanSpecsIncludesRefactoringForLicensedEngines(t *testing.T) {
	store := factstore.New()
	e := newTestEstimator(t, store)

	specs := e.PlanSpecs()
	require.NotEmpty(t, specs)

	var replat, refac int
	for _, s := range specs {
		switch s.Strategy {
		case types.StrategyReplatform:
			replat++
			assert.Equal(t, "oracle-ee", s.Engine)
		case types.StrategyRefactoring:
			refac++
			assert.Equal(t, types.RefactoringEngine, s.Engine)
		}
	}
	// 4 instances (xlarge + 2xlarge in r6i and r7i) x 2 deployments per strategy
	assert.Equal(t, 8, replat)
	assert.Equal(t, 8, refac)
}

func TestPlanSpecsSkipsRefactoringForAurora(t *testing.T) {
	store := factstore.New()
	e := New(Inputs{Region: "ap-northeast-2", Engine: "aurora-postgresql", RecommendedInstance: "db.r6i.xlarge"}, store)

	for _, s := range e.PlanSpecs() {
		assert.Equal(t, types.StrategyReplatform, s.Strategy)
	}
}

func TestBuildReportCoreFigures(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())
	store.Put(
		hourlyFact("db.r6i.xlarge", types.SingleAZ, types.StrategyReplatform, "oracle-ee", 1.0),
		hourlyFact("db.r6i.xlarge", types.MultiAZ, types.StrategyReplatform, "oracle-ee", 2.0),
	)

	e := newTestEstimator(t, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	// storage: 500 GB x $0.08, zero growth, Multi-AZ doubles
	assert.Equal(t, "40.00", report["stor_total_0y"])
	assert.Equal(t, "80.00", report["stor_maz_total_0y"])
	assert.Equal(t, "40.00", report["stor_total_3y"])
	assert.Equal(t, "480.00", report["stor_yearly_0y"])

	// on-demand: $1/hr x 730 + storage, no network
	assert.Equal(t, "730.00", report["spec_r6i_od_monthly"])
	assert.Equal(t, "770.00", report["spec_r6i_od_total_monthly"])
	assert.Equal(t, "9,240.00", report["spec_r6i_od_total_yearly"])

	// Multi-AZ: $2/hr x 730 + doubled storage
	assert.Equal(t, "1,460.00", report["spec_r6i_maz_od_monthly"])
	assert.Equal(t, "1,540.00", report["spec_r6i_maz_od_total_monthly"])

	// comparison mirrors the single-AZ yearly totals
	assert.Equal(t, report["spec_r6i_od_total_yearly"], report["comp_spec_r6i_od"])

	// unpriced options degrade per field
	assert.Equal(t, types.NotAvailable, report["spec_r6i_ri3au_monthly"])
	assert.Equal(t, types.NotAvailable, report["spec_r7i_od_monthly"])

	assert.Equal(t, "ORCL", report["db_name"])
	assert.Equal(t, "19.3.0.0.0", report["engine_version"])
	assert.Equal(t, "r6i", report["family_a"])
	assert.Equal(t, "r7i", report["family_b"])
}

func TestBuildReportNetworkDefaults(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())

	e := newTestEstimator(t, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	for _, key := range NetworkKeys() {
		require.Contains(t, report, key, "missing network key %s", key)
	}
	assert.Equal(t, types.NotAvailable, report["net_scenario"])
	assert.Equal(t, "0.00", report["net_cost_cross_az"])
	assert.Equal(t, "0.00", report["net_total_monthly_3y"])
}

func TestBuildReportNetworkFill(t *testing.T) {
	const gb = 1024 * 1024 * 1024

	p := testProfile()
	p.AWR.SQLNetSentBytesPerDay = floatPtr(2 * gb)
	p.AWR.SQLNetRecvBytesPerDay = floatPtr(3 * gb)
	p.AWR.RedoBytesPerDay = floatPtr(1 * gb)

	store := factstore.New()
	store.SetProfile(p)

	e := newTestEstimator(t, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	for _, key := range NetworkKeys() {
		require.Contains(t, report, key, "missing network key %s", key)
	}
	assert.Equal(t, "Cross-AZ", report["net_scenario"])
	assert.Equal(t, "2.00", report["sqlnet_sent_daily"])
	assert.Equal(t, "6.00", report["net_total_daily"])
	assert.Equal(t, "180.00", report["net_total_monthly"])

	// client 150 GB/mo x $0.01 x 2 directions
	assert.Equal(t, "3.00", report["net_cost_cross_az"])
	assert.Equal(t, "36.00", report["net_cost_cross_az_yearly"])
	assert.Equal(t, "3.30", report["net_cost_rr_cross_az"])
	assert.Equal(t, "3.60", report["net_cost_rr_cross_region"])

	// zero growth keeps the projection flat
	assert.Equal(t, "3.00", report["net_cost_cross_az_3y"])
}

func TestBuildReportTCO(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())
	store.Put(
		hourlyFact("db.r6i.xlarge", types.SingleAZ, types.StrategyReplatform, "oracle-ee", 1.0),
		reservedFact("db.r6i.2xlarge", types.RI3YrAllUpfront, types.StrategyReplatform, 9000, 0),
	)

	e := newTestEstimator(t, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	// od: 730 x 12 x 3 = 26,280 + 3 years of storage (1,440)
	assert.Equal(t, "27,720.00", report["tco_spec_r6i_od"])

	// 3yr all-upfront bought once: 9,000 + 1,440
	assert.Equal(t, "10,440.00", report["tco_sga_r6i_ri3"])

	// detail amortizes the upfront evenly: 3,000 + 480 per year
	assert.Equal(t, "3,000.00", report["tco_detail_r6i_inst_1y"])
	assert.Equal(t, "3,480.00", report["tco_detail_r6i_2y"])
	assert.Equal(t, "10,440.00", report["tco_detail_r6i_total"])
	assert.Equal(t, "480.00", report["tco_detail_stor_3y"])

	// no facts for the r7i candidates
	assert.Equal(t, types.NotAvailable, report["tco_spec_r7i_od"])
	assert.Equal(t, types.NotAvailable, report["tco_detail_r7i_total"])
}

func TestBuildReportRefactoringSavings(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())
	store.Put(
		// replatform baseline for the SGA candidate: 876 + 40 = 916/mo
		hourlyFact("db.r6i.2xlarge", types.SingleAZ, types.StrategyReplatform, "oracle-ee", 1.2),
		// refactoring path: 365 + 50 Aurora storage = 415/mo
		hourlyFact("db.r6i.2xlarge", types.SingleAZ, types.StrategyRefactoring, types.RefactoringEngine, 0.5),
	)

	e := newTestEstimator(t, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	assert.Equal(t, "true", report["refac_section_visible"])
	assert.Equal(t, "365.00", report["refac_r6i_od_monthly"])
	assert.Equal(t, "4,980.00", report["refac_r6i_od_total_yearly"])

	// replat 10,992 - refac 4,980 = 6,012 saved, 54.7%
	assert.Equal(t, "10,992.00", report["sga_r6i_od_total_yearly"])
	assert.Equal(t, "6,012.00", report["refac_r6i_od_savings"])
	assert.Equal(t, "54.7", report["refac_r6i_od_savings_rate"])

	// options without facts stay N/A on every field
	assert.Equal(t, types.NotAvailable, report["refac_r6i_ri3au_monthly"])
	assert.Equal(t, types.NotAvailable, report["refac_r6i_ri3au_savings_rate"])
}

func TestBuildReportRefactoringGatedForAurora(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())

	e := New(Inputs{
		Region:              "ap-northeast-2",
		Engine:              "aurora-postgresql",
		RecommendedInstance: "db.r6i.xlarge",
	}, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	assert.Equal(t, "false", report["refac_section_visible"])
	assert.Equal(t, types.NotAvailable, report["refac_r6i_od_monthly"])
	assert.Equal(t, types.NotAvailable, report["refac_r6i_od_savings"])
}

func TestBuildReportAuroraStorage(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())

	e := New(Inputs{
		Region:              "ap-northeast-2",
		Engine:              "aurora-postgresql",
		RecommendedInstance: "db.r6i.xlarge",
	}, store)
	report, err := e.BuildReport()
	require.NoError(t, err)

	// 500 GB x $0.10, and Multi-AZ does not double Aurora storage
	assert.Equal(t, "50.00", report["stor_total_0y"])
	assert.Equal(t, "50.00", report["stor_maz_total_0y"])
}

func TestCostRowsSavingsAgainstOnPrem(t *testing.T) {
	store := factstore.New()
	store.SetProfile(testProfile())
	store.Put(hourlyFact("db.r6i.xlarge", types.SingleAZ, types.StrategyReplatform, "oracle-ee", 1.0))

	e := newTestEstimator(t, store)
	rows := e.CostRows()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "db.r6i.xlarge", row.InstanceType)
	assert.Equal(t, types.StrategyReplatform, row.Strategy)
	require.NotNil(t, row.OnDemandAnnual)
	assert.Equal(t, "8760", row.OnDemandAnnual.String())
	assert.Nil(t, row.RI3YrAnnual)

	// (50,000 - 8,760) / 50,000 = 82.5%
	require.NotNil(t, row.SavingsRatePercent)
	assert.InDelta(t, 82.5, *row.SavingsRatePercent, 1e-9)
}

func TestCostRowsAveragesMultiYearPlans(t *testing.T) {
	store := factstore.New()
	store.Put(reservedFact("db.r6i.xlarge", types.RI3YrAllUpfront, types.StrategyReplatform, 9000, 0))

	e := New(Inputs{Region: "ap-northeast-2", RecommendedInstance: "db.r6i.xlarge"}, store)
	rows := e.CostRows()
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].RI3YrAnnual)
	assert.Equal(t, "3000", rows[0].RI3YrAnnual.String())
	assert.Nil(t, rows[0].SavingsRatePercent)
}
