package projection

import (
	"github.com/shopspring/decimal"

	"rds-cost/core/rates"
)

// DaysPerMonth converts daily traffic volumes to monthly ones.
const DaysPerMonth = 30

// Traffic is the daily network baseline taken from AWR counters, in GB/day.
type Traffic struct {
	SentDailyGB   float64
	RecvDailyGB   float64
	RedoDailyGB   float64
	DBLinkDailyGB float64
}

// TotalDailyGB sums every traffic component.
func (t Traffic) TotalDailyGB() float64 {
	return t.SentDailyGB + t.RecvDailyGB + t.RedoDailyGB + t.DBLinkDailyGB
}

// TotalMonthlyGB is the monthly total volume.
func (t Traffic) TotalMonthlyGB() float64 {
	return t.TotalDailyGB() * DaysPerMonth
}

// ClientMonthlyGB is the monthly client (SQL*Net send+receive) volume.
func (t Traffic) ClientMonthlyGB() float64 {
	return (t.SentDailyGB + t.RecvDailyGB) * DaysPerMonth
}

// RedoMonthlyGB is the monthly redo volume replicated to read replicas.
func (t Traffic) RedoMonthlyGB() float64 {
	return t.RedoDailyGB * DaysPerMonth
}

// IsZero reports whether no traffic was observed at all.
func (t Traffic) IsZero() bool {
	return t.TotalDailyGB() == 0
}

// ScenarioCosts are the monthly transfer costs per placement scenario.
// Same-AZ placement is free and has no field.
type ScenarioCosts struct {
	// CrossAZ: client traffic crosses an AZ boundary in both directions.
	CrossAZ decimal.Decimal

	// MultiAZCrossAZ: same as CrossAZ; the standby replication stream
	// itself is free.
	MultiAZCrossAZ decimal.Decimal

	// ReadReplicaCrossAZ adds the redo stream at the cross-AZ rate.
	ReadReplicaCrossAZ decimal.Decimal

	// ReadReplicaCrossRegion adds the redo stream at the cross-region rate.
	ReadReplicaCrossRegion decimal.Decimal
}

// MonthlyScenarios prices the placement scenarios for one month of traffic.
func MonthlyScenarios(t Traffic, r rates.Rates) ScenarioCosts {
	client := decimal.NewFromFloat(t.ClientMonthlyGB())
	redo := decimal.NewFromFloat(t.RedoMonthlyGB())

	// bidirectional: request and response legs both cross the AZ boundary
	crossAZ := client.Mul(r.CrossAZGB).Mul(decimal.NewFromInt(2)).Round(2)

	return ScenarioCosts{
		CrossAZ:                crossAZ,
		MultiAZCrossAZ:         crossAZ,
		ReadReplicaCrossAZ:     crossAZ.Add(redo.Mul(r.CrossAZGB).Round(2)),
		ReadReplicaCrossRegion: crossAZ.Add(redo.Mul(r.CrossRegionGB).Round(2)),
	}
}
