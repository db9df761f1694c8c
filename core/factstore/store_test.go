package factstore

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/core/types"
)

func newFact(inst string, deploy types.Deployment, opt types.PricingOption, strategy types.MigrationStrategy, available bool) *types.RateFact {
	return &types.RateFact{
		Spec: types.InstanceSpec{
			InstanceType: inst,
			Region:       "ap-northeast-2",
			Engine:       "oracle-ee",
			Strategy:     strategy,
			Deployment:   deploy,
		},
		Option:     opt,
		MonthlyFee: decimal.NewFromInt(100),
		Available:  available,
	}
}

func TestPutAndFact(t *testing.T) {
	s := New()
	f := newFact("db.r6i.xlarge", types.SingleAZ, types.OnDemand, types.StrategyReplatform, true)
	s.Put(f)

	got, ok := s.Fact(Key{
		InstanceType: "db.r6i.xlarge",
		Deployment:   types.SingleAZ,
		Option:       types.OnDemand,
		Strategy:     types.StrategyReplatform,
	})
	require.True(t, ok)
	assert.Same(t, f, got)
}

func TestPutReplacesSameKey(t *testing.T) {
	s := New()
	s.Put(newFact("db.r6i.xlarge", types.SingleAZ, types.RI1YrNoUpfront, types.StrategyReplatform, false))

	updated := newFact("db.r6i.xlarge", types.SingleAZ, types.RI1YrNoUpfront, types.StrategyReplatform, true)
	s.Put(updated)

	got, ok := s.Fact(keyOf(updated))
	require.True(t, ok)
	assert.True(t, got.Available)
	assert.Empty(t, s.UnavailableReserved())
}

func TestIndexSplitsByStrategy(t *testing.T) {
	s := New()
	s.Put(
		newFact("db.r6i.xlarge", types.SingleAZ, types.OnDemand, types.StrategyReplatform, true),
		newFact("db.r6i.xlarge", types.SingleAZ, types.OnDemand, types.StrategyRefactoring, true),
		newFact("db.r6i.xlarge", types.MultiAZ, types.OnDemand, types.StrategyReplatform, true),
	)

	replat := s.Index(types.StrategyReplatform)
	assert.Len(t, replat, 2)

	refac := s.Index(types.StrategyRefactoring)
	assert.Len(t, refac, 1)

	_, ok := refac[IndexKey{InstanceType: "db.r6i.xlarge", Deployment: types.SingleAZ, Option: types.OnDemand}]
	assert.True(t, ok)
}

func TestUnavailableReservedSkipsOnDemand(t *testing.T) {
	s := New()
	s.Put(
		newFact("db.r6i.xlarge", types.SingleAZ, types.OnDemand, types.StrategyReplatform, false),
		newFact("db.r6i.xlarge", types.SingleAZ, types.RI3YrAllUpfront, types.StrategyReplatform, false),
		newFact("db.r6i.xlarge", types.SingleAZ, types.RI1YrNoUpfront, types.StrategyReplatform, true),
	)

	missing := s.UnavailableReserved()
	require.Len(t, missing, 1)
	assert.Equal(t, types.RI3YrAllUpfront, missing[0].Option)
}

func TestTrafficConvertsBytesToGB(t *testing.T) {
	s := New()
	sent := float64(2 * bytesPerGB)
	recv := float64(3 * bytesPerGB)
	redo := float64(1 * bytesPerGB)
	s.SetProfile(&types.AssessmentProfile{
		AWR: types.AWRMetrics{
			SQLNetSentBytesPerDay: &sent,
			SQLNetRecvBytesPerDay: &recv,
			RedoBytesPerDay:       &redo,
		},
	})

	tr := s.Traffic()
	assert.InDelta(t, 2.0, tr.SentDailyGB, 1e-9)
	assert.InDelta(t, 3.0, tr.RecvDailyGB, 1e-9)
	assert.InDelta(t, 1.0, tr.RedoDailyGB, 1e-9)
	assert.True(t, s.HasTraffic())
}

func TestEmptyProfile(t *testing.T) {
	s := New()
	assert.NotNil(t, s.Profile())
	assert.True(t, s.Traffic().IsZero())
	assert.False(t, s.HasTraffic())
}
