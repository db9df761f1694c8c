package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/internal/errors"
)

func TestLookupKnownRegion(t *testing.T) {
	r, ok := Lookup("ap-northeast-1")
	require.True(t, ok)
	assert.True(t, r.StorageGB.Equal(decimal.NewFromFloat(0.096)))
	assert.True(t, r.CrossAZGB.Equal(decimal.NewFromFloat(0.01)))
}

func TestResolveFallsBackToDefault(t *testing.T) {
	got, err := Resolve("me-south-1")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeRegionUnsupported))

	want, ok := Lookup(DefaultRegion)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// same unknown region resolves identically every time
	again, err2 := Resolve("me-south-1")
	require.Error(t, err2)
	assert.Equal(t, got, again)
}

func TestResolveKnownRegionHasNoWarning(t *testing.T) {
	r, err := Resolve("eu-west-1")
	require.NoError(t, err)
	assert.True(t, r.StorageGB.Equal(decimal.NewFromFloat(0.088)))
}

func TestRegionsSorted(t *testing.T) {
	regions := Regions()
	assert.Contains(t, regions, DefaultRegion)
	for i := 1; i < len(regions); i++ {
		assert.Less(t, regions[i-1], regions[i])
	}
}
