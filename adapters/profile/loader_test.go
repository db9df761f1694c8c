package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/internal/errors"
)

const sampleProfile = `
server {
  db_name            = "ORCL"
  engine_version     = "19.3.0.0.0"
  cpu_cores          = 16
  physical_memory_gb = 128
  db_size_gb         = 500
  instance_config    = "2-node RAC"
}

awr {
  avg_cpu_percent  = 35.5
  peak_cpu_percent = 82.0
  avg_iops         = 4200
  peak_iops        = 11000

  sqlnet_sent_bytes_per_day = 2147483648
  sqlnet_recv_bytes_per_day = 3221225472
  redo_bytes_per_day        = 1073741824
}

sga {
  current_gb     = 48
  recommended_gb = 96
}

storage_growth {
  yearly_growth_rate_percent = 12.5
}

migration {
  target_engine        = "oracle-ee"
  recommended_instance = "db.r6i.2xlarge"
  on_prem_annual_cost  = 85000
  provisioned_iops     = 6000
}
`

func TestParseFullProfile(t *testing.T) {
	p, err := Parse([]byte(sampleProfile), "profile.hcl")
	require.NoError(t, err)

	assert.Equal(t, "ORCL", p.Server.DBName)
	assert.Equal(t, "19.3.0.0.0", p.Server.EngineVersion)
	require.NotNil(t, p.Server.CPUCores)
	assert.Equal(t, 16, *p.Server.CPUCores)
	require.NotNil(t, p.Server.DBSizeGB)
	assert.Equal(t, 500.0, *p.Server.DBSizeGB)

	require.NotNil(t, p.AWR.AvgCPUPercent)
	assert.Equal(t, 35.5, *p.AWR.AvgCPUPercent)
	assert.True(t, p.AWR.HasNetworkVolume())

	require.NotNil(t, p.SGA.RecommendedGB)
	assert.Equal(t, 96.0, *p.SGA.RecommendedGB)
	assert.Nil(t, p.SGA.IncreaseRatePercent)

	require.NotNil(t, p.Growth.YearlyGrowthRatePercent)
	assert.Equal(t, 12.5, *p.Growth.YearlyGrowthRatePercent)

	assert.Equal(t, "oracle-ee", p.TargetEngine)
	assert.Equal(t, "db.r6i.2xlarge", p.RecommendedInstance)
	require.NotNil(t, p.OnPremAnnualCost)
	assert.Equal(t, 85000.0, *p.OnPremAnnualCost)
	assert.Equal(t, 6000, p.ProvisionedIOPS)
	assert.Zero(t, p.ProvisionedThroughputMBps)
}

func TestParseEmptyProfile(t *testing.T) {
	p, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Empty(t, p.Server.DBName)
	assert.Nil(t, p.Server.DBSizeGB)
	assert.False(t, p.AWR.HasNetworkVolume())
}

func TestParseRejectsBadSyntax(t *testing.T) {
	_, err := Parse([]byte(`server {`), "bad.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestParseRejectsUnknownBlock(t *testing.T) {
	_, err := Parse([]byte("nonsense {\n}\n"), "bad.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ORCL", p.Server.DBName)

	_, err = Load(filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}
