// Package profile loads assessment profiles from HCL files. A profile
// carries what an AWR report and a storage inventory say about the source
// database; every block and attribute is optional.
package profile

import (
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"rds-cost/core/types"
	"rds-cost/internal/errors"
)

type serverBlock struct {
	DBName           string   `hcl:"db_name,optional"`
	EngineVersion    string   `hcl:"engine_version,optional"`
	CPUCores         *int     `hcl:"cpu_cores,optional"`
	PhysicalMemoryGB *float64 `hcl:"physical_memory_gb,optional"`
	DBSizeGB         *float64 `hcl:"db_size_gb,optional"`
	InstanceConfig   string   `hcl:"instance_config,optional"`
}

type awrBlock struct {
	AvgCPUPercent  *float64 `hcl:"avg_cpu_percent,optional"`
	PeakCPUPercent *float64 `hcl:"peak_cpu_percent,optional"`
	AvgCPUPerSec   *float64 `hcl:"avg_cpu_per_sec,optional"`
	PeakCPUPerSec  *float64 `hcl:"peak_cpu_per_sec,optional"`
	AvgIOPS        *float64 `hcl:"avg_iops,optional"`
	PeakIOPS       *float64 `hcl:"peak_iops,optional"`
	AvgMemoryGB    *float64 `hcl:"avg_memory_gb,optional"`
	PeakMemoryGB   *float64 `hcl:"peak_memory_gb,optional"`

	SQLNetSentBytesPerDay *float64 `hcl:"sqlnet_sent_bytes_per_day,optional"`
	SQLNetRecvBytesPerDay *float64 `hcl:"sqlnet_recv_bytes_per_day,optional"`
	RedoBytesPerDay       *float64 `hcl:"redo_bytes_per_day,optional"`
}

type sgaBlock struct {
	CurrentGB           *float64 `hcl:"current_gb,optional"`
	RecommendedGB       *float64 `hcl:"recommended_gb,optional"`
	IncreaseRatePercent *float64 `hcl:"increase_rate_percent,optional"`
}

type growthBlock struct {
	YearlyGrowthGB          *float64 `hcl:"yearly_growth_gb,optional"`
	YearlyGrowthRatePercent *float64 `hcl:"yearly_growth_rate_percent,optional"`
}

type migrationBlock struct {
	TargetEngine              string   `hcl:"target_engine,optional"`
	CurrentInstance           string   `hcl:"current_instance,optional"`
	RecommendedInstance       string   `hcl:"recommended_instance,optional"`
	SGAInstance               string   `hcl:"sga_instance,optional"`
	OnPremAnnualCost          *float64 `hcl:"on_prem_annual_cost,optional"`
	ProvisionedIOPS           *int     `hcl:"provisioned_iops,optional"`
	ProvisionedThroughputMBps *float64 `hcl:"provisioned_throughput_mbps,optional"`
}

type profileFile struct {
	Server    *serverBlock    `hcl:"server,block"`
	AWR       *awrBlock       `hcl:"awr,block"`
	SGA       *sgaBlock       `hcl:"sga,block"`
	Growth    *growthBlock    `hcl:"storage_growth,block"`
	Migration *migrationBlock `hcl:"migration,block"`
}

// Load reads and parses an assessment profile from path.
func Load(path string) (*types.AssessmentProfile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "reading profile %s", path)
	}
	return Parse(src, path)
}

// Parse parses HCL profile source. The filename is used in diagnostics only.
func Parse(src []byte, filename string) (*types.AssessmentProfile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("parsing profile", diags)
	}

	var root profileFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.Parsing("decoding profile", diags)
	}

	return root.toProfile(), nil
}

func (f *profileFile) toProfile() *types.AssessmentProfile {
	p := &types.AssessmentProfile{}

	if f.Server != nil {
		p.Server = types.ServerInfo{
			DBName:           f.Server.DBName,
			EngineVersion:    f.Server.EngineVersion,
			CPUCores:         f.Server.CPUCores,
			PhysicalMemoryGB: f.Server.PhysicalMemoryGB,
			DBSizeGB:         f.Server.DBSizeGB,
			InstanceConfig:   f.Server.InstanceConfig,
		}
	}

	if f.AWR != nil {
		p.AWR = types.AWRMetrics{
			AvgCPUPercent:         f.AWR.AvgCPUPercent,
			PeakCPUPercent:        f.AWR.PeakCPUPercent,
			AvgCPUPerSec:          f.AWR.AvgCPUPerSec,
			PeakCPUPerSec:         f.AWR.PeakCPUPerSec,
			AvgIOPS:               f.AWR.AvgIOPS,
			PeakIOPS:              f.AWR.PeakIOPS,
			AvgMemoryGB:           f.AWR.AvgMemoryGB,
			PeakMemoryGB:          f.AWR.PeakMemoryGB,
			SQLNetSentBytesPerDay: f.AWR.SQLNetSentBytesPerDay,
			SQLNetRecvBytesPerDay: f.AWR.SQLNetRecvBytesPerDay,
			RedoBytesPerDay:       f.AWR.RedoBytesPerDay,
		}
	}

	if f.SGA != nil {
		p.SGA = types.SGAAnalysis{
			CurrentGB:           f.SGA.CurrentGB,
			RecommendedGB:       f.SGA.RecommendedGB,
			IncreaseRatePercent: f.SGA.IncreaseRatePercent,
		}
	}

	if f.Growth != nil {
		p.Growth = types.StorageGrowth{
			YearlyGrowthGB:          f.Growth.YearlyGrowthGB,
			YearlyGrowthRatePercent: f.Growth.YearlyGrowthRatePercent,
		}
	}

	if f.Migration != nil {
		p.TargetEngine = f.Migration.TargetEngine
		p.CurrentInstance = f.Migration.CurrentInstance
		p.RecommendedInstance = f.Migration.RecommendedInstance
		p.SGAInstance = f.Migration.SGAInstance
		p.OnPremAnnualCost = f.Migration.OnPremAnnualCost
		if f.Migration.ProvisionedIOPS != nil {
			p.ProvisionedIOPS = *f.Migration.ProvisionedIOPS
		}
		if f.Migration.ProvisionedThroughputMBps != nil {
			p.ProvisionedThroughputMBps = *f.Migration.ProvisionedThroughputMBps
		}
	}

	return p
}
