package types

// AssessmentProfile carries the facts extracted from an on-prem database
// assessment: server inventory, AWR workload metrics, SGA advisor output
// and storage growth history. Pointer fields are nil when the assessment
// did not contain the figure; the report renders those as N/A.
type AssessmentProfile struct {
	Server ServerInfo    `json:"server"`
	AWR    AWRMetrics    `json:"awr"`
	SGA    SGAAnalysis   `json:"sga"`
	Growth StorageGrowth `json:"storage_growth"`

	// CurrentInstance is the instance type currently mapped to the server.
	CurrentInstance string `json:"current_instance,omitempty"`

	// RecommendedInstance is the size-based recommendation.
	RecommendedInstance string `json:"recommended_instance,omitempty"`

	// SGAInstance is the SGA-based recommendation.
	SGAInstance string `json:"sga_instance,omitempty"`

	// TargetEngine overrides the engine given on the command line.
	TargetEngine string `json:"target_engine,omitempty"`

	// OnPremAnnualCost is the yearly on-prem maintenance cost in USD.
	OnPremAnnualCost *float64 `json:"on_prem_annual_cost,omitempty"`

	// ProvisionedIOPS beyond the gp3 baseline, if any.
	ProvisionedIOPS int `json:"provisioned_iops,omitempty"`

	// ProvisionedThroughputMBps beyond the gp3 baseline, if any.
	ProvisionedThroughputMBps float64 `json:"provisioned_throughput_mbps,omitempty"`
}

// ServerInfo describes the source database server.
type ServerInfo struct {
	DBName           string   `json:"db_name,omitempty"`
	EngineVersion    string   `json:"engine_version,omitempty"`
	CPUCores         *int     `json:"cpu_cores,omitempty"`
	PhysicalMemoryGB *float64 `json:"physical_memory_gb,omitempty"`
	DBSizeGB         *float64 `json:"db_size_gb,omitempty"`
	InstanceConfig   string   `json:"instance_config,omitempty"`
}

// AWRMetrics are workload figures taken from an AWR report.
type AWRMetrics struct {
	AvgCPUPercent  *float64 `json:"avg_cpu_percent,omitempty"`
	PeakCPUPercent *float64 `json:"peak_cpu_percent,omitempty"`
	AvgCPUPerSec   *float64 `json:"avg_cpu_per_sec,omitempty"`
	PeakCPUPerSec  *float64 `json:"peak_cpu_per_sec,omitempty"`
	AvgIOPS        *float64 `json:"avg_iops,omitempty"`
	PeakIOPS       *float64 `json:"peak_iops,omitempty"`
	AvgMemoryGB    *float64 `json:"avg_memory_gb,omitempty"`
	PeakMemoryGB   *float64 `json:"peak_memory_gb,omitempty"`

	// Network volume counters, bytes per day.
	SQLNetSentBytesPerDay *float64 `json:"sqlnet_sent_bytes_per_day,omitempty"`
	SQLNetRecvBytesPerDay *float64 `json:"sqlnet_recv_bytes_per_day,omitempty"`
	RedoBytesPerDay       *float64 `json:"redo_bytes_per_day,omitempty"`
}

// HasNetworkVolume reports whether any network counter was captured.
func (m AWRMetrics) HasNetworkVolume() bool {
	return m.SQLNetSentBytesPerDay != nil || m.SQLNetRecvBytesPerDay != nil || m.RedoBytesPerDay != nil
}

// SGAAnalysis is the SGA advisor output.
type SGAAnalysis struct {
	CurrentGB           *float64 `json:"current_gb,omitempty"`
	RecommendedGB       *float64 `json:"recommended_gb,omitempty"`
	IncreaseRatePercent *float64 `json:"increase_rate_percent,omitempty"`
}

// StorageGrowth is the storage growth history.
type StorageGrowth struct {
	YearlyGrowthGB          *float64 `json:"yearly_growth_gb,omitempty"`
	YearlyGrowthRatePercent *float64 `json:"yearly_growth_rate_percent,omitempty"`
}
