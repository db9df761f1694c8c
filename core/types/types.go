// Package types defines the core value types shared across the estimator.
package types

// HoursPerMonth is the billing convention used for every hourly-to-monthly
// conversion in this tool. AWS bills 730 hours per month (8760 hours / 12).
const HoursPerMonth = 730

// MonthsPerYear converts monthly figures to annual ones.
const MonthsPerYear = 12

// NotAvailable is the marker rendered for figures that cannot be computed.
const NotAvailable = "N/A"

// MigrationStrategy selects the pricing dimension being evaluated.
type MigrationStrategy string

const (
	// StrategyReplatform keeps the current engine on RDS.
	StrategyReplatform MigrationStrategy = "replatform"

	// StrategyRefactoring moves to Aurora PostgreSQL.
	StrategyRefactoring MigrationStrategy = "refactoring"
)

// Deployment is the RDS deployment option.
type Deployment string

const (
	SingleAZ Deployment = "Single-AZ"
	MultiAZ  Deployment = "Multi-AZ"
)

// Deployments lists both deployment options in report order.
func Deployments() []Deployment {
	return []Deployment{SingleAZ, MultiAZ}
}

// PricingOption identifies a purchase option for an instance.
type PricingOption string

const (
	OnDemand        PricingOption = "on_demand"
	RI1YrNoUpfront  PricingOption = "1yr_no_upfront"
	RI1YrAllUpfront PricingOption = "1yr_all_upfront"
	RI3YrNoUpfront  PricingOption = "3yr_no_upfront"
	RI3YrAllUpfront PricingOption = "3yr_all_upfront"
)

// PricingOptions lists every modeled purchase option in report order.
// Partial Upfront is a legacy AWS option and is intentionally absent.
func PricingOptions() []PricingOption {
	return []PricingOption{
		OnDemand,
		RI1YrNoUpfront,
		RI1YrAllUpfront,
		RI3YrNoUpfront,
		RI3YrAllUpfront,
	}
}

// ShortCode returns the compact key used in report map entries.
func (p PricingOption) ShortCode() string {
	switch p {
	case OnDemand:
		return "od"
	case RI1YrNoUpfront:
		return "ri1nu"
	case RI1YrAllUpfront:
		return "ri1au"
	case RI3YrNoUpfront:
		return "ri3nu"
	case RI3YrAllUpfront:
		return "ri3au"
	}
	return string(p)
}

// IsReserved reports whether the option is a reserved-instance term.
func (p PricingOption) IsReserved() bool {
	return p != OnDemand
}

// TermYears returns the commitment length in years (0 for on-demand).
func (p PricingOption) TermYears() int {
	switch p {
	case RI1YrNoUpfront, RI1YrAllUpfront:
		return 1
	case RI3YrNoUpfront, RI3YrAllUpfront:
		return 3
	}
	return 0
}

// AllUpfront reports whether the option pays the full term in advance.
func (p PricingOption) AllUpfront() bool {
	return p == RI1YrAllUpfront || p == RI3YrAllUpfront
}

// LicensedEngines are the commercial engines eligible for the
// replatform-vs-refactoring comparison.
var LicensedEngines = map[string]bool{
	"oracle-ee":  true,
	"oracle-se2": true,
}

// AuroraEngines use cluster storage instead of gp3 volumes.
var AuroraEngines = map[string]bool{
	"aurora-postgresql": true,
	"aurora-mysql":      true,
}

// RefactoringEngine is the target engine for the refactoring strategy.
const RefactoringEngine = "aurora-postgresql"

// IsLicensedEngine reports whether engine carries a commercial license.
func IsLicensedEngine(engine string) bool {
	return LicensedEngines[engine]
}

// IsAuroraEngine reports whether engine runs on Aurora cluster storage.
func IsAuroraEngine(engine string) bool {
	return AuroraEngines[engine]
}

// InstanceSpec is the lookup key for a priced instance.
type InstanceSpec struct {
	// InstanceType like "db.r6i.xlarge"
	InstanceType string `json:"instance_type"`

	// Region is the AWS region code
	Region string `json:"region"`

	// Engine is the RDS engine code (oracle-ee, aurora-postgresql, ...)
	Engine string `json:"engine"`

	// Strategy the spec was generated for
	Strategy MigrationStrategy `json:"strategy"`

	// Deployment is Single-AZ or Multi-AZ
	Deployment Deployment `json:"deployment"`
}
