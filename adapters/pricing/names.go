package pricing

import "rds-cost/core/types"

// The AWS price list API filters on human-readable attribute values, not on
// the identifiers the rest of the AWS APIs use. These tables carry the
// translations.

// regionNames maps region codes to price list location names.
var regionNames = map[string]string{
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"us-east-1":      "US East (N. Virginia)",
	"us-west-2":      "US West (Oregon)",
	"eu-west-1":      "EU (Ireland)",
}

// engineNames maps engine codes to price list databaseEngine values.
var engineNames = map[string]string{
	"oracle-ee":         "Oracle",
	"oracle-se2":        "Oracle",
	"aurora-postgresql": "Aurora PostgreSQL",
	"aurora-mysql":      "Aurora MySQL",
	"postgres":          "PostgreSQL",
	"mysql":             "MySQL",
	"mariadb":           "MariaDB",
	"sqlserver-se":      "SQL Server",
	"sqlserver-ee":      "SQL Server",
}

// licenseModels disambiguates engines that share a databaseEngine value.
// Oracle EE prices are published BYOL only; SE2 carries the license.
var licenseModels = map[string]string{
	"oracle-ee":         "Bring your own license",
	"oracle-se2":        "License included",
	"aurora-postgresql": "No license required",
	"aurora-mysql":      "No license required",
}

// databaseEditions narrows SQL Server products to one edition.
var databaseEditions = map[string]string{
	"sqlserver-se": "Standard",
	"sqlserver-ee": "Enterprise",
}

// riTerm is the reserved term a price list offer code stands for.
type riTerm struct {
	Years          int
	PurchaseOption string
}

// riOfferCodes maps the price list offer term codes to their meaning. The
// codes are stable across products; the second group covers convertible
// offerings, which price identically for RDS.
var riOfferCodes = map[string]riTerm{
	"4NA7Y494T4": {1, "No Upfront"},
	"6QCMYABX3D": {1, "All Upfront"},
	"HU7G6KETJZ": {1, "Partial Upfront"},
	"R5XV2EPZQZ": {3, "No Upfront"},
	"NQ3QZPMQV9": {3, "All Upfront"},
	"38NPMPTW36": {3, "Partial Upfront"},

	"VJWZNREJX2": {1, "No Upfront"},
	"MZU6U2429S": {1, "All Upfront"},
	"7NE97W5U4E": {1, "Partial Upfront"},
	"Z2E3P23VKM": {3, "No Upfront"},
	"BPH4J8HBKS": {3, "All Upfront"},
	"CUZHX8X6JH": {3, "Partial Upfront"},
}

// offeringProductDescriptions maps engine codes to the ProductDescription
// values of DescribeReservedDBInstancesOfferings.
var offeringProductDescriptions = map[string]string{
	"oracle-ee":         "oracle",
	"oracle-se2":        "oracle",
	"aurora-postgresql": "aurora-postgresql",
	"aurora-mysql":      "aurora",
	"postgres":          "postgresql",
	"mysql":             "mysql",
	"mariadb":           "mariadb",
	"sqlserver-se":      "sqlserver-se",
	"sqlserver-ee":      "sqlserver-ee",
}

// offering durations in seconds, the unit the RDS API wants.
const (
	duration1Yr = "31536000"
	duration3Yr = "94608000"
)

// termFor translates a purchase option into the offer term it matches.
func termFor(opt types.PricingOption) (riTerm, bool) {
	switch opt {
	case types.RI1YrNoUpfront:
		return riTerm{1, "No Upfront"}, true
	case types.RI1YrAllUpfront:
		return riTerm{1, "All Upfront"}, true
	case types.RI3YrNoUpfront:
		return riTerm{3, "No Upfront"}, true
	case types.RI3YrAllUpfront:
		return riTerm{3, "All Upfront"}, true
	default:
		return riTerm{}, false
	}
}

// leaseLength is the termAttributes LeaseContractLength value per term.
func leaseLength(years int) string {
	if years == 3 {
		return "3yr"
	}
	return "1yr"
}

func offeringDuration(years int) string {
	if years == 3 {
		return duration3Yr
	}
	return duration1Yr
}
