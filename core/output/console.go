package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"rds-cost/core/types"
)

// ConsoleFormatter prints the headline comparison as a terminal table.
type ConsoleFormatter struct {
	// ShowDetails adds the per-option breakdown under each instance row.
	ShowDetails bool
}

// Format returns the format type
func (f *ConsoleFormatter) Format() Format {
	return FormatCLI
}

// Render writes the result to w.
func (f *ConsoleFormatter) Render(w io.Writer, result *EstimationResult) error {
	r := result.Report

	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                     RDS MIGRATION COST ESTIMATE                         │")
	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-30s %40s │\n", "Database", truncate(r["db_name"], 40))
	fmt.Fprintf(w, "│ %-30s %40s │\n", "Target engine", truncate(result.Metadata.Engine, 40))
	fmt.Fprintf(w, "│ %-30s %40s │\n", "Region", truncate(result.Metadata.Region, 40))
	fmt.Fprintf(w, "│ %-30s %40s │\n", "DB size (GB)", truncate(r["db_size"], 40))
	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")

	for _, row := range result.Rows {
		label := fmt.Sprintf("%s (%s)", row.InstanceType, row.Strategy)
		fmt.Fprintf(w, "│ %-50s %20s │\n",
			truncate(label, 50),
			annualCell(row.OnDemandAnnual)+"/yr")

		if f.ShowDetails {
			fmt.Fprintf(w, "│   └─ %-46s %20s │\n", "RI 1yr all-upfront", annualCell(row.RI1YrAnnual))
			fmt.Fprintf(w, "│   └─ %-46s %20s │\n", "RI 3yr all-upfront", annualCell(row.RI3YrAnnual))
			if row.SavingsRatePercent != nil {
				fmt.Fprintf(w, "│   └─ %-46s %19.1f%% │\n", "savings vs on-prem", *row.SavingsRatePercent)
			}
		}
	}

	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-50s %20s │\n", "STORAGE MONTHLY (year 0)", "$"+r["stor_total_0y"])
	fmt.Fprintf(w, "│ %-50s %20s │\n", "NETWORK MONTHLY", "$"+r["net_monthly"])
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────────────────────┘")

	fmt.Fprintf(w, "\nEstimation completed in %s\n", result.Metadata.Duration)
	fmt.Fprintf(w, "Pricing as of %s\n", r["pricing_date"])

	return nil
}

func annualCell(d *decimal.Decimal) string {
	if d == nil {
		return types.NotAvailable
	}
	return "$" + types.FormatMoney(*d)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
