// Package cmd - regions command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rds-cost/core/rates"
)

// regionsCmd lists the regions with bundled storage and network rates
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions with bundled rate tables",
	Long: `List the AWS regions this tool carries storage and network rates for.

Other regions still work: instance pricing always comes from the price
list API, and storage and network rates fall back to the default region
with a warning.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-16s %-12s %-12s %-14s\n", "REGION", "GP3 $/GB", "IOPS $/mo", "CROSS-AZ $/GB")
		for _, region := range rates.Regions() {
			r, _ := rates.Lookup(region)
			marker := ""
			if region == rates.DefaultRegion {
				marker = " (default)"
			}
			fmt.Printf("%-16s %-12s %-12s %-14s%s\n",
				region,
				r.StorageGB.String(),
				r.ProvisionedIOPS.String(),
				r.CrossAZGB.String(),
				marker)
		}
	},
}
