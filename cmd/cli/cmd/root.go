// Package cmd provides the CLI commands for rds-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rds-cost/internal/config"
	"rds-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rds-cost",
	Short: "Estimate AWS RDS migration costs",
	Long: `rds-cost estimates what an on-premise database costs to run on RDS.

It sizes candidate instances from an assessment profile, fetches live
pricing from the AWS price list API, and projects storage, network and
three-year TCO figures per purchase option.

Examples:
  rds-cost estimate --profile-file assessment.hcl
  rds-cost estimate --region us-east-1 --recommended-instance db.r6i.2xlarge
  rds-cost estimate --profile-file assessment.hcl --format markdown --output report.md
  rds-cost regions`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rds-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rds-cost version " + version)
	},
}

const version = "0.1.0"
