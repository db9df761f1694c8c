// Package cmd - estimate command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rds-cost/adapters/pricing"
	"rds-cost/adapters/profile"
	"rds-cost/core/estimator"
	"rds-cost/core/factstore"
	"rds-cost/core/output"
	"rds-cost/internal/config"
	"rds-cost/internal/logging"
)

var (
	region              string
	engine              string
	currentInstance     string
	recommendedInstance string
	sgaInstance         string
	onPremCost          float64
	profileFile         string
	outputFormat        string
	outputFile          string
	showDetails         bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate RDS costs for one database",
	Long: `Fetch live pricing and produce a full migration cost estimate.

An assessment profile (HCL) supplies the workload details; flags override
matching profile fields. Without a profile, at least one instance flag is
required.

Examples:
  rds-cost estimate --profile-file assessment.hcl
  rds-cost estimate --recommended-instance db.r6i.2xlarge --engine oracle-ee
  rds-cost estimate --profile-file assessment.hcl --on-prem-cost 85000 --format json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&region, "region", "r", "", "target AWS region (default from config)")
	estimateCmd.Flags().StringVarP(&engine, "engine", "e", "", "target database engine (default oracle-ee)")
	estimateCmd.Flags().StringVar(&currentInstance, "current-instance", "", "instance class currently in use")
	estimateCmd.Flags().StringVar(&recommendedInstance, "recommended-instance", "", "instance class recommended by assessment")
	estimateCmd.Flags().StringVar(&sgaInstance, "sga-instance", "", "instance class sized from SGA analysis")
	estimateCmd.Flags().Float64Var(&onPremCost, "on-prem-cost", 0, "current on-premise annual cost in USD")
	estimateCmd.Flags().StringVarP(&profileFile, "profile-file", "p", "", "assessment profile file (HCL)")
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	estimateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file instead of stdout")
	estimateCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show detailed cost breakdown")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()
	cfg := config.Get()

	if region == "" {
		region = cfg.AWS.DefaultRegion
	}

	store := factstore.New()
	if profileFile != "" {
		p, err := profile.Load(profileFile)
		if err != nil {
			return err
		}
		store.SetProfile(p)
	}

	inputs := estimator.Inputs{
		Region:              region,
		Engine:              engine,
		CurrentInstance:     currentInstance,
		RecommendedInstance: recommendedInstance,
		SGAInstance:         sgaInstance,
	}
	if onPremCost > 0 {
		inputs.OnPremAnnualCost = &onPremCost
	}

	est := estimator.New(inputs, store)
	if err := est.Validate(); err != nil {
		return err
	}

	specs := est.PlanSpecs()
	fmt.Printf("Pricing %d instance configurations in %s...\n", len(specs), region)

	client, err := pricing.NewAWSClient(ctx, region, cfg.AWS.Profile)
	if err != nil {
		return err
	}

	collector := pricing.NewCollector(client, store, cfg.Pricing.MaxConcurrentFetches)
	if err := collector.Collect(ctx, specs); err != nil {
		return err
	}
	if cfg.Pricing.ReservedFallback {
		if err := collector.ApplyReservedFallback(ctx, client); err != nil {
			return err
		}
	}

	report, err := est.BuildReport()
	if err != nil {
		return err
	}

	result := &output.EstimationResult{
		Report: report,
		Rows:   est.CostRows(),
		Metadata: output.EstimationMetadata{
			Timestamp: time.Now().Format(time.RFC3339),
			Duration:  time.Since(startTime).Round(time.Millisecond).String(),
			Region:    region,
			Engine:    est.Engine(),
			Version:   version,
		},
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	if c, ok := formatter.(*output.ConsoleFormatter); ok {
		c.ShowDetails = showDetails
	}
	if m, ok := formatter.(*output.MarkdownFormatter); ok {
		m.TemplatePath = cfg.Output.TemplatePath
	}

	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := formatter.Render(w, result); err != nil {
		return err
	}
	if outputFile != "" {
		fmt.Printf("Report written to %s\n", outputFile)
	}

	logging.Info("estimation complete")
	return nil
}
