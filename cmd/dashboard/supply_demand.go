package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/channel-dashboard/internal/observability"
	"github.com/jonathan/channel-dashboard/internal/server"
	"github.com/jonathan/channel-dashboard/internal/session"
	"github.com/jonathan/channel-dashboard/internal/supply"
)

var supplyDemandCmd = &cobra.Command{
	Use:   "supply-demand",
	Short: "Print the simulated supply/demand series per job category",
	Long:  "Loads a hires export and prints the 24-month supply/demand ratio series, with latest value, mean and trend line, for each requested job category.",
	RunE:  runSupplyDemand,
}

var (
	supplyFile       string
	supplyConfig     string
	supplyCategories []string
	supplySeed       uint64
)

func init() {
	supplyDemandCmd.Flags().StringVarP(&supplyFile, "file", "f", "", "Path to the .xlsx/.csv hires export (required)")
	supplyDemandCmd.Flags().StringVarP(&supplyConfig, "config", "c", "", "Path to JSON or YAML config")
	supplyDemandCmd.Flags().StringSliceVar(&supplyCategories, "category", nil, "Job categories to show (default: all)")
	supplyDemandCmd.Flags().Uint64Var(&supplySeed, "seed", 0, "Generator seed (0 = time based)")
	markRequired(supplyDemandCmd, "file")

	rootCmd.AddCommand(supplyDemandCmd)
}

func runSupplyDemand(_ *cobra.Command, _ []string) error {
	resp, err := supplyDemand(supplyFile, supplyConfig, supplyCategories, supplySeed)
	if err != nil {
		return err
	}
	for _, c := range resp.Missing {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: no hires in job category %q\n", c)
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintSupplyDemand(resp.Series)
		return nil
	}
	return printJSON(resp)
}

func supplyDemand(file, configPath string, categories []string, seed uint64) (server.SupplyDemandResponse, error) {
	sess, err := loadDataset(file, configPath, session.WithSeed(seed))
	if err != nil {
		return server.SupplyDemandResponse{}, err
	}
	views, missing, err := sess.SupplyDemand(categories)
	if err != nil {
		return server.SupplyDemandResponse{}, fmt.Errorf("failed to build supply/demand series: %w", err)
	}
	return server.SupplyDemandResponse{Series: views, Missing: missing, Points: supply.Points}, nil
}
