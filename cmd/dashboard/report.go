package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/channel-dashboard/internal/observability"
	"github.com/jonathan/channel-dashboard/internal/schemas"
	"github.com/jonathan/channel-dashboard/internal/session"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the channel report for a workbook",
	Long:  "Loads a hires export, applies the filter criteria and writes the per-channel report (metrics, grid and drilldown) as JSON.",
	RunE:  runReport,
}

var (
	reportFile      string
	reportConfig    string
	reportCriteria  string
	reportMode      string
	reportVariant   string
	reportTopN      int
	reportDrilldown string
	reportOutput    string
)

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "Path to the .xlsx/.csv hires export (required)")
	reportCmd.Flags().StringVarP(&reportConfig, "config", "c", "", "Path to JSON or YAML config")
	reportCmd.Flags().StringVar(&reportCriteria, "criteria", "", "Filter criteria as inline JSON or a JSON file path")
	reportCmd.Flags().StringVarP(&reportMode, "mode", "m", "", "Percentage mode: relative or absolute")
	reportCmd.Flags().StringVar(&reportVariant, "variant", "", "Classification variant: A or B")
	reportCmd.Flags().IntVar(&reportTopN, "top-n", 0, "Headhunter firms shown before Other (0 = variant default)")
	reportCmd.Flags().StringVar(&reportDrilldown, "drilldown", "", "Talent-pool category to expand")
	reportCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "Path to output report JSON (default: stdout)")
	markRequired(reportCmd, "file")

	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	req := session.ReportRequest{
		Mode:      reportMode,
		Variant:   reportVariant,
		TopN:      reportTopN,
		Drilldown: reportDrilldown,
	}
	if err := decodeJSONArg(reportCriteria, &req.Criteria); err != nil {
		return fmt.Errorf("invalid --criteria: %w", err)
	}

	res, err := buildReport(reportFile, reportConfig, req)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintReport(res.Report, res.Grid)
	}

	if reportOutput == "" {
		return printJSON(res)
	}
	if err := writeJSON(reportOutput, res); err != nil {
		return err
	}

	// Validate output against schema (optional - non-fatal)
	if schemaPath := schemas.ResolveSchemaPath(schemas.ReportSchema); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, reportOutput); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully wrote report for %d hires to %s\n", res.Filtered, reportOutput)
	return nil
}

// buildReport loads file and computes req over it.
func buildReport(file, configPath string, req session.ReportRequest) (session.ReportResult, error) {
	sess, err := loadDataset(file, configPath)
	if err != nil {
		return session.ReportResult{}, err
	}
	res, err := sess.Report(req)
	if err != nil {
		return session.ReportResult{}, fmt.Errorf("failed to compute report: %w", err)
	}
	return res, nil
}
