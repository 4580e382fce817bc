package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/channel-dashboard/internal/channels"
	"github.com/jonathan/channel-dashboard/internal/observability"
	"github.com/jonathan/channel-dashboard/internal/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Dump the canonical hire records of a workbook",
	Long:  "Loads a hires export and writes every normalized record with the bucket each classification variant assigns it.",
	RunE:  runNormalize,
}

var (
	normalizeFile   string
	normalizeConfig string
	normalizeOutput string
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeFile, "file", "f", "", "Path to the .xlsx/.csv hires export (required)")
	normalizeCmd.Flags().StringVarP(&normalizeConfig, "config", "c", "", "Path to JSON or YAML config")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output records JSON (default: stdout)")
	markRequired(normalizeCmd, "file")

	rootCmd.AddCommand(normalizeCmd)
}

// ClassifiedRecord is a normalized record with its bucket under each variant.
type ClassifiedRecord struct {
	types.HireRecord
	BucketA types.Bucket `json:"bucket_a"`
	BucketB types.Bucket `json:"bucket_b"`
}

func runNormalize(_ *cobra.Command, _ []string) error {
	records, err := classifyFile(normalizeFile, normalizeConfig)
	if err != nil {
		return err
	}

	if normalizeOutput == "" {
		return printJSON(records)
	}
	if err := writeJSON(normalizeOutput, records); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully normalized %d records to %s\n", len(records), normalizeOutput)
	return nil
}

func classifyFile(file, configPath string) ([]ClassifiedRecord, error) {
	sess, err := loadDataset(file, configPath)
	if err != nil {
		return nil, err
	}
	ds, err := sess.Current()
	if err != nil {
		return nil, err
	}
	if verbose {
		observability.NewPrinter(os.Stdout).PrintDatasetSummary(ds.Summary())
	}

	lookup := sess.Config().Taxonomy.Compile()
	fieldCascade, err := channels.NewClassifier(types.VariantFieldCascade, lookup)
	if err != nil {
		return nil, err
	}
	signalUnion, err := channels.NewClassifier(types.VariantSignalUnion, lookup)
	if err != nil {
		return nil, err
	}

	bucketsA := channels.ClassifyAll(fieldCascade, ds.Records)
	bucketsB := channels.ClassifyAll(signalUnion, ds.Records)

	out := make([]ClassifiedRecord, len(ds.Records))
	for i, r := range ds.Records {
		out[i] = ClassifiedRecord{HireRecord: r, BucketA: bucketsA[i], BucketB: bucketsB[i]}
	}
	return out, nil
}
