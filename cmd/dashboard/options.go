package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/channel-dashboard/internal/observability"
	"github.com/jonathan/channel-dashboard/internal/types"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the filter choices for a selection",
	Long:  "Loads a hires export and prints the cross-filtered values selectable for each dimension (BG, job category, job title, grade).",
	RunE:  runOptions,
}

var (
	optionsFile      string
	optionsConfig    string
	optionsSelection string
)

func init() {
	optionsCmd.Flags().StringVarP(&optionsFile, "file", "f", "", "Path to the .xlsx/.csv hires export (required)")
	optionsCmd.Flags().StringVarP(&optionsConfig, "config", "c", "", "Path to JSON or YAML config")
	optionsCmd.Flags().StringVarP(&optionsSelection, "selection", "s", "", "Current selection as inline JSON or a JSON file path")
	markRequired(optionsCmd, "file")

	rootCmd.AddCommand(optionsCmd)
}

func runOptions(_ *cobra.Command, _ []string) error {
	var sel types.Selection
	if err := decodeJSONArg(optionsSelection, &sel); err != nil {
		return fmt.Errorf("invalid --selection: %w", err)
	}

	opts, err := listOptions(optionsFile, optionsConfig, sel)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintOptions(opts)
		return nil
	}
	return printJSON(opts)
}

func listOptions(file, configPath string, sel types.Selection) (types.Options, error) {
	sess, err := loadDataset(file, configPath)
	if err != nil {
		return types.Options{}, err
	}
	opts, err := sess.Options(sel)
	if err != nil {
		return types.Options{}, fmt.Errorf("failed to enumerate options: %w", err)
	}
	return opts, nil
}
