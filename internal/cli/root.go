package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"freight-calc/internal/config"
	"freight-calc/internal/data"
	"freight-calc/internal/model"

	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	dataDir    string
	configPath string
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "freight-calc",
		Short: "Freight calculator CLI - re-price baseline voyages and find decision thresholds",
		Long: `freight-calc works on the precomputed vessel/cargo tables in a dataset
directory. It recalculates a combination under new prices, speed or delay,
searches for the delay or bunker increase at which the best assignment
changes, and prints the portfolio reports.

Examples:
  freight-calc recalc --vessel "ANN BELL" --cargo "EGA Bauxite" --vlsfo 600 --extra 3
  freight-calc threshold delay --vessel "ANN BELL" --cargo "EGA Bauxite"
  freight-calc threshold bunker --vessel "ANN BELL" --cargo "EGA Bauxite" --end 100
  freight-calc recommend --vessel "ANN BELL" --cargo "EGA Bauxite" --vlsfo 620
  freight-calc profile bunker --vessel "ANN BELL" --cargo "EGA Bauxite" --out results/bunker.csv
  freight-calc top --vlsfo 600 --out results/top_adjusted.csv
  freight-calc report --data ./data`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data", "",
		"Directory holding the baseline CSV tables, or a single combinations .csv/.json file (overrides dataset_dir)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to calculator YAML config")

	rootCmd.AddCommand(newRecalcCommand(opts))
	rootCmd.AddCommand(newThresholdCommand(opts))
	rootCmd.AddCommand(newRecommendCommand(opts))
	rootCmd.AddCommand(newProfileCommand(opts))
	rootCmd.AddCommand(newTopCommand(opts))
	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newComparisonCommand(opts))
	rootCmd.AddCommand(newRiskCommand(opts))
	rootCmd.AddCommand(newExportCommand(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load resolves the calculator config and reads the dataset it points at.
// Unset bunker prices are taken from the dataset.
func (o *rootOptions) load() (*config.Config, *model.Dataset, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config %s: %w", o.configPath, err)
		}
		cfg = loaded
	}
	if o.dataDir != "" {
		cfg.DatasetDir = o.dataDir
	}

	ds, err := data.LoadDataset(cfg.DatasetDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset %s: %w", cfg.DatasetDir, err)
	}
	cfg.Economics = cfg.Economics.WithPrices(ds.Combinations)
	return cfg, ds, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
