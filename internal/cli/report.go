package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"freight-calc/internal/analysis"
	"freight-calc/internal/api/models"
	"freight-calc/internal/data"

	"github.com/spf13/cobra"
)

// newTopCommand creates the top command
func newTopCommand(opts *rootOptions) *cobra.Command {
	var (
		n       int
		vlsfo   float64
		mgo     float64
		metric  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the best combinations",
		Long: `Without --vlsfo, rank the dataset by TCE (or profit when no TCE is
recorded, or by --metric). With --vlsfo, re-price every combination at the given bunker
prices and rank by adjusted profit; --out then also writes the table as CSV.

Examples:
  freight-calc top -n 10
  freight-calc top --metric profit
  freight-calc top --vlsfo 600 --mgo 780 --out results/top_adjusted.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if vlsfo < 0 || mgo < 0 {
				return fmt.Errorf("bunker prices must not be negative")
			}
			if metric != "" && metric != string(analysis.ByTCE) && metric != string(analysis.ByProfit) {
				return fmt.Errorf("--metric must be tce or profit")
			}
			if n <= 0 {
				n = defaultTopN
			}
			_, ds, err := opts.load()
			if err != nil {
				return err
			}

			if vlsfo == 0 {
				if outPath != "" {
					return fmt.Errorf("--out needs --vlsfo")
				}
				entries, by := analysis.TopN(ds, n)
				if metric != "" {
					by = analysis.Metric(metric)
					entries = analysis.TopNBy(ds.Combinations, by, n)
				}
				return printJSON(cmd, models.TopResponse{
					Metric:  string(by),
					Entries: entries,
					Count:   len(entries),
				})
			}

			if mgo == 0 {
				mgo = data.DefaultMGOPrice(vlsfo)
			}
			adjusted := analysis.TopAdjusted(ds.Combinations, vlsfo, mgo, n)
			if outPath != "" {
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				if err := analysis.WriteTopAdjustedCSV(outPath, adjusted); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d rows)\n", outPath, len(adjusted))
			}
			return printJSON(cmd, models.TopResponse{
				Metric:   "adj_profit",
				Adjusted: adjusted,
				Count:    len(adjusted),
			})
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", defaultTopN, "Number of combinations")
	cmd.Flags().Float64Var(&vlsfo, "vlsfo", 0, "Re-price at this VLSFO price $/MT")
	cmd.Flags().Float64Var(&mgo, "mgo", 0, "MGO price $/MT (default 1.3 x VLSFO)")
	cmd.Flags().StringVar(&metric, "metric", "", "Baseline ranking column: tce or profit (default tce when recorded)")
	cmd.Flags().StringVar(&outPath, "out", "", "Also write the adjusted ranking to this CSV path")
	return cmd
}

// newReportCommand creates the report command
func newReportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize the chosen portfolio and scenario outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.load()
			if err != nil {
				return err
			}
			r, err := analysis.BuildReport(ds)
			if err != nil {
				return err
			}
			return printJSON(cmd, r)
		},
	}
}

// newComparisonCommand creates the comparison command
func newComparisonCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "comparison",
		Short: "Show portfolio totals for the recorded assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.load()
			if err != nil {
				return err
			}
			cmp, err := analysis.Compare(ds)
			if err != nil {
				return err
			}
			return printJSON(cmd, cmp)
		},
	}
}

// newRiskCommand creates the risk command
func newRiskCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "risk",
		Short: "Mean, spread and 5% VaR/CVaR of scenario profits",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.load()
			if err != nil {
				return err
			}
			r, err := analysis.AssessRisk(ds.Scenarios)
			if err != nil {
				return err
			}
			return printJSON(cmd, r)
		},
	}
}
