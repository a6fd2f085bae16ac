package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"freight-calc/internal/analysis"
	"freight-calc/internal/api/models"
	"freight-calc/internal/config"
	"freight-calc/internal/economics"
	"freight-calc/internal/model"
	"freight-calc/internal/threshold"

	"github.com/spf13/cobra"
)

const defaultTopN = 5

// newRecalcCommand creates the recalc command
func newRecalcCommand(opts *rootOptions) *cobra.Command {
	var (
		sel  selectionFlags
		econ economicsFlags
	)

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate one combination under new prices, speed or delay",
		Long: `Re-price a baseline vessel/cargo combination. Fuel consumption scales
with the cube of the speed ratio, sea days with its inverse, and extra
waiting days are charged at hire plus opex.

Examples:
  freight-calc recalc --vessel "ANN BELL" --cargo "EGA Bauxite" --vlsfo 600
  freight-calc recalc --vessel "ANN BELL" --cargo "EGA Bauxite" --speed 11 --extra 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := opts.load()
			if err != nil {
				return err
			}
			base, err := sel.find(ds)
			if err != nil {
				return err
			}
			e, err := econ.resolve(cfg.Economics)
			if err != nil {
				return err
			}

			p := e.Params(econ.extra)
			res := economics.Recalculate(base, p)
			rec := model.Recommend(base.BaseProfit(), res.Profit)
			return printJSON(cmd, models.RecalculateResponse{
				Vessel: base.Vessel,
				Cargo:  base.Cargo,
				Params: p,
				Baseline: models.Baseline{
					Profit: base.BaseProfit(),
					TCE:    base.BaseTCE(),
					Days:   base.BaseDays(),
				},
				Result:         res,
				ProfitDelta:    res.Profit - base.BaseProfit(),
				Recommendation: rec,
				Reasons:        rec.Reasons(),
			})
		},
	}

	sel.register(cmd)
	econ.register(cmd, true)
	return cmd
}

// newThresholdCommand creates the threshold command with subcommands
func newThresholdCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Find the point at which the best assignment changes",
		Long: `Sweep one input over a range and report the first value at which the
most profitable combination in the dataset is no longer the given one.
Not finding a flip within the range is a normal outcome.

Examples:
  freight-calc threshold delay --vessel "ANN BELL" --cargo "EGA Bauxite"
  freight-calc threshold bunker --vessel "ANN BELL" --cargo "EGA Bauxite" --start 0 --end 50 --step 0.5`,
	}

	cmd.AddCommand(newSweepCommand(opts, "delay", "Sweep extra waiting days (default 0..30 step 0.5)"))
	cmd.AddCommand(newSweepCommand(opts, "bunker", "Sweep the VLSFO price increase in percent (default 0..200 step 1)"))
	return cmd
}

func newSweepCommand(opts *rootOptions, kind, short string) *cobra.Command {
	var (
		sel  selectionFlags
		econ economicsFlags
		rng  rangeFlags
	)

	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := opts.load()
			if err != nil {
				return err
			}
			base, err := sel.find(ds)
			if err != nil {
				return err
			}
			e, err := econ.resolve(cfg.Economics)
			if err != nil {
				return err
			}

			s := newSweep(kind, e, econ.extra, rng.resolve(cmd, configuredRange(cfg, kind)))
			th, err := s.find(base, ds.Combinations)
			if err != nil {
				return err
			}
			resp := models.ThresholdResponse{
				Sweep:     kind,
				Base:      base.Key(),
				Range:     s.rng,
				PoolSize:  len(ds.Combinations),
				Threshold: th,
			}
			if kind == "bunker" && th.Found {
				price := s.bunker().VLSFOPriceAt(th.Value)
				resp.VLSFOPriceAtThreshold = &price
			}
			return printJSON(cmd, resp)
		},
	}

	sel.register(cmd)
	econ.register(cmd, kind == "bunker")
	rng.register(cmd)
	return cmd
}

// newRecommendCommand creates the recommend command
func newRecommendCommand(opts *rootOptions) *cobra.Command {
	var (
		sel  selectionFlags
		econ economicsFlags
		topN int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Assign, hedge or decline a combination at new bunker prices",
		Long: `Adjust the baseline profit for the bunker price change only (days and
consumption as recorded) and apply the decision rule:

  ASSIGN   adjusted profit >= 0
  HEDGE    adjusted profit within 5% of the original profit below zero
  DECLINE  otherwise

The output also lists the top combinations re-priced the same way.

Examples:
  freight-calc recommend --vessel "ANN BELL" --cargo "EGA Bauxite" --vlsfo 620
  freight-calc recommend --vessel "ANN BELL" --cargo "EGA Bauxite" --vlsfo 620 --mgo 800 --top 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := opts.load()
			if err != nil {
				return err
			}
			base, err := sel.find(ds)
			if err != nil {
				return err
			}
			e, err := econ.resolve(cfg.Economics)
			if err != nil {
				return err
			}
			if topN <= 0 {
				topN = defaultTopN
			}

			adj := economics.AdjustForBunker(base, e.VLSFOPrice, e.MGOPrice)
			rec := adj.Recommendation()
			return printJSON(cmd, models.RecommendResponse{
				Vessel:         base.Vessel,
				Cargo:          base.Cargo,
				VLSFOPrice:     e.VLSFOPrice,
				MGOPrice:       e.MGOPrice,
				SpeedKnots:     e.SpeedKnots,
				ExtraDays:      econ.extra,
				Adjustment:     adj,
				Recalculated:   economics.Recalculate(base, e.Params(econ.extra)),
				Recommendation: rec,
				Reasons:        rec.Reasons(),
				TopAdjusted:    analysis.TopAdjusted(ds.Combinations, e.VLSFOPrice, e.MGOPrice, topN),
				CreatedAt:      time.Now().UTC(),
			})
		},
	}

	sel.register(cmd)
	econ.register(cmd, true)
	cmd.Flags().IntVar(&topN, "top", defaultTopN, "Number of re-priced combinations to list")
	return cmd
}

// newProfileCommand creates the profile command
func newProfileCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Write a full sensitivity table for a sweep as CSV",
		Long: `Recalculate every dataset combination at every sweep value and write
the table (value, candidate, days, fuel, profit, TCE, rank) as CSV.
The first flip, if any, is printed afterwards.

Examples:
  freight-calc profile delay --vessel "ANN BELL" --cargo "EGA Bauxite" --out results/delay.csv
  freight-calc profile bunker --vessel "ANN BELL" --cargo "EGA Bauxite" --end 60`,
	}

	cmd.AddCommand(newProfileSweepCommand(opts, "delay"))
	cmd.AddCommand(newProfileSweepCommand(opts, "bunker"))
	return cmd
}

func newProfileSweepCommand(opts *rootOptions, kind string) *cobra.Command {
	var (
		sel     selectionFlags
		econ    economicsFlags
		rng     rangeFlags
		outPath string
	)

	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Tabulate the %s sweep", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := opts.load()
			if err != nil {
				return err
			}
			base, err := sel.find(ds)
			if err != nil {
				return err
			}
			e, err := econ.resolve(cfg.Economics)
			if err != nil {
				return err
			}

			s := newSweep(kind, e, econ.extra, rng.resolve(cmd, configuredRange(cfg, kind)))
			prof, err := s.profile(base, ds.Combinations)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := threshold.WriteProfileCSV(outPath, prof.Rows); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wrote %s (%d rows)\n", outPath, len(prof.Rows))
			if prof.Threshold.Found {
				fmt.Fprintf(out, "first flip at %s=%.2f: %s\n", prof.Parameter, prof.Threshold.Value, prof.Threshold.Top.Key())
			} else {
				fmt.Fprintf(out, "no flip within %s %.2f..%.2f\n", prof.Parameter, s.rng.Start, s.rng.End)
			}
			return nil
		},
	}

	sel.register(cmd)
	econ.register(cmd, kind == "bunker")
	rng.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", filepath.Join("results", kind+"_profile.csv"), "Output CSV path")
	return cmd
}

// sweep binds a sweep kind to resolved economics and range.
type sweep struct {
	kind  string
	econ  config.EconomicsConfig
	extra float64
	rng   threshold.Range
}

func newSweep(kind string, econ config.EconomicsConfig, extra float64, r threshold.Range) sweep {
	return sweep{kind: kind, econ: econ, extra: extra, rng: r}
}

func configuredRange(cfg *config.Config, kind string) threshold.Range {
	if kind == "delay" {
		return cfg.Sweeps.Delay
	}
	return cfg.Sweeps.Bunker
}

func (s sweep) delay() threshold.DelaySweep {
	return threshold.DelaySweep{
		VLSFOPrice: s.econ.VLSFOPrice,
		MGOPrice:   s.econ.MGOPrice,
		SpeedKnots: s.econ.SpeedKnots,
		DailyHire:  s.econ.DailyHire,
		OpexPerDay: s.econ.OpexPerDay,
		Range:      s.rng,
	}
}

func (s sweep) bunker() threshold.BunkerSweep {
	return threshold.BunkerSweep{
		VLSFOPrice: s.econ.VLSFOPrice,
		MGOPrice:   s.econ.MGOPrice,
		SpeedKnots: s.econ.SpeedKnots,
		ExtraDays:  s.extra,
		DailyHire:  s.econ.DailyHire,
		OpexPerDay: s.econ.OpexPerDay,
		Range:      s.rng,
	}
}

func (s sweep) find(base model.VoyageRecord, pool []model.VoyageRecord) (threshold.Threshold, error) {
	if s.kind == "delay" {
		return threshold.FindDelayThreshold(base, pool, s.delay())
	}
	return threshold.FindBunkerPriceThreshold(base, pool, s.bunker())
}

func (s sweep) profile(base model.VoyageRecord, pool []model.VoyageRecord) (*threshold.Profile, error) {
	if s.kind == "delay" {
		return threshold.DelayProfile(base, pool, s.delay())
	}
	return threshold.BunkerProfile(base, pool, s.bunker())
}
