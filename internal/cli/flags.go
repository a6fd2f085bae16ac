package cli

import (
	"errors"
	"fmt"

	"freight-calc/internal/config"
	"freight-calc/internal/data"
	"freight-calc/internal/model"
	"freight-calc/internal/threshold"

	"github.com/spf13/cobra"
)

// selectionFlags names the baseline combination a command works on.
type selectionFlags struct {
	vessel string
	cargo  string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.vessel, "vessel", "", "Vessel name as it appears in the dataset")
	cmd.Flags().StringVar(&f.cargo, "cargo", "", "Cargo name as it appears in the dataset")
	_ = cmd.MarkFlagRequired("vessel")
	_ = cmd.MarkFlagRequired("cargo")
}

func (f *selectionFlags) find(ds *model.Dataset) (model.VoyageRecord, error) {
	key := model.Key{Vessel: f.vessel, Cargo: f.cargo}
	rec, ok := ds.Find(key)
	if !ok {
		return model.VoyageRecord{}, fmt.Errorf("no baseline combination for %s", key)
	}
	return rec, nil
}

// economicsFlags override the configured economics; zero keeps the default.
type economicsFlags struct {
	vlsfo float64
	mgo   float64
	speed float64
	hire  float64
	opex  float64
	extra float64
}

func (f *economicsFlags) register(cmd *cobra.Command, withDelay bool) {
	fl := cmd.Flags()
	fl.Float64Var(&f.vlsfo, "vlsfo", 0, "VLSFO price $/MT (0 = config default)")
	fl.Float64Var(&f.mgo, "mgo", 0, "MGO price $/MT (0 = 1.3 x VLSFO when --vlsfo is set)")
	fl.Float64Var(&f.speed, "speed", 0, "Sailing speed in knots (0 = config default)")
	fl.Float64Var(&f.hire, "hire", 0, "Daily hire $/day (0 = config default)")
	fl.Float64Var(&f.opex, "opex", 0, "Operating cost $/day (0 = config default)")
	if withDelay {
		fl.Float64Var(&f.extra, "extra", 0, "Extra waiting days added to every voyage")
	}
}

func (f *economicsFlags) resolve(base config.EconomicsConfig) (config.EconomicsConfig, error) {
	for _, v := range []float64{f.vlsfo, f.mgo, f.speed, f.hire, f.opex, f.extra} {
		if v < 0 {
			return config.EconomicsConfig{}, errors.New("prices, speed, rates and extra days must not be negative")
		}
	}
	econ := config.MergeEconomics(base, config.EconomicsConfig{
		VLSFOPrice: f.vlsfo,
		MGOPrice:   f.mgo,
		SpeedKnots: f.speed,
		DailyHire:  f.hire,
		OpexPerDay: f.opex,
	})
	if f.vlsfo != 0 && f.mgo == 0 {
		econ.MGOPrice = data.DefaultMGOPrice(f.vlsfo)
	}
	return econ, nil
}

// rangeFlags override individual bounds of the configured sweep range.
type rangeFlags struct {
	start float64
	end   float64
	step  float64
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.start, "start", 0, "First sweep value")
	fl.Float64Var(&f.end, "end", 0, "Last sweep value (inclusive)")
	fl.Float64Var(&f.step, "step", 0, "Sweep increment")
}

func (f *rangeFlags) resolve(cmd *cobra.Command, configured threshold.Range) threshold.Range {
	r := configured
	if cmd.Flags().Changed("start") {
		r.Start = f.start
	}
	if cmd.Flags().Changed("end") {
		r.End = f.end
	}
	if cmd.Flags().Changed("step") {
		r.Step = f.step
	}
	return r
}
