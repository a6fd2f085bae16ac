package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"freight-calc/internal/data"
	"freight-calc/internal/economics"
	"freight-calc/internal/model"
	"freight-calc/internal/threshold"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk calculator configuration (YAML).
type Config struct {
	// Directory holding the three baseline CSV tables, or a single
	// combinations file (.csv or .json records).
	DatasetDir string `yaml:"dataset_dir" validate:"required"`

	// Optional: load economics from a separate YAML (e.g. a per-market rate sheet).
	// If both EconomicsFile and Economics are provided, Economics overrides EconomicsFile.
	EconomicsFile string          `yaml:"economics_file"`
	Economics     EconomicsConfig `yaml:"economics"`
	Sweeps        SweepConfig     `yaml:"sweeps"`
}

// EconomicsConfig holds the call defaults for recalculation.
type EconomicsConfig struct {
	VLSFOPrice float64 `yaml:"vlsfo_price" validate:"gte=0"`
	MGOPrice   float64 `yaml:"mgo_price" validate:"gte=0"`
	SpeedKnots float64 `yaml:"speed_knots" validate:"gt=0"`
	DailyHire  float64 `yaml:"daily_hire" validate:"gt=0"`
	OpexPerDay float64 `yaml:"opex_per_day" validate:"gte=0"`
}

type SweepConfig struct {
	Delay  threshold.Range `yaml:"delay"`
	Bunker threshold.Range `yaml:"bunker"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{DatasetDir: "."}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the YAML and merges the economics file, resolving
// paths against the config's directory. Defaults and validation are left
// to Load.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.EconomicsFile != "" {
		loaded, err := loadEconomicsFile(resolve(path, c.EconomicsFile))
		if err != nil {
			return nil, err
		}
		c.Economics = MergeEconomics(loaded, c.Economics)
	}
	if c.DatasetDir != "" {
		c.DatasetDir = resolve(path, c.DatasetDir)
	}
	return &c, nil
}

// resolve interprets rel relative to the config file directory when that
// exists, else relative to the working directory.
func resolve(configPath, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	cand := filepath.Join(filepath.Dir(configPath), rel)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return rel
}

func (c *Config) applyDefaults() {
	// Bunker prices stay unset here; WithPrices fills them from the dataset.
	e := &c.Economics
	if e.SpeedKnots == 0 {
		e.SpeedKnots = 12
	}
	if e.DailyHire == 0 {
		e.DailyHire = economics.DefaultDailyHire
	}
	if e.OpexPerDay == 0 {
		e.OpexPerDay = economics.DefaultOpexPerDay
	}
	if c.Sweeps.Delay == (threshold.Range{}) {
		c.Sweeps.Delay = threshold.DefaultDelayRange
	}
	if c.Sweeps.Bunker == (threshold.Range{}) {
		c.Sweeps.Bunker = threshold.DefaultBunkerRange
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Sweeps.Delay.Validate(); err != nil {
		return fmt.Errorf("sweeps.delay invalid: %w", err)
	}
	if err := c.Sweeps.Bunker.Validate(); err != nil {
		return fmt.Errorf("sweeps.bunker invalid: %w", err)
	}
	return nil
}

// Params converts the economics section into recalculation inputs.
func (e EconomicsConfig) Params(extraDays float64) economics.Params {
	return economics.Params{
		VLSFOPrice: e.VLSFOPrice,
		MGOPrice:   e.MGOPrice,
		SpeedKnots: e.SpeedKnots,
		ExtraDays:  extraDays,
		DailyHire:  e.DailyHire,
		OpexPerDay: e.OpexPerDay,
	}
}

// WithPrices fills unset bunker prices from the baseline: VLSFO defaults to
// the median recorded price (data.DefaultVLSFOPrice when none is recorded)
// and MGO to data.MGOPriceRatio times VLSFO.
func (e EconomicsConfig) WithPrices(records []model.VoyageRecord) EconomicsConfig {
	if e.VLSFOPrice == 0 {
		e.VLSFOPrice = data.MedianVLSFOPrice(records)
	}
	if e.MGOPrice == 0 {
		e.MGOPrice = data.DefaultMGOPrice(e.VLSFOPrice)
	}
	return e
}

type economicsFileWrapper struct {
	Economics EconomicsConfig `yaml:"economics"`
}

func loadEconomicsFile(path string) (EconomicsConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EconomicsConfig{}, err
	}
	var w economicsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return EconomicsConfig{}, err
	}
	return w.Economics, nil
}

// MergeEconomics overlays non-zero fields from override onto base.
// This is used when loading an economics file and when applying request overrides.
func MergeEconomics(base, override EconomicsConfig) EconomicsConfig {
	out := base
	if override.VLSFOPrice != 0 {
		out.VLSFOPrice = override.VLSFOPrice
	}
	if override.MGOPrice != 0 {
		out.MGOPrice = override.MGOPrice
	}
	if override.SpeedKnots != 0 {
		out.SpeedKnots = override.SpeedKnots
	}
	if override.DailyHire != 0 {
		out.DailyHire = override.DailyHire
	}
	if override.OpexPerDay != 0 {
		out.OpexPerDay = override.OpexPerDay
	}
	return out
}
