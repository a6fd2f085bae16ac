package threshold

import (
	"freight-calc/internal/economics"
	"freight-calc/internal/model"
)

// DefaultDelayRange sweeps 0..30 extra days in half-day steps.
var DefaultDelayRange = Range{Start: 0, End: 30, Step: 0.5}

// DefaultBunkerRange sweeps a 0..200% VLSFO price increase in 1% steps.
var DefaultBunkerRange = Range{Start: 0, End: 200, Step: 1}

// DelaySweep fixes prices and speed while extra waiting days vary.
type DelaySweep struct {
	VLSFOPrice float64 `json:"vlsfo_price"`
	MGOPrice   float64 `json:"mgo_price"`
	SpeedKnots float64 `json:"speed_knots"`
	DailyHire  float64 `json:"daily_hire,omitempty"`
	OpexPerDay float64 `json:"opex_per_day,omitempty"`
	Range      Range   `json:"range"`
}

// BunkerSweep fixes speed, delay and MGO while the VLSFO price rises by
// a percentage of VLSFOPrice.
type BunkerSweep struct {
	VLSFOPrice float64 `json:"vlsfo_price"`
	MGOPrice   float64 `json:"mgo_price"`
	SpeedKnots float64 `json:"speed_knots"`
	ExtraDays  float64 `json:"extra_days"`
	DailyHire  float64 `json:"daily_hire,omitempty"`
	OpexPerDay float64 `json:"opex_per_day,omitempty"`
	Range      Range   `json:"range"`
}

func (s DelaySweep) paramsAt(delay float64) economics.Params {
	return economics.Params{
		VLSFOPrice: s.VLSFOPrice,
		MGOPrice:   s.MGOPrice,
		SpeedKnots: s.SpeedKnots,
		ExtraDays:  delay,
		DailyHire:  s.DailyHire,
		OpexPerDay: s.OpexPerDay,
	}.WithDefaults()
}

// VLSFOPriceAt returns the VLSFO price after a pct% increase.
func (s BunkerSweep) VLSFOPriceAt(pct float64) float64 {
	return s.VLSFOPrice * (1 + pct/100)
}

func (s BunkerSweep) paramsAt(pct float64) economics.Params {
	return economics.Params{
		VLSFOPrice: s.VLSFOPriceAt(pct),
		MGOPrice:   s.MGOPrice,
		SpeedKnots: s.SpeedKnots,
		ExtraDays:  s.ExtraDays,
		DailyHire:  s.DailyHire,
		OpexPerDay: s.OpexPerDay,
	}.WithDefaults()
}

// FindDelayThreshold returns the smallest delay (in days) at which the most
// profitable assignment in pool is no longer base's.
// A zero Range means DefaultDelayRange.
func FindDelayThreshold(base model.VoyageRecord, pool []model.VoyageRecord, s DelaySweep) (Threshold, error) {
	return search(base, pool, s.Range.or(DefaultDelayRange), s.paramsAt)
}

// FindBunkerPriceThreshold returns the smallest VLSFO price increase (in
// percent) at which the most profitable assignment in pool is no longer base's.
// A zero Range means DefaultBunkerRange.
func FindBunkerPriceThreshold(base model.VoyageRecord, pool []model.VoyageRecord, s BunkerSweep) (Threshold, error) {
	return search(base, pool, s.Range.or(DefaultBunkerRange), s.paramsAt)
}
