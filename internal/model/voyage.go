package model

import (
	"errors"
	"math"
)

// Defaults substituted for absent baseline fields.
const (
	DefaultDays       = 1.0
	DefaultSpeedKnots = 12.0
)

// VoyageRecord is one precomputed vessel/cargo combination from the
// baseline dataset. Every numeric field is optional; use the accessor
// methods, which substitute the documented defaults.
//
// Units:
// - Days: voyage duration in days
// - Profit, TCE: currency units ($, $/day)
// - TotalVLSFOMT, TotalMGOMT: metric tons
// - VLSFOPrice, MGOPrice: $/MT used to produce Profit
// - SpeedKnots: sailing speed
// - DailyHire: $/day charter hire for this vessel (overrides the call's rate)
type VoyageRecord struct {
	Vessel string `json:"vessel"`
	Cargo  string `json:"cargo"`

	Days         *float64 `json:"days,omitempty"`
	Profit       *float64 `json:"profit,omitempty"`
	TCE          *float64 `json:"tce,omitempty"`
	TotalVLSFOMT *float64 `json:"total_vlsfo_mt,omitempty"`
	TotalMGOMT   *float64 `json:"total_mgo_mt,omitempty"`
	VLSFOPrice   *float64 `json:"vlsfo_price,omitempty"`
	MGOPrice     *float64 `json:"mgo_price,omitempty"`
	SpeedKnots   *float64 `json:"speed_knots,omitempty"`
	DailyHire    *float64 `json:"daily_hire,omitempty"`
}

// Key identifies an assignment.
type Key struct {
	Vessel string `json:"vessel"`
	Cargo  string `json:"cargo"`
}

func (k Key) String() string { return k.Vessel + "/" + k.Cargo }

func (r VoyageRecord) Key() Key { return Key{Vessel: r.Vessel, Cargo: r.Cargo} }

// BaseDays returns the baseline duration, 1 when absent or zero.
func (r VoyageRecord) BaseDays() float64 {
	if r.Days == nil || *r.Days == 0 {
		return DefaultDays
	}
	return *r.Days
}

func (r VoyageRecord) BaseProfit() float64 { return valueOr(r.Profit, 0) }

func (r VoyageRecord) BaseTCE() float64 { return valueOr(r.TCE, 0) }

func (r VoyageRecord) BaseVLSFOMT() float64 { return valueOr(r.TotalVLSFOMT, 0) }

func (r VoyageRecord) BaseMGOMT() float64 { return valueOr(r.TotalMGOMT, 0) }

// BaseSpeed returns the baseline speed, 12 knots when absent.
func (r VoyageRecord) BaseSpeed() float64 { return valueOr(r.SpeedKnots, DefaultSpeedKnots) }

// BaseVLSFOPrice returns the recorded VLSFO price, or fallback when the
// record carries none (which makes the price delta for that fuel zero).
func (r VoyageRecord) BaseVLSFOPrice(fallback float64) float64 { return valueOr(r.VLSFOPrice, fallback) }

func (r VoyageRecord) BaseMGOPrice(fallback float64) float64 { return valueOr(r.MGOPrice, fallback) }

// HireRate returns the record's own daily hire if present, else fallback.
func (r VoyageRecord) HireRate(fallback float64) float64 { return valueOr(r.DailyHire, fallback) }

// Validate checks the fields the calculator cannot default.
func (r VoyageRecord) Validate() error {
	if r.Vessel == "" {
		return errors.New("vessel is required")
	}
	if r.Cargo == "" {
		return errors.New("cargo is required")
	}
	for _, v := range []*float64{r.Days, r.Profit, r.TCE, r.TotalVLSFOMT, r.TotalMGOMT, r.VLSFOPrice, r.MGOPrice, r.SpeedKnots, r.DailyHire} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return errors.New("numeric fields must be finite")
		}
	}
	return nil
}

// Float returns a pointer to v, for building records in code.
func Float(v float64) *float64 { return &v }

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
