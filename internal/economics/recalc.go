package economics

import (
	"math"

	"freight-calc/internal/model"
)

const (
	DefaultDailyHire  = 12000.0
	DefaultOpexPerDay = 3000.0

	// minSpeedKnots clamps speed denominators so a zero or negative speed
	// cannot blow up the duration or fuel scaling.
	minSpeedKnots = 1.0
)

// Params are the user-adjustable inputs for a recalculation.
// Units:
// - VLSFOPrice, MGOPrice: $/MT
// - SpeedKnots: knots
// - ExtraDays: waiting/delay days added on top of sailing time
// - DailyHire, OpexPerDay: $/day
type Params struct {
	VLSFOPrice float64 `json:"vlsfo_price" yaml:"vlsfo_price"`
	MGOPrice   float64 `json:"mgo_price" yaml:"mgo_price"`
	SpeedKnots float64 `json:"speed_knots" yaml:"speed_knots"`
	ExtraDays  float64 `json:"extra_days" yaml:"extra_days"`
	DailyHire  float64 `json:"daily_hire" yaml:"daily_hire"`
	OpexPerDay float64 `json:"opex_per_day" yaml:"opex_per_day"`
}

// DefaultParams returns Params with the standard hire and opex rates.
func DefaultParams(vlsfoPrice, mgoPrice, speedKnots, extraDays float64) Params {
	return Params{
		VLSFOPrice: vlsfoPrice,
		MGOPrice:   mgoPrice,
		SpeedKnots: speedKnots,
		ExtraDays:  extraDays,
		DailyHire:  DefaultDailyHire,
		OpexPerDay: DefaultOpexPerDay,
	}
}

// WithDefaults fills zero hire/opex rates with the standard values.
func (p Params) WithDefaults() Params {
	if p.DailyHire == 0 {
		p.DailyHire = DefaultDailyHire
	}
	if p.OpexPerDay == 0 {
		p.OpexPerDay = DefaultOpexPerDay
	}
	return p
}

// Fuel is consumption per grade in metric tons.
type Fuel struct {
	VLSFOMT float64 `json:"vlsfo_mt"`
	MGOMT   float64 `json:"mgo_mt"`
}

// Result is a recalculated voyage. It is never cached; each call builds one.
type Result struct {
	Profit float64 `json:"profit"`
	TCE    float64 `json:"tce"`
	Days   float64 `json:"days"`
	Fuel   Fuel    `json:"fuel"`

	Revenue    float64 `json:"revenue"`
	BunkerCost float64 `json:"bunker_cost"`
	TimeCost   float64 `json:"time_cost"`
}

// Recalculate re-derives fuel burn, costs, profit and TCE for base under p.
//
// Revenue is backed out of the baseline (profit + baseline bunker cost +
// baseline time cost) and held fixed; only costs move with the inputs:
// - duration scales with base speed / new speed (distance held constant)
// - fuel burn scales with (new speed / base speed)^3
// - time cost is total days * (hire + opex)
//
// Missing baseline fields fall back to their documented defaults. The
// function never panics and TCE is 0 when the total duration is not positive.
func Recalculate(base model.VoyageRecord, p Params) Result {
	baseDays := base.BaseDays()
	baseSpeed := base.BaseSpeed()
	dailyRate := base.HireRate(p.DailyHire) + p.OpexPerDay

	speedFactor := baseSpeed / math.Max(p.SpeedKnots, minSpeedKnots)
	sailingDays := baseDays * speedFactor
	totalDays := sailingDays + p.ExtraDays

	fuelFactor := math.Pow(p.SpeedKnots/math.Max(baseSpeed, minSpeedKnots), 3)
	fuel := Fuel{
		VLSFOMT: base.BaseVLSFOMT() * fuelFactor,
		MGOMT:   base.BaseMGOMT() * fuelFactor,
	}

	bunkerCost := fuel.VLSFOMT*p.VLSFOPrice + fuel.MGOMT*p.MGOPrice
	timeCost := totalDays * dailyRate

	baseBunkerCost := base.BaseVLSFOMT()*base.BaseVLSFOPrice(p.VLSFOPrice) +
		base.BaseMGOMT()*base.BaseMGOPrice(p.MGOPrice)
	baseTimeCost := baseDays * dailyRate
	revenue := base.BaseProfit() + baseBunkerCost + baseTimeCost

	profit := revenue - bunkerCost - timeCost
	tce := 0.0
	if totalDays > 0 {
		tce = profit / totalDays
	}

	return Result{
		Profit:     profit,
		TCE:        tce,
		Days:       totalDays,
		Fuel:       fuel,
		Revenue:    revenue,
		BunkerCost: bunkerCost,
		TimeCost:   timeCost,
	}
}
