package threshold

import (
	"errors"
	"math"

	"freight-calc/internal/economics"
	"freight-calc/internal/model"
)

// Epsilon is the minimum profit gap between the new top choice and the
// baseline before a ranking change counts as a flip.
const Epsilon = 1e-3

var (
	// ErrEmptyPool is returned when a sweep is asked to rank no candidates.
	ErrEmptyPool = errors.New("threshold: candidate pool is empty")
	// ErrInvalidSweep is returned for a non-positive step, an inverted range
	// or a range with more than MaxSweepPoints values.
	ErrInvalidSweep = errors.New("threshold: sweep needs step > 0, end >= start and at most 100000 points")
)

// MaxSweepPoints bounds the number of values one sweep may evaluate.
const MaxSweepPoints = 100_000

// Choice is one candidate's recalculated profit at a sweep value.
type Choice struct {
	Vessel string  `json:"vessel"`
	Cargo  string  `json:"cargo"`
	Profit float64 `json:"profit"`
}

func (c Choice) Key() model.Key { return model.Key{Vessel: c.Vessel, Cargo: c.Cargo} }

// Threshold is the outcome of a sweep. Found is false when the range was
// exhausted without the best assignment changing; that is a normal result.
type Threshold struct {
	Found   bool     `json:"found"`
	Value   float64  `json:"value"`
	Top     *Choice  `json:"top_choice,omitempty"`
	Profits []Choice `json:"profits,omitempty"`
	Steps   int      `json:"steps"` // sweep values evaluated
}

// Range is an inclusive, ascending sweep over [Start, End] in Step increments.
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Step  float64 `json:"step" yaml:"step"`
}

// Validate rejects a non-positive step, an inverted range, non-finite
// bounds and ranges that would produce more than MaxSweepPoints values.
func (r Range) Validate() error {
	if !(r.Step > 0) || r.End < r.Start || math.IsInf(r.End, 0) || math.IsInf(r.Start, 0) || math.IsNaN(r.Start) || math.IsNaN(r.End) {
		return ErrInvalidSweep
	}
	if n := r.intervals(); math.IsNaN(n) || math.IsInf(n, 0) || n+1 > MaxSweepPoints {
		return ErrInvalidSweep
	}
	return nil
}

// intervals is the number of whole steps between Start and End.
func (r Range) intervals() float64 {
	return math.Floor((r.End-r.Start)/r.Step + 1e-9)
}

func (r Range) or(def Range) Range {
	if r == (Range{}) {
		return def
	}
	return r
}

// Values returns the sweep points. Each point is computed as Start+i*Step
// so rounding does not accumulate; End is included when it lies on the grid.
func (r Range) Values() []float64 {
	if r.Validate() != nil {
		return nil
	}
	n := int(r.intervals()) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Start + float64(i)*r.Step
	}
	return out
}

// paramsAt builds the recalculation inputs for one sweep value.
type paramsAt func(v float64) economics.Params

// rank recalculates every candidate and returns all profits plus the
// index of the best one. Ties keep the earliest candidate in pool order.
func rank(pool []model.VoyageRecord, p economics.Params) ([]Choice, int) {
	profits := make([]Choice, len(pool))
	best := 0
	for i, rec := range pool {
		res := economics.Recalculate(rec, p)
		profits[i] = Choice{Vessel: rec.Vessel, Cargo: rec.Cargo, Profit: res.Profit}
		if profits[i].Profit > profits[best].Profit {
			best = i
		}
	}
	return profits, best
}

// search scans the range in ascending order and stops at the first value
// where a different assignment beats the baseline by more than Epsilon.
// Only the first crossing is reported; curves that cross back later are
// not examined.
func search(base model.VoyageRecord, pool []model.VoyageRecord, r Range, at paramsAt) (Threshold, error) {
	if len(pool) == 0 {
		return Threshold{}, ErrEmptyPool
	}
	if err := r.Validate(); err != nil {
		return Threshold{}, err
	}

	baseKey := base.Key()
	baseProfit := economics.Recalculate(base, at(r.Start)).Profit

	steps := 0
	for _, v := range r.Values() {
		steps++
		profits, best := rank(pool, at(v))
		top := profits[best]
		if top.Key() != baseKey && math.Abs(top.Profit-baseProfit) > Epsilon {
			return Threshold{Found: true, Value: v, Top: &top, Profits: profits, Steps: steps}, nil
		}
	}
	return Threshold{Steps: steps}, nil
}
