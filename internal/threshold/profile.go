package threshold

import (
	"fmt"

	"freight-calc/internal/economics"
	"freight-calc/internal/model"
)

// Parameter names the swept input of a sensitivity profile.
// Keep these values stable; they are intended for CSV output.
type Parameter string

const (
	ParamDelayDays     Parameter = "DELAY_DAYS"
	ParamVLSFOIncrease Parameter = "VLSFO_PCT_INCREASE"
)

// ProfileRow is one (sweep value, candidate) cell of a sensitivity profile.
type ProfileRow struct {
	Index     int
	Parameter Parameter
	Value     float64

	Vessel string
	Cargo  string

	VLSFOPrice float64
	ExtraDays  float64

	Days    float64
	VLSFOMT float64
	MGOMT   float64
	Profit  float64
	TCE     float64

	Rank int // 1 = most profitable at this value
	Top  bool
}

// Profile is the full sweep table: every value x every candidate, with no
// early exit. The first flip (if any) is reported alongside.
type Profile struct {
	Parameter Parameter
	Rows      []ProfileRow
	Threshold Threshold
}

// DelayProfile tabulates every candidate's economics across the delay range.
func DelayProfile(base model.VoyageRecord, pool []model.VoyageRecord, s DelaySweep) (*Profile, error) {
	return profile(base, pool, s.Range.or(DefaultDelayRange), ParamDelayDays, s.paramsAt)
}

// BunkerProfile tabulates every candidate's economics across the VLSFO increase range.
func BunkerProfile(base model.VoyageRecord, pool []model.VoyageRecord, s BunkerSweep) (*Profile, error) {
	return profile(base, pool, s.Range.or(DefaultBunkerRange), ParamVLSFOIncrease, s.paramsAt)
}

func profile(base model.VoyageRecord, pool []model.VoyageRecord, r Range, param Parameter, at paramsAt) (*Profile, error) {
	th, err := search(base, pool, r, at)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", param, err)
	}

	values := r.Values()
	rows := make([]ProfileRow, 0, len(values)*len(pool))
	idx := 0
	for _, v := range values {
		p := at(v)
		results := make([]economics.Result, len(pool))
		for i, rec := range pool {
			results[i] = economics.Recalculate(rec, p)
		}
		for i, rec := range pool {
			rank := 1
			for j := range results {
				if results[j].Profit > results[i].Profit || (results[j].Profit == results[i].Profit && j < i) {
					rank++
				}
			}
			rows = append(rows, ProfileRow{
				Index:      idx,
				Parameter:  param,
				Value:      v,
				Vessel:     rec.Vessel,
				Cargo:      rec.Cargo,
				VLSFOPrice: p.VLSFOPrice,
				ExtraDays:  p.ExtraDays,
				Days:       results[i].Days,
				VLSFOMT:    results[i].Fuel.VLSFOMT,
				MGOMT:      results[i].Fuel.MGOMT,
				Profit:     results[i].Profit,
				TCE:        results[i].TCE,
				Rank:       rank,
				Top:        rank == 1,
			})
			idx++
		}
	}

	return &Profile{Parameter: param, Rows: rows, Threshold: th}, nil
}
