package economics

import "freight-calc/internal/model"

// Adjustment is the quick re-pricing of a baseline combination when only
// bunker prices change: duration and consumption are taken as recorded.
type Adjustment struct {
	OrigProfit   float64 `json:"orig_profit"`
	AdjProfit    float64 `json:"adj_profit"`
	OrigTCE      float64 `json:"orig_tce"`
	AdjTCE       float64 `json:"adj_tce"`
	Days         float64 `json:"days"`
	TotalVLSFOMT float64 `json:"total_vlsfo_mt"`
	TotalMGOMT   float64 `json:"total_mgo_mt"`
}

// AdjustForBunker subtracts the bunker cost delta between the recorded
// prices and the new ones from the baseline profit.
func AdjustForBunker(base model.VoyageRecord, vlsfoPrice, mgoPrice float64) Adjustment {
	days := base.BaseDays()
	vlsfoMT := base.BaseVLSFOMT()
	mgoMT := base.BaseMGOMT()

	delta := (vlsfoPrice-base.BaseVLSFOPrice(vlsfoPrice))*vlsfoMT +
		(mgoPrice-base.BaseMGOPrice(mgoPrice))*mgoMT
	adj := base.BaseProfit() - delta

	adjTCE := 0.0
	if days > 0 {
		adjTCE = adj / days
	}
	return Adjustment{
		OrigProfit:   base.BaseProfit(),
		AdjProfit:    adj,
		OrigTCE:      base.BaseTCE(),
		AdjTCE:       adjTCE,
		Days:         days,
		TotalVLSFOMT: vlsfoMT,
		TotalMGOMT:   mgoMT,
	}
}

// Recommendation applies the assign/hedge/decline rule to the adjustment.
func (a Adjustment) Recommendation() model.Recommendation {
	return model.Recommend(a.OrigProfit, a.AdjProfit)
}
