package models

import (
	"freight-calc/internal/config"
	"freight-calc/internal/model"
	"freight-calc/internal/threshold"
)

// RecordRef names a baseline combination by vessel and cargo, or carries
// one inline. An inline record wins over the lookup.
type RecordRef struct {
	Vessel string              `json:"vessel"`
	Cargo  string              `json:"cargo"`
	Record *model.VoyageRecord `json:"record,omitempty"`
}

// EconomicsInput holds per-request overrides. Zero means "use the
// configured default".
type EconomicsInput struct {
	VLSFOPrice float64 `json:"vlsfo_price" binding:"gte=0"`
	MGOPrice   float64 `json:"mgo_price" binding:"gte=0"`
	SpeedKnots float64 `json:"speed_knots" binding:"gte=0"`
	DailyHire  float64 `json:"daily_hire" binding:"gte=0"`
	OpexPerDay float64 `json:"opex_per_day" binding:"gte=0"`
}

func (e EconomicsInput) Config() config.EconomicsConfig {
	return config.EconomicsConfig{
		VLSFOPrice: e.VLSFOPrice,
		MGOPrice:   e.MGOPrice,
		SpeedKnots: e.SpeedKnots,
		DailyHire:  e.DailyHire,
		OpexPerDay: e.OpexPerDay,
	}
}

// RecalculateRequest represents the request body for POST /api/v1/recalculate
type RecalculateRequest struct {
	RecordRef
	EconomicsInput
	ExtraDays float64 `json:"extra_days" binding:"gte=0"`
}

// ThresholdRequest represents the request body for both threshold sweeps.
// ExtraDays is only used by the bunker sweep. Candidates default to the
// loaded combinations.
type ThresholdRequest struct {
	RecordRef
	EconomicsInput
	ExtraDays  float64              `json:"extra_days" binding:"gte=0"`
	Range      *threshold.Range     `json:"range,omitempty"`
	Candidates []model.VoyageRecord `json:"candidates,omitempty"`
}

// RecommendRequest represents the request body for POST /api/v1/recommend
type RecommendRequest struct {
	Vessel     string  `json:"vessel" binding:"required"`
	Cargo      string  `json:"cargo" binding:"required"`
	VLSFOPrice float64 `json:"vlsfo_price" binding:"gte=0"`
	MGOPrice   float64 `json:"mgo_price" binding:"gte=0"`
	SpeedKnots float64 `json:"speed_knots" binding:"gte=0"`
	ExtraDays  float64 `json:"extra_days" binding:"gte=0"`
	TopN       int     `json:"top_n,omitempty" binding:"gte=0"` // default: 5
}

// TopQuery binds GET /api/v1/top. When VLSFOPrice is set the ranking is by
// adjusted profit at the given prices. Metric forces the baseline ranking
// column instead of picking TCE when the data carries it.
type TopQuery struct {
	N          int     `form:"n" binding:"gte=0"` // default: 5
	VLSFOPrice float64 `form:"vlsfo_price" binding:"gte=0"`
	MGOPrice   float64 `form:"mgo_price" binding:"gte=0"`
	Metric     string  `form:"metric" binding:"omitempty,oneof=tce profit"`
	Format     string  `form:"format" binding:"omitempty,oneof=json csv"`
}
