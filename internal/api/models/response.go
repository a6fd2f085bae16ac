package models

import (
	"time"

	"freight-calc/internal/analysis"
	"freight-calc/internal/economics"
	"freight-calc/internal/model"
	"freight-calc/internal/threshold"
)

// Baseline echoes the recorded figures a recalculation started from.
type Baseline struct {
	Profit float64 `json:"profit"`
	TCE    float64 `json:"tce"`
	Days   float64 `json:"days"`
}

// RecalculateResponse represents the response from POST /api/v1/recalculate
type RecalculateResponse struct {
	Vessel         string               `json:"vessel"`
	Cargo          string               `json:"cargo"`
	Params         economics.Params     `json:"params"`
	Baseline       Baseline             `json:"baseline"`
	Result         economics.Result     `json:"result"`
	ProfitDelta    float64              `json:"profit_delta"`
	Recommendation model.Recommendation `json:"recommendation"`
	Reasons        []string             `json:"reasons"`
}

// ThresholdResponse represents the response from either threshold sweep
type ThresholdResponse struct {
	Sweep     string              `json:"sweep"` // "delay" or "bunker"
	Base      model.Key           `json:"base"`
	Range     threshold.Range     `json:"range"`
	PoolSize  int                 `json:"pool_size"`
	Threshold threshold.Threshold `json:"threshold"`
	// Bunker sweep only: the VLSFO price at the threshold percentage.
	VLSFOPriceAtThreshold *float64 `json:"vlsfo_price_at_threshold,omitempty"`
}

// RecommendResponse is stored in the selection cache and returned by
// POST /api/v1/recommend and GET /api/v1/analysis/:id
type RecommendResponse struct {
	ID             string                   `json:"id"`
	Vessel         string                   `json:"vessel"`
	Cargo          string                   `json:"cargo"`
	VLSFOPrice     float64                  `json:"vlsfo_price"`
	MGOPrice       float64                  `json:"mgo_price"`
	SpeedKnots     float64                  `json:"speed_knots"`
	ExtraDays      float64                  `json:"extra_days"`
	Adjustment     economics.Adjustment     `json:"adjustment"`
	Recalculated   economics.Result         `json:"recalculated"`
	Recommendation model.Recommendation     `json:"recommendation"`
	Reasons        []string                 `json:"reasons"`
	TopAdjusted    []analysis.AdjustedEntry `json:"top_adjusted"`
	CreatedAt      time.Time                `json:"created_at"`
	Cached         bool                     `json:"cached"`
}

// TopResponse represents the response from GET /api/v1/top
type TopResponse struct {
	Metric   string                   `json:"metric"` // "tce", "profit" or "adj_profit"
	Entries  []analysis.TopEntry      `json:"entries,omitempty"`
	Adjusted []analysis.AdjustedEntry `json:"adjusted,omitempty"`
	Count    int                      `json:"count"`
}

// DefaultsResponse suggests form inputs derived from the loaded dataset.
type DefaultsResponse struct {
	VLSFOPrice float64 `json:"vlsfo_price"`
	MGOPrice   float64 `json:"mgo_price"`
	SpeedKnots float64 `json:"speed_knots"`
	DailyHire  float64 `json:"daily_hire"`
	OpexPerDay float64 `json:"opex_per_day"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
