package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"freight-calc/internal/analysis"
	"freight-calc/internal/api/models"
	"freight-calc/internal/config"
	"freight-calc/internal/data"
	"freight-calc/internal/economics"
	"freight-calc/internal/model"
	"freight-calc/internal/observability"
	"freight-calc/internal/threshold"

	"github.com/gin-gonic/gin"
)

// AnalysisCache is the session store behind /recommend and /analysis/:id.
type AnalysisCache = data.SelectionCache[models.RecommendResponse]

const defaultTopN = 5

// CalcHandler handles recalculation, threshold and recommendation requests
type CalcHandler struct {
	dataset *model.Dataset
	econ    config.EconomicsConfig
	sweeps  config.SweepConfig
	cache   *AnalysisCache
	metrics *observability.Metrics
}

// NewCalcHandler creates a new calculator handler. A nil cfg means config.Default().
// Bunker prices the config leaves unset default to the dataset median.
func NewCalcHandler(ds *model.Dataset, cfg *config.Config, cache *AnalysisCache, m *observability.Metrics) *CalcHandler {
	if ds == nil {
		ds = &model.Dataset{}
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &CalcHandler{
		dataset: ds,
		econ:    cfg.Economics.WithPrices(ds.Combinations),
		sweeps:  cfg.Sweeps,
		cache:   cache,
		metrics: m,
	}
}

// Recalculate handles POST /api/v1/recalculate
func (h *CalcHandler) Recalculate(c *gin.Context) {
	var req models.RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	base, ok := h.resolve(c, req.RecordRef)
	if !ok {
		return
	}

	p := h.economicsFor(req.EconomicsInput).Params(req.ExtraDays)
	res := economics.Recalculate(base, p)
	h.metrics.RecordRecalculation()

	rec := model.Recommend(base.BaseProfit(), res.Profit)
	c.JSON(http.StatusOK, models.RecalculateResponse{
		Vessel: base.Vessel,
		Cargo:  base.Cargo,
		Params: p,
		Baseline: models.Baseline{
			Profit: base.BaseProfit(),
			TCE:    base.BaseTCE(),
			Days:   base.BaseDays(),
		},
		Result:         res,
		ProfitDelta:    res.Profit - base.BaseProfit(),
		Recommendation: rec,
		Reasons:        rec.Reasons(),
	})
}

// DelayThreshold handles POST /api/v1/threshold/delay
func (h *CalcHandler) DelayThreshold(c *gin.Context) {
	req, base, pool, ok := h.bindThreshold(c)
	if !ok {
		return
	}
	econ := h.economicsFor(req.EconomicsInput)
	r := h.sweeps.Delay
	if req.Range != nil {
		r = *req.Range
	}

	th, err := threshold.FindDelayThreshold(base, pool, threshold.DelaySweep{
		VLSFOPrice: econ.VLSFOPrice,
		MGOPrice:   econ.MGOPrice,
		SpeedKnots: econ.SpeedKnots,
		DailyHire:  econ.DailyHire,
		OpexPerDay: econ.OpexPerDay,
		Range:      r,
	})
	if err != nil {
		sweepError(c, err)
		return
	}
	h.metrics.RecordSweep("delay", th.Steps, th.Found)

	c.JSON(http.StatusOK, models.ThresholdResponse{
		Sweep:     "delay",
		Base:      base.Key(),
		Range:     effective(r, threshold.DefaultDelayRange),
		PoolSize:  len(pool),
		Threshold: th,
	})
}

// BunkerThreshold handles POST /api/v1/threshold/bunker
func (h *CalcHandler) BunkerThreshold(c *gin.Context) {
	req, base, pool, ok := h.bindThreshold(c)
	if !ok {
		return
	}
	econ := h.economicsFor(req.EconomicsInput)
	r := h.sweeps.Bunker
	if req.Range != nil {
		r = *req.Range
	}

	sweep := threshold.BunkerSweep{
		VLSFOPrice: econ.VLSFOPrice,
		MGOPrice:   econ.MGOPrice,
		SpeedKnots: econ.SpeedKnots,
		ExtraDays:  req.ExtraDays,
		DailyHire:  econ.DailyHire,
		OpexPerDay: econ.OpexPerDay,
		Range:      r,
	}
	th, err := threshold.FindBunkerPriceThreshold(base, pool, sweep)
	if err != nil {
		sweepError(c, err)
		return
	}
	h.metrics.RecordSweep("bunker", th.Steps, th.Found)

	resp := models.ThresholdResponse{
		Sweep:     "bunker",
		Base:      base.Key(),
		Range:     effective(r, threshold.DefaultBunkerRange),
		PoolSize:  len(pool),
		Threshold: th,
	}
	if th.Found {
		price := sweep.VLSFOPriceAt(th.Value)
		resp.VLSFOPriceAtThreshold = &price
	}
	c.JSON(http.StatusOK, resp)
}

// Recommend handles POST /api/v1/recommend. Results are cached per
// selection; a repeated selection returns the stored analysis.
func (h *CalcHandler) Recommend(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	econ := h.economicsFor(models.EconomicsInput{
		VLSFOPrice: req.VLSFOPrice,
		MGOPrice:   req.MGOPrice,
		SpeedKnots: req.SpeedKnots,
	})
	sel := data.Selection{
		Vessel:     req.Vessel,
		Cargo:      req.Cargo,
		VLSFOPrice: econ.VLSFOPrice,
		MGOPrice:   econ.MGOPrice,
		SpeedKnots: econ.SpeedKnots,
		ExtraDays:  req.ExtraDays,
	}

	if id, cached, ok := h.cache.Lookup(sel); ok {
		h.metrics.RecordCacheLookup(true)
		cached.ID = id
		cached.Cached = true
		c.JSON(http.StatusOK, cached)
		return
	}
	h.metrics.RecordCacheLookup(false)

	base, ok := h.find(c, req.Vessel, req.Cargo)
	if !ok {
		return
	}

	n := req.TopN
	if n == 0 {
		n = defaultTopN
	}
	adj := economics.AdjustForBunker(base, econ.VLSFOPrice, econ.MGOPrice)
	rec := adj.Recommendation()
	resp := models.RecommendResponse{
		Vessel:         base.Vessel,
		Cargo:          base.Cargo,
		VLSFOPrice:     econ.VLSFOPrice,
		MGOPrice:       econ.MGOPrice,
		SpeedKnots:     econ.SpeedKnots,
		ExtraDays:      req.ExtraDays,
		Adjustment:     adj,
		Recalculated:   economics.Recalculate(base, econ.Params(req.ExtraDays)),
		Recommendation: rec,
		Reasons:        rec.Reasons(),
		TopAdjusted:    analysis.TopAdjusted(h.dataset.Combinations, econ.VLSFOPrice, econ.MGOPrice, n),
		CreatedAt:      time.Now().UTC(),
	}
	resp.ID = h.cache.Put(sel, resp)
	h.metrics.SetCacheEntries(h.cache.Len())
	h.metrics.RecordRecommendation(string(rec))
	log.Printf("RecommendHandler: %s at VLSFO %.2f MGO %.2f -> %s (id %s)", base.Key(), econ.VLSFOPrice, econ.MGOPrice, rec, resp.ID)

	c.JSON(http.StatusOK, resp)
}

// GetAnalysis handles GET /api/v1/analysis/:id
func (h *CalcHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")
	resp, ok := h.cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "ANALYSIS_NOT_FOUND", fmt.Sprintf("No analysis with id %q (it may have expired)", id))
		return
	}
	resp.ID = id
	resp.Cached = true
	c.JSON(http.StatusOK, resp)
}

// economicsFor overlays request overrides onto the configured defaults.
// An overridden VLSFO price without an MGO price moves MGO with it.
func (h *CalcHandler) economicsFor(in models.EconomicsInput) config.EconomicsConfig {
	econ := config.MergeEconomics(h.econ, in.Config())
	if in.VLSFOPrice != 0 && in.MGOPrice == 0 {
		econ.MGOPrice = data.DefaultMGOPrice(in.VLSFOPrice)
	}
	return econ
}

func (h *CalcHandler) bindThreshold(c *gin.Context) (models.ThresholdRequest, model.VoyageRecord, []model.VoyageRecord, bool) {
	var req models.ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return req, model.VoyageRecord{}, nil, false
	}
	base, ok := h.resolve(c, req.RecordRef)
	if !ok {
		return req, model.VoyageRecord{}, nil, false
	}

	pool := h.dataset.Combinations
	if len(req.Candidates) > 0 {
		for i, cand := range req.Candidates {
			if err := cand.Validate(); err != nil {
				respondError(c, http.StatusBadRequest, "INVALID_RECORD", fmt.Sprintf("candidates[%d]: %v", i, err))
				return req, model.VoyageRecord{}, nil, false
			}
		}
		pool = req.Candidates
	}
	return req, base, pool, true
}

// resolve returns the inline record or looks it up in the dataset.
func (h *CalcHandler) resolve(c *gin.Context, ref models.RecordRef) (model.VoyageRecord, bool) {
	if ref.Record != nil {
		if err := ref.Record.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_RECORD", err.Error())
			return model.VoyageRecord{}, false
		}
		return *ref.Record, true
	}
	if ref.Vessel == "" || ref.Cargo == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "vessel and cargo (or an inline record) are required")
		return model.VoyageRecord{}, false
	}
	return h.find(c, ref.Vessel, ref.Cargo)
}

func (h *CalcHandler) find(c *gin.Context, vessel, cargo string) (model.VoyageRecord, bool) {
	rec, ok := h.dataset.Find(model.Key{Vessel: vessel, Cargo: cargo})
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RECORD_NOT_FOUND",
				Message: "No baseline combination for this vessel and cargo",
				Details: map[string]interface{}{
					"vessel": vessel,
					"cargo":  cargo,
				},
			},
		})
		return model.VoyageRecord{}, false
	}
	return rec, true
}

func sweepError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, threshold.ErrEmptyPool):
		respondError(c, http.StatusUnprocessableEntity, "EMPTY_POOL", err.Error())
	case errors.Is(err, threshold.ErrInvalidSweep):
		respondError(c, http.StatusBadRequest, "INVALID_SWEEP", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "SWEEP_ERROR", err.Error())
	}
}

func effective(r, def threshold.Range) threshold.Range {
	if r == (threshold.Range{}) {
		return def
	}
	return r
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
