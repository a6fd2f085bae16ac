package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"freight-calc/internal/analysis"
	"freight-calc/internal/api/models"
	"freight-calc/internal/config"
	"freight-calc/internal/data"
	"freight-calc/internal/model"

	"github.com/gin-gonic/gin"
)

// DatasetHandler serves lookups and reports over the loaded baseline tables
type DatasetHandler struct {
	dataset *model.Dataset
	econ    config.EconomicsConfig
}

// NewDatasetHandler creates a new dataset handler. A nil cfg means config.Default().
func NewDatasetHandler(ds *model.Dataset, cfg *config.Config) *DatasetHandler {
	if ds == nil {
		ds = &model.Dataset{}
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &DatasetHandler{dataset: ds, econ: cfg.Economics.WithPrices(ds.Combinations)}
}

// ListVessels handles GET /api/v1/vessels
func (h *DatasetHandler) ListVessels(c *gin.Context) {
	vessels := data.Vessels(h.dataset.Combinations)
	c.JSON(http.StatusOK, gin.H{
		"vessels": vessels,
		"count":   len(vessels),
	})
}

// ListCargoes handles GET /api/v1/cargoes. An optional vessel query
// parameter narrows the list to that vessel's combinations.
func (h *DatasetHandler) ListCargoes(c *gin.Context) {
	records := h.dataset.Combinations
	if vessel := c.Query("vessel"); vessel != "" {
		filtered := []model.VoyageRecord{}
		for _, r := range records {
			if r.Vessel == vessel {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	cargoes := data.Cargoes(records)
	c.JSON(http.StatusOK, gin.H{
		"cargoes": cargoes,
		"count":   len(cargoes),
	})
}

// Defaults handles GET /api/v1/defaults. These are the values a request
// gets when it leaves the field at zero.
func (h *DatasetHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultsResponse{
		VLSFOPrice: h.econ.VLSFOPrice,
		MGOPrice:   h.econ.MGOPrice,
		SpeedKnots: h.econ.SpeedKnots,
		DailyHire:  h.econ.DailyHire,
		OpexPerDay: h.econ.OpexPerDay,
	})
}

// Top handles GET /api/v1/top
func (h *DatasetHandler) Top(c *gin.Context) {
	var q models.TopQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	n := q.N
	if n == 0 {
		n = defaultTopN
	}

	if q.VLSFOPrice == 0 {
		if q.Format == "csv" {
			respondError(c, http.StatusBadRequest, "MISSING_PARAM", "vlsfo_price is required for csv export")
			return
		}
		entries, metric := h.top(q.Metric, n)
		c.JSON(http.StatusOK, models.TopResponse{
			Metric:  string(metric),
			Entries: entries,
			Count:   len(entries),
		})
		return
	}

	mgo := q.MGOPrice
	if mgo == 0 {
		mgo = data.DefaultMGOPrice(q.VLSFOPrice)
	}
	adjusted := analysis.TopAdjusted(h.dataset.Combinations, q.VLSFOPrice, mgo, n)

	if q.Format == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="top_adjusted.csv"`)
		c.Status(http.StatusOK)
		if err := analysis.EncodeTopAdjustedCSV(c.Writer, adjusted); err != nil {
			_ = c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, models.TopResponse{
		Metric:   "adj_profit",
		Adjusted: adjusted,
		Count:    len(adjusted),
	})
}

func (h *DatasetHandler) top(metric string, n int) ([]analysis.TopEntry, analysis.Metric) {
	if metric == "" {
		return analysis.TopN(h.dataset, n)
	}
	m := analysis.Metric(metric)
	return analysis.TopNBy(h.dataset.Combinations, m, n), m
}

// Report handles GET /api/v1/report
func (h *DatasetHandler) Report(c *gin.Context) {
	r, err := analysis.BuildReport(h.dataset)
	if err != nil {
		analysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Comparison handles GET /api/v1/comparison
func (h *DatasetHandler) Comparison(c *gin.Context) {
	cmp, err := analysis.Compare(h.dataset)
	if err != nil {
		analysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Risk handles GET /api/v1/risk
func (h *DatasetHandler) Risk(c *gin.Context) {
	r, err := analysis.AssessRisk(h.dataset.Scenarios)
	if err != nil {
		analysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Context handles GET /api/v1/context
func (h *DatasetHandler) Context(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.BuildContext(h.dataset))
}

func analysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrNoAssignments):
		respondError(c, http.StatusNotFound, "ASSIGNMENTS_NOT_FOUND", fmt.Sprintf("%v: load %s", err, data.AssignmentsFile))
	case errors.Is(err, analysis.ErrNoScenarios):
		respondError(c, http.StatusNotFound, "SCENARIOS_NOT_FOUND", fmt.Sprintf("%v: load %s", err, data.ScenariosFile))
	default:
		respondError(c, http.StatusInternalServerError, "ANALYSIS_ERROR", err.Error())
	}
}
