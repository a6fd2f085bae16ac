package api

import (
	"net/http"

	"freight-calc/internal/api/handlers"
	"freight-calc/internal/api/middleware"
	"freight-calc/internal/config"
	"freight-calc/internal/model"
	"freight-calc/internal/observability"

	"github.com/gin-gonic/gin"
)

// Options wires the router's dependencies. Nil Config means config.Default();
// nil Cache or Metrics disable caching or metrics.
type Options struct {
	Dataset     *model.Dataset
	Config      *config.Config
	Cache       *handlers.AnalysisCache
	Metrics     *observability.Metrics
	CORSOrigins []string
	// RequestLog enables the per-request log line.
	RequestLog bool
}

// NewRouter builds the gin engine with every /api/v1 route registered.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(opts.CORSOrigins))
	if opts.RequestLog {
		router.Use(middleware.Logger())
	}
	router.Use(middleware.Metrics(opts.Metrics))
	router.Use(middleware.ErrorHandler())

	calcHandler := handlers.NewCalcHandler(opts.Dataset, opts.Config, opts.Cache, opts.Metrics)
	datasetHandler := handlers.NewDatasetHandler(opts.Dataset, opts.Config)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/recalculate", calcHandler.Recalculate)
		api.POST("/threshold/delay", calcHandler.DelayThreshold)
		api.POST("/threshold/bunker", calcHandler.BunkerThreshold)
		api.POST("/recommend", calcHandler.Recommend)
		api.GET("/analysis/:id", calcHandler.GetAnalysis)

		api.GET("/vessels", datasetHandler.ListVessels)
		api.GET("/cargoes", datasetHandler.ListCargoes)
		api.GET("/defaults", datasetHandler.Defaults)
		api.GET("/top", datasetHandler.Top)
		api.GET("/report", datasetHandler.Report)
		api.GET("/comparison", datasetHandler.Comparison)
		api.GET("/risk", datasetHandler.Risk)
		api.GET("/context", datasetHandler.Context)
	}

	return router
}
