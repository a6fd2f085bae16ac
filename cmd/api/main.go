package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"freight-calc/internal/api"
	"freight-calc/internal/api/models"
	"freight-calc/internal/config"
	"freight-calc/internal/data"
	"freight-calc/internal/observability"

	"github.com/gin-gonic/gin"
)

func main() {
	serverFile := flag.String("server-config", "", "Path to server YAML (default: ./server.yaml if present)")
	flag.Parse()

	srv, err := config.LoadServerConfig(*serverFile)
	if err != nil {
		log.Fatalf("Failed to load server config: %v", err)
	}

	cfg := config.Default()
	if srv.ConfigPath != "" {
		cfg, err = config.Load(srv.ConfigPath)
		if err != nil {
			log.Fatalf("Failed to load calculator config %s: %v", srv.ConfigPath, err)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", wd)
	}
	ds, err := data.LoadDataset(cfg.DatasetDir)
	if err != nil {
		log.Fatalf("Failed to load dataset from %s: %v", cfg.DatasetDir, err)
	}

	metrics := observability.NewMetrics("")
	metrics.SetDatasetSize(len(ds.Combinations), len(ds.Assignments), len(ds.Scenarios))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := data.NewSelectionCache[models.RecommendResponse](srv.CacheTTL)
	go cache.Run(ctx, 5*time.Minute)

	if srv.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Options{
		Dataset:     ds,
		Config:      cfg,
		Cache:       cache,
		Metrics:     metrics,
		CORSOrigins: srv.CORSOrigins,
		RequestLog:  true,
	})
	serveStatic(router, srv.StaticDir)

	addr := fmt.Sprintf(":%s", srv.Port)
	server := &http.Server{Addr: addr, Handler: router}
	go func() {
		log.Printf("Starting API server on %s (env=%s)", addr, srv.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// serveStatic serves a built front-end from dir (if it exists), with
// index.html as the fallback for non-API routes.
func serveStatic(router *gin.Engine, dir string) {
	if dir == "" {
		dir = "./web/dist"
	}
	if _, err := os.Stat(dir); err != nil {
		log.Printf("Static directory %s not found, skipping static file serving", dir)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
			})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.Printf("Serving static files from %s", dir)
}
