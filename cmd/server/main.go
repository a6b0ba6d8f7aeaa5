package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"firmware-artifacts-service/internal/adapters/primary/http/handlers"
	"firmware-artifacts-service/internal/adapters/primary/http/middleware"
	"firmware-artifacts-service/internal/adapters/secondary/github"
	"firmware-artifacts-service/internal/adapters/secondary/nightly"
	"firmware-artifacts-service/internal/config"
	output "firmware-artifacts-service/internal/core/ports/output"
	"firmware-artifacts-service/internal/core/services"
	"firmware-artifacts-service/internal/telemetry"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Metrics (Optional - based on config)
	var (
		collector        *telemetry.Collector
		upstreamObserver output.UpstreamObserver = output.NopObserver{}
		cacheObserver    middleware.CacheObserver
	)
	if cfg.Metrics.Enabled {
		collector = telemetry.NewCollector(nil)
		upstreamObserver = collector
		cacheObserver = collector
		log.Info("metrics enabled")
	} else {
		log.Info("metrics disabled")
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports - upstream services)
	ciProvider := github.NewGitHubClient(&cfg.GitHub, upstreamObserver)
	archiveFetcher := nightly.NewNightlyClient(&cfg.Asset, cfg.GitHub.Owner, cfg.GitHub.Repo, upstreamObserver)
	log.WithFields(log.Fields{
		"repo":     cfg.GitHub.Owner + "/" + cfg.GitHub.Repo,
		"workflow": cfg.GitHub.Workflow,
		"unzip":    cfg.Asset.UnzipURL,
	}).Info("upstream clients initialized")

	// Core Services (Application Layer)
	runSvc := services.NewRunResolverService(ciProvider)
	artifactSvc := services.NewArtifactResolverService(ciProvider)
	assetSvc := services.NewAssetProxyService(archiveFetcher, cfg.Asset.MaxArchiveBytes)
	manifestSvc := services.NewManifestService(ciProvider, cfg.Manifest.ProductName)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(runSvc, artifactSvc, assetSvc, manifestSvc, cfg.Server.BasePath)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.CORS(cfg.CORS.MaxAge), middleware.Logging())
	if collector != nil {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if collector != nil {
		router.GET("/metrics", gin.WrapH(collector.Handler()))
	}
	if cfg.Server.StaticDir != "" {
		router.Static("/static", cfg.Server.StaticDir)
		log.Infof("serving static files from %s", cfg.Server.StaticDir)
	}

	api := router.Group(cfg.Server.BasePath)
	if cfg.Cache.Enabled {
		cache := middleware.NewResponseCache(cfg.Cache.MaxEntries, cfg.Cache.MaxBytes, cfg.Cache.TTL, cacheObserver)
		api.Use(cache.Middleware())
		log.Infof("response cache enabled (ttl %s, max %d entries, max %d bytes)", cfg.Cache.TTL, cfg.Cache.MaxEntries, cfg.Cache.MaxBytes)
	}
	h.RegisterRoutes(api)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
