package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/devsync/ai-engine/common/logger"
	"github.com/devsync/ai-engine/common/otel"
	"github.com/devsync/ai-engine/core/config"
	"github.com/devsync/ai-engine/core/db"
	"github.com/devsync/ai-engine/internal/http/handler"
	"github.com/devsync/ai-engine/internal/http/middleware"
	httprouter "github.com/devsync/ai-engine/internal/http/router"
	"github.com/devsync/ai-engine/internal/llm"
	"github.com/devsync/ai-engine/internal/review"
	"github.com/devsync/ai-engine/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "ai-engine starting",
		"env", cfg.Env,
		"model", cfg.LLM.Model,
		"mock_mode", cfg.MockMode)

	var database *db.DB
	if cfg.DB.Enabled() {
		database, err = db.New(ctx, cfg.DB)
		if err != nil {
			slog.ErrorContext(ctx, "failed to configure database", "error", err)
			os.Exit(1)
		}
		defer database.Close()
	}

	reviewStore := store.NewReviewStore(database)
	if !reviewStore.Configured() {
		slog.WarnContext(ctx, "DATABASE_URL not set, reviews will not be persisted")
	} else if err := reviewStore.Init(ctx); err != nil {
		// Schema init is retried implicitly: saves fail soft until the
		// database comes up, so a cold dependency is not fatal here.
		slog.WarnContext(ctx, "failed to ensure schema", "error", err)
	}

	generator, err := llm.New(llm.Config{
		Provider:  cfg.LLM.Provider,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create generation client", "error", err)
		os.Exit(1)
	}
	if !cfg.LLM.Enabled() && !cfg.MockMode {
		slog.WarnContext(ctx, "LLM_API_KEY not set, reviews will use the fallback path")
	}

	pipeline := review.New(generator, reviewStore, cfg.MockMode)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, pipeline, reviewStore)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, pipeline *review.Pipeline, reviewStore *store.ReviewStore) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	reviewHandler := handler.NewReviewHandler(pipeline, reviewStore, cfg.LLM.Model, cfg.MockMode)
	httprouter.SetupRoutes(router, reviewHandler)

	return router
}
