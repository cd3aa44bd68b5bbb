package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/config"
	"github.com/kailas-cloud/navegador/internal/db"
	dbRedis "github.com/kailas-cloud/navegador/internal/db/redis"
	logpkg "github.com/kailas-cloud/navegador/internal/logger"
	"github.com/kailas-cloud/navegador/internal/metrics"
	budgetrepo "github.com/kailas-cloud/navegador/internal/repository/budget"
	"github.com/kailas-cloud/navegador/internal/repository/catalog"
	historyrepo "github.com/kailas-cloud/navegador/internal/repository/history"
	"github.com/kailas-cloud/navegador/internal/repository/triagecache"
	chiTransport "github.com/kailas-cloud/navegador/internal/transport/chi"
	openaiChat "github.com/kailas-cloud/navegador/internal/transport/openai"
	budgetuc "github.com/kailas-cloud/navegador/internal/usecase/budget"
	healthuc "github.com/kailas-cloud/navegador/internal/usecase/health"
	historyuc "github.com/kailas-cloud/navegador/internal/usecase/history"
	matchuc "github.com/kailas-cloud/navegador/internal/usecase/match"
	triageuc "github.com/kailas-cloud/navegador/internal/usecase/triage"
	usageuc "github.com/kailas-cloud/navegador/internal/usecase/usage"
	"github.com/kailas-cloud/navegador/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting navegador API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("llm_model", cfg.LLM.Model),
	)

	// Valkey and Redis speak the same RESP subset we use.
	var store db.Store
	store, err = dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		Standalone: cfg.Database.Standalone,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterLLMMetrics()

	locations, err := catalog.LoadOrDefault(cfg.Triage.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load service catalog", zap.Error(err), zap.String("path", cfg.Triage.CatalogPath))
	}
	logger.Info("Service catalog loaded", zap.Int("locations", locations.Len()))

	tz, err := time.LoadLocation(cfg.Triage.Timezone)
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}

	// Single budget Tracker shared by the chat chain and the usage service.
	var tracker *budgetuc.Tracker
	budgetCfg := cfg.LLM.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := budgetuc.ActionWarn
		if budgetCfg.Action == "reject" {
			action = budgetuc.ActionReject
		}
		tracker = budgetuc.NewTracker(
			cfg.LLM.Provider, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		tracker.WithStore(ctx, budgetrepo.New(store, 0, 0))
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*Tracker)(nil) wrapped in Checker != nil.
	var checker budgetuc.Checker
	if tracker != nil {
		checker = tracker
	}

	chat := openaiChat.NewChat(&openaiChat.Config{
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		Model:             cfg.LLM.Model,
		Temperature:       cfg.LLM.Temperature,
		Provider:          cfg.LLM.Provider,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		Burst:             cfg.LLM.Burst,
		Timeout:           time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:            logger,
	})
	instrumented := budgetuc.NewInstrumentedChat(chat, cfg.LLM.Provider, cfg.LLM.Model, checker, logger)

	matchSvc := matchuc.New(locations).WithTopK(cfg.Triage.TopK)
	triageSvc := triageuc.New(instrumented, matchSvc, cfg.Triage.TopK).
		WithMaxReportChars(cfg.Triage.MaxReportChars).
		WithLocation(tz)

	var analyzer chiTransport.Analyzer = triageSvc
	if cfg.Triage.CacheTTLSec > 0 {
		analyzer = triagecache.New(
			triageSvc, store, time.Duration(cfg.Triage.CacheTTLSec)*time.Second,
			triageSvc.Clock, metrics.TriageCacheTotal, logger,
		)
	}

	historySvc := historyuc.New(historyrepo.New(store, cfg.History.MaxItems))

	var budgetReader usageuc.BudgetReader
	if tracker != nil {
		budgetReader = tracker
	}
	usageSvc := usageuc.New(budgetReader, cfg.LLM.Provider, cfg.LLM.Budget.CostPerMillionTokens)

	healthSvc := healthuc.New(store, chat)

	server := chiTransport.NewServer(analyzer, matchSvc, historySvc, usageSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
