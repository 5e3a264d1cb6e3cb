package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/daycards/backend/internal/api"
	"github.com/daycards/backend/internal/domain/question"
	"github.com/daycards/backend/internal/grader"
	"github.com/daycards/backend/internal/infrastructure/config"
	"github.com/daycards/backend/internal/service"
	"github.com/daycards/backend/internal/store"

	_ "github.com/daycards/backend/docs" // swagger docs
)

// @title           Daycards API
// @version         1.0
// @description     Day-batch multiple-choice study tool: practice 40 questions a day, track progress and replay mistakes.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// ── Dependencies ────────────────────────────────────────────────
	bank, err := question.Load(cfg.QuestionsPath, cfg.PageSize)
	if err != nil {
		logger.Error("failed to load questions", "path", cfg.QuestionsPath, "error", err)
		os.Exit(1)
	}
	for _, skipped := range bank.Skipped {
		logger.Warn("skipped malformed question", "index", skipped.Index, "field", skipped.Field, "reason", skipped.Reason)
	}
	logger.Info("loaded questions", "count", len(bank.Questions), "days", bank.Days(), "skipped", len(bank.Skipped))

	backend, err := openBackend(cfg)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	g, err := grader.New(grader.Policy(cfg.GradingPolicy))
	if err != nil {
		logger.Error("invalid grading policy", "error", err)
		os.Exit(1)
	}

	practiceSvc := service.NewPracticeService(bank, service.NewStores(backend, cfg.MaxDay), g, nil, logger)
	backupSvc := service.NewBackupService(backend, logger)
	handler := api.NewHandler(practiceSvc, backupSvc, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"store", cfg.StoreBackend,
		"grading", g.Policy(),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreBackend {
	case "json":
		return store.NewJSON(cfg.DataDir)
	case "sqlite":
		return store.NewSQLite(cfg.SQLitePath)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
