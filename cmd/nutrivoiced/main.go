package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/export"
	"github.com/nutrivoice/nutrivoice/internal/journal"
	"github.com/nutrivoice/nutrivoice/internal/llm"
	"github.com/nutrivoice/nutrivoice/internal/llm/gemini"
	"github.com/nutrivoice/nutrivoice/internal/pipeline"
	"github.com/nutrivoice/nutrivoice/internal/repository"
	"github.com/nutrivoice/nutrivoice/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repository.CloseDB(db); err != nil {
			logger.Warn("close db", "error", err)
		}
	}()

	jrnl, err := journal.Open(cfg.Journal.Path, logger)
	if err != nil {
		logger.Error("open journal", "error", err)
		os.Exit(1)
	}
	defer jrnl.Close()

	// LLM stack: one Gemini client behind the timed invoker and the
	// fallback orchestrator.
	client := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		MaxInlineMB: cfg.LLM.MaxInlineMB,
	}, logger)

	catalog, err := llm.NewCatalog(cfg.LLM.Models)
	if err != nil {
		logger.Error("build model catalog", "error", err)
		os.Exit(2)
	}
	invoker := llm.NewTimedInvoker(client, logger)
	orch := llm.NewOrchestrator(invoker, logger)

	processor := pipeline.NewProcessor(logger, catalog, orch, pipeline.Config{
		TranscribeTimeout: cfg.LLM.TranscribeTimeout,
		AnalyzeTimeout:    cfg.LLM.AnalyzeTimeout,
		OverallBudget:     cfg.LLM.OverallBudget,
	}, jrnl)

	meals := repository.NewMealRepository(db)
	users := repository.NewUserRepository(db)
	exporter := export.NewService(meals, logger)

	srv := server.New(logger, processor, meals, users, exporter, cfg.Auth.JWTSecret)
	httpSrv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http.serving", "addr", cfg.Server.HTTPAddr, "models", cfg.LLM.Models)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}
