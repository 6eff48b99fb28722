package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/nutrivoice/nutrivoice/constants"
	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/llm"
	"github.com/nutrivoice/nutrivoice/internal/llm/gemini"
	"github.com/nutrivoice/nutrivoice/internal/pipeline"
)

// mealpipe runs the extraction pipeline from the command line, without the
// HTTP server or the database: useful for prompt tuning and latency checks
// against the live models.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: mealpipe <meal description> [times]")
		os.Exit(2)
	}
	text := os.Args[1]
	times := 1
	if len(os.Args) >= 3 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			times = n
		}
	}

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		logger.Error("GEMINI_API_KEY env var is required")
		os.Exit(2)
	}

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
	}, nil)

	for i := 1; i <= times; i++ {
		runCtx, cancelRun := context.WithTimeout(context.Background(), 2*time.Minute)
		start := time.Now()

		res, err := processor.Run(runCtx, pipeline.Input{Text: text}, constants.PurposeAnalyze)
		cancelRun()

		if err != nil {
			logger.Error("mealpipe.run.error", "iter", i, "err", err)
			continue
		}

		out, _ := json.MarshalIndent(res.Record, "", "  ")
		os.Stdout.Write(append(out, '\n'))
		logger.Info("mealpipe.run.ok",
			"iter", i,
			"model", res.ModelID,
			"items", len(res.Record.Items),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)

		if i < times {
			time.Sleep(750 * time.Millisecond)
		}
	}
}
