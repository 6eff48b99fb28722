package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutrivoice/nutrivoice/constants"
	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/entity"
	"github.com/nutrivoice/nutrivoice/internal/llm"
)

// Config holds per-purpose pipeline timeouts. Transcription gets a shorter
// per-attempt deadline than full analysis; both are request-level values,
// not globals.
type Config struct {
	TranscribeTimeout time.Duration
	AnalyzeTimeout    time.Duration
	OverallBudget     time.Duration
}

// Input is the captured user signal: free text, or audio bytes tagged with
// a MIME type.
type Input struct {
	Text      string
	Audio     []byte
	AudioMIME string
}

// RunLog is the per-run journal row.
type RunLog struct {
	ID        string
	Purpose   string
	ModelID   string
	Outcome   string // "ok" or an error category
	LatencyMS int64
	CreatedAt time.Time
}

// RunRecorder receives one row per finished run. Optional; a nil recorder
// disables journaling.
type RunRecorder interface {
	RecordRun(ctx context.Context, run RunLog) error
}

// Result is one successful pipeline run. The record is handed to the caller
// and never mutated afterward; a retry produces a new record.
type Result struct {
	Record  *entity.NutritionRecord
	ModelID string
	Latency time.Duration
}

// Error is a failed run with its user-facing taxonomy value attached.
type Error struct {
	Category llm.ErrorCategory
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline failed (%s): %v", e.Category, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Processor is the single operation the callers use: it composes the
// fallback orchestrator, sanitizer, validator and classifier.
type Processor struct {
	logger   *slog.Logger
	catalog  *llm.Catalog
	orch     *llm.Orchestrator
	cfg      Config
	recorder RunRecorder
}

func NewProcessor(logger *slog.Logger, catalog *llm.Catalog, orch *llm.Orchestrator, cfg Config, recorder RunRecorder) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TranscribeTimeout <= 0 {
		cfg.TranscribeTimeout = 15 * time.Second
	}
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = 45 * time.Second
	}
	return &Processor{logger: logger, catalog: catalog, orch: orch, cfg: cfg, recorder: recorder}
}

// Run executes one capture-to-record flow. On success the caller gets a
// NutritionRecord; on failure, always a *Error with a taxonomy category,
// never a raw transport error.
func (p *Processor) Run(ctx context.Context, in Input, purpose constants.Purpose) (*Result, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()
	req := p.buildRequest(in, purpose)

	p.logger.Info("pipeline.run.start",
		"req_id", rid,
		"purpose", string(purpose),
		"candidates", len(req.ModelPriority),
		"has_audio", len(in.Audio) > 0,
		"text_len", len(in.Text),
	)

	rawText, modelID, err := p.orch.Run(ctx, req)
	if err != nil {
		return nil, p.fail(ctx, rid, purpose, modelID, start, err)
	}

	var rec *entity.NutritionRecord
	if purpose == constants.PurposeTranscribe {
		payload := llm.SanitizeTranscription(rawText)
		if payload.Text == "" {
			return nil, p.fail(ctx, rid, purpose, modelID, start, llm.ErrEmptyResponse)
		}
		// The prompt asks for this exact marker on unintelligible audio; it
		// is a refusal, not a transcription.
		if strings.EqualFold(payload.Text, llm.NoFoodMarker) {
			return nil, p.fail(ctx, rid, purpose, modelID, start,
				fmt.Errorf("model returned the refusal marker: %w", llm.ErrNoFoodDetected))
		}
		rec = &entity.NutritionRecord{Transcription: payload.Text}
	} else {
		payload, xerr := llm.ExtractStructured(rawText)
		if xerr != nil {
			return nil, p.fail(ctx, rid, purpose, modelID, start, xerr)
		}
		if len(payload.Steps) > 0 {
			p.logger.Info("pipeline.sanitize.applied", "req_id", rid, "steps", payload.Steps)
		}
		record, verr := llm.ValidateNutritionRecord([]byte(payload.Text))
		if verr != nil {
			return nil, p.fail(ctx, rid, purpose, modelID, start, verr)
		}
		rec = record
	}

	latency := time.Since(start)
	p.record(ctx, RunLog{
		ID:        rid,
		Purpose:   string(purpose),
		ModelID:   modelID,
		Outcome:   "ok",
		LatencyMS: latency.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	})
	p.logger.Info("pipeline.run.ok",
		"req_id", rid,
		"purpose", string(purpose),
		"model", modelID,
		"items", len(rec.Items),
		"elapsed_ms", latency.Milliseconds(),
	)
	return &Result{Record: rec, ModelID: modelID, Latency: latency}, nil
}

func (p *Processor) buildRequest(in Input, purpose constants.Purpose) llm.InferenceRequest {
	timeout := p.cfg.AnalyzeTimeout
	if purpose == constants.PurposeTranscribe {
		timeout = p.cfg.TranscribeTimeout
	}
	req := llm.InferenceRequest{
		Purpose:        purpose,
		Text:           in.Text,
		Prompt:         llm.BuildPrompt(purpose),
		ModelPriority:  p.catalog.Models(),
		AttemptTimeout: timeout,
		OverallBudget:  p.cfg.OverallBudget,
	}
	if len(in.Audio) > 0 {
		req.Media = &llm.InlineMedia{MIMEType: in.AudioMIME, Data: in.Audio}
	}
	return req
}

func (p *Processor) fail(ctx context.Context, rid string, purpose constants.Purpose, modelID string, start time.Time, err error) error {
	category := llm.Classify(err)
	latency := time.Since(start)
	p.record(ctx, RunLog{
		ID:        rid,
		Purpose:   string(purpose),
		ModelID:   modelID,
		Outcome:   string(category),
		LatencyMS: latency.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	})
	p.logger.Error("pipeline.run.failed",
		"req_id", rid,
		"purpose", string(purpose),
		"category", string(category),
		"error", err,
		"elapsed_ms", latency.Milliseconds(),
	)
	return &Error{Category: category, Err: err}
}

func (p *Processor) record(ctx context.Context, run RunLog) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordRun(ctx, run); err != nil {
		p.logger.Warn("pipeline.journal.write_failed", "req_id", run.ID, "error", err)
	}
}
