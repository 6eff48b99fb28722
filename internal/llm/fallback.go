package llm

import (
	"context"
	"log/slog"
	"strings"
)

// Orchestrator tries candidate models strictly in priority order, one
// outstanding call at a time, and stops at the first Success whose text is
// non-empty after a trim. Candidates are never reordered and never raced in
// parallel: the common case is the first (cheapest) model succeeding, and
// parallel invocation would multiply cost for nothing.
type Orchestrator struct {
	invoker AttemptInvoker
	logger  *slog.Logger
}

func NewOrchestrator(invoker AttemptInvoker, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{invoker: invoker, logger: logger}
}

// Run returns (rawText, modelID) from the first usable attempt, or a
// *PipelineFailure carrying the last observed outcome once every candidate
// has failed.
func (o *Orchestrator) Run(ctx context.Context, req InferenceRequest) (string, string, error) {
	if len(req.ModelPriority) == 0 {
		return "", "", &PipelineFailure{Last: Attempt{Err: ErrNoCandidates}}
	}

	if req.OverallBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.OverallBudget)
		defer cancel()
	}

	attempts := make([]Attempt, 0, len(req.ModelPriority))
	for i, modelID := range req.ModelPriority {
		if err := ctx.Err(); err != nil {
			// request abandoned or budget spent; do not start another call
			att := Attempt{ModelID: modelID, Outcome: OutcomeTimeout, Err: err}
			attempts = append(attempts, att)
			return "", "", &PipelineFailure{Attempts: attempts, Last: att}
		}

		att := o.invoker.Invoke(ctx, modelID, req)
		if att.Outcome == OutcomeSuccess && strings.TrimSpace(att.Text) == "" {
			att.Outcome = OutcomeServiceError
			att.Err = ErrEmptyResponse
		}
		attempts = append(attempts, att)

		if att.Outcome == OutcomeSuccess {
			o.logger.Info("llm.fallback.ok",
				"model", att.ModelID,
				"attempt", i+1,
				"candidates", len(req.ModelPriority),
				"latency_ms", att.Latency.Milliseconds(),
			)
			return att.Text, att.ModelID, nil
		}

		o.logger.Warn("llm.fallback.attempt_failed",
			"model", att.ModelID,
			"attempt", i+1,
			"outcome", string(att.Outcome),
			"error", att.Err,
		)
	}

	last := attempts[len(attempts)-1]
	o.logger.Error("llm.fallback.exhausted",
		"candidates", len(attempts),
		"last_model", last.ModelID,
		"last_outcome", string(last.Outcome),
	)
	return "", "", &PipelineFailure{Attempts: attempts, Last: last}
}
