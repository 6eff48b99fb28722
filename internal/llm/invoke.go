package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const defaultAttemptTimeout = 30 * time.Second

// TimedInvoker races a single model call against the request's per-attempt
// timeout. No retries here; retrying across models is the orchestrator's job.
type TimedInvoker struct {
	caller ModelCaller
	logger *slog.Logger
}

func NewTimedInvoker(caller ModelCaller, logger *slog.Logger) *TimedInvoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimedInvoker{caller: caller, logger: logger}
}

type callResult struct {
	text string
	err  error
}

// Invoke issues one call to modelID. If the deadline elapses first the call
// is cancelled best-effort and Timeout is returned; a result arriving after
// that is drained into the buffered channel and discarded, never surfaced.
func (ti *TimedInvoker) Invoke(ctx context.Context, modelID string, req InferenceRequest) Attempt {
	timeout := req.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan callResult, 1)
	go func() {
		text, err := ti.caller.Generate(callCtx, modelID, req)
		done <- callResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		latency := time.Since(start)
		if res.err != nil {
			outcome := classifyCallError(res.err)
			ti.logger.Warn("llm.invoke.failed",
				"model", modelID,
				"outcome", string(outcome),
				"error", res.err,
				"elapsed_ms", latency.Milliseconds(),
			)
			return Attempt{ModelID: modelID, Outcome: outcome, Err: res.err, Latency: latency}
		}
		ti.logger.Info("llm.invoke.ok",
			"model", modelID,
			"text_len", len(res.text),
			"elapsed_ms", latency.Milliseconds(),
		)
		return Attempt{ModelID: modelID, Outcome: OutcomeSuccess, Text: res.text, Latency: latency}

	case <-callCtx.Done():
		latency := time.Since(start)
		err := callCtx.Err()
		outcome := OutcomeTimeout
		if errors.Is(err, context.Canceled) {
			// parent cancellation (user abandoned the capture), not a deadline
			outcome = OutcomeTransportError
		}
		ti.logger.Warn("llm.invoke.deadline",
			"model", modelID,
			"outcome", string(outcome),
			"timeout_ms", timeout.Milliseconds(),
			"elapsed_ms", latency.Milliseconds(),
		)
		return Attempt{ModelID: modelID, Outcome: outcome, Err: err, Latency: latency}
	}
}

func classifyCallError(err error) AttemptOutcome {
	var se *ServiceError
	if errors.As(err, &se) {
		return OutcomeServiceError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	return OutcomeTransportError
}
