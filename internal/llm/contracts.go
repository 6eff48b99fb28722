package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutrivoice/nutrivoice/constants"
)

// InlineMedia is an audio (or photo) payload forwarded to the model service
// alongside the prompt.
type InlineMedia struct {
	MIMEType string
	Data     []byte
}

// InferenceRequest describes one user action's model invocation. Created once
// per capture and never mutated; concurrent runs each own their request.
type InferenceRequest struct {
	Purpose        constants.Purpose
	Text           string
	Media          *InlineMedia
	Prompt         string
	ModelPriority  []string
	AttemptTimeout time.Duration
	OverallBudget  time.Duration // 0 = no overall budget
}

// AttemptOutcome is the result class of one candidate model call.
type AttemptOutcome string

const (
	OutcomeSuccess        AttemptOutcome = "SUCCESS"
	OutcomeTimeout        AttemptOutcome = "TIMEOUT"
	OutcomeTransportError AttemptOutcome = "TRANSPORT_ERROR"
	OutcomeServiceError   AttemptOutcome = "SERVICE_ERROR"
)

// Attempt records one candidate model call. Ephemeral; discarded once the
// orchestrator picks a winner or exhausts the priority list.
type Attempt struct {
	ModelID string
	Outcome AttemptOutcome
	Text    string
	Err     error
	Latency time.Duration
}

// ModelCaller issues a single raw model call. Implemented by gemini.Client;
// tests substitute fakes. The caller is expected to honor ctx cancellation
// but the TimedInvoker does not depend on it doing so.
type ModelCaller interface {
	Generate(ctx context.Context, modelID string, req InferenceRequest) (string, error)
}

// AttemptInvoker is what the orchestrator iterates with. Satisfied by
// TimedInvoker.
type AttemptInvoker interface {
	Invoke(ctx context.Context, modelID string, req InferenceRequest) Attempt
}

// Failure anchors for the error taxonomy. Wrapped with %w wherever they
// originate so Classify can recover them from any depth.
var (
	ErrNoFoodDetected  = errors.New("no food detected")
	ErrMalformedOutput = errors.New("malformed model output")
	ErrEmptyResponse   = fmt.Errorf("model returned empty text: %w", ErrNoFoodDetected)
	ErrNoJSONFound     = fmt.Errorf("no json object found in response: %w", ErrMalformedOutput)
	ErrNoCandidates    = errors.New("model priority list is empty")
)

// ServiceError means a response reached the model service and the service
// answered with an error status.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("model service status %d: %s", e.StatusCode, e.Body)
}

// ModelReportedError is an explicit {"error": ...} payload from the model
// whose text does not match the known no-food wording; the text is passed
// through as-is.
type ModelReportedError struct {
	Text string
}

func (e *ModelReportedError) Error() string {
	return fmt.Sprintf("model reported error: %s", e.Text)
}

// PipelineFailure is returned when every candidate model failed. It carries
// all attempts for logging and the last observed outcome for classification.
type PipelineFailure struct {
	Attempts []Attempt
	Last     Attempt
}

func (e *PipelineFailure) Error() string {
	if e.Last.Err != nil {
		return fmt.Sprintf("all %d model candidates failed, last (%s): %v", len(e.Attempts), e.Last.ModelID, e.Last.Err)
	}
	return fmt.Sprintf("all %d model candidates failed", len(e.Attempts))
}

func (e *PipelineFailure) Unwrap() error {
	return e.Last.Err
}
