package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nutrivoice/nutrivoice/internal/entity"
	"github.com/nutrivoice/nutrivoice/internal/llm"
)

// FlowState is the capture-to-record lifecycle for one user attempt.
type FlowState string

const (
	StateIdle       FlowState = "IDLE"
	StateCapturing  FlowState = "CAPTURING"
	StatePipelining FlowState = "PIPELINING"
	StateSucceeded  FlowState = "SUCCEEDED"
	StateFailed     FlowState = "FAILED"
)

var ErrIllegalTransition = errors.New("illegal capture flow transition")

// CaptureFlow guards the legal transitions:
// Idle -> Capturing -> Pipelining -> {Succeeded, Failed}. Capturing may be
// cancelled back to Idle; Pipelining is non-interruptible and always ends in
// a terminal state. There is no retry inside the flow; a new attempt starts
// over from Idle via Reset.
type CaptureFlow struct {
	mu       sync.Mutex
	state    FlowState
	record   *entity.NutritionRecord
	category llm.ErrorCategory
}

func NewCaptureFlow() *CaptureFlow {
	return &CaptureFlow{state: StateIdle}
}

func (f *CaptureFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Outcome returns the terminal payload: the record when Succeeded, the
// category when Failed.
func (f *CaptureFlow) Outcome() (*entity.NutritionRecord, llm.ErrorCategory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record, f.category
}

func (f *CaptureFlow) StartCapture() error {
	return f.transition(StateIdle, StateCapturing)
}

func (f *CaptureFlow) CancelCapture() error {
	return f.transition(StateCapturing, StateIdle)
}

func (f *CaptureFlow) Submit() error {
	return f.transition(StateCapturing, StatePipelining)
}

func (f *CaptureFlow) Succeed(rec *entity.NutritionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StatePipelining {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, StateSucceeded)
	}
	f.state = StateSucceeded
	f.record = rec
	return nil
}

func (f *CaptureFlow) Fail(category llm.ErrorCategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StatePipelining {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, StateFailed)
	}
	f.state = StateFailed
	f.category = category
	return nil
}

// Reset returns a terminal flow to Idle for a brand-new attempt.
func (f *CaptureFlow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSucceeded && f.state != StateFailed {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, StateIdle)
	}
	f.state = StateIdle
	f.record = nil
	f.category = ""
	return nil
}

func (f *CaptureFlow) transition(from, to FlowState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != from {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, to)
	}
	f.state = to
	return nil
}
