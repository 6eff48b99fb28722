package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nutrivoice/nutrivoice/constants"
	"github.com/nutrivoice/nutrivoice/internal/llm"
)

type fakeCaller struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeCaller) Generate(_ context.Context, modelID string, _ llm.InferenceRequest) (string, error) {
	f.calls = append(f.calls, modelID)
	if err, ok := f.errs[modelID]; ok {
		return "", err
	}
	return f.responses[modelID], nil
}

type memRecorder struct {
	runs []RunLog
}

func (m *memRecorder) RecordRun(_ context.Context, run RunLog) error {
	m.runs = append(m.runs, run)
	return nil
}

func newTestProcessor(t *testing.T, caller llm.ModelCaller, models []string, rec RunRecorder) *Processor {
	t.Helper()
	catalog, err := llm.NewCatalog(models)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	invoker := llm.NewTimedInvoker(caller, nil)
	orch := llm.NewOrchestrator(invoker, nil)
	return NewProcessor(nil, catalog, orch, Config{
		TranscribeTimeout: time.Second,
		AnalyzeTimeout:    time.Second,
	}, rec)
}

func TestProcessorAnalyzeEndToEnd(t *testing.T) {
	// fenced response with preamble, the way models actually answer
	caller := &fakeCaller{responses: map[string]string{
		"fast": "Sure! Here is the nutrition data:\n```json\n" +
			`{"transcription": "I had 200 grams of black beans",` +
			`"items": [{"name": "200g black beans", "calories": 264, "protein": 17.8, "carbs": 48.2, "fat": 1.1}],` +
			`"total": {"calories": 264, "protein": 17.8, "carbs": 48.2, "fat": 1.1}}` +
			"\n```",
	}}
	rec := &memRecorder{}
	p := newTestProcessor(t, caller, []string{"fast", "slow"}, rec)

	res, err := p.Run(context.Background(), Input{Text: "I had 200 grams of black beans"}, constants.PurposeAnalyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Record.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(res.Record.Items))
	}
	if res.Record.Items[0].Name != "200g black beans" {
		t.Errorf("item name = %q, quantity must be preserved", res.Record.Items[0].Name)
	}
	if res.Record.Total.Calories <= 0 {
		t.Errorf("total calories = %v, want > 0", res.Record.Total.Calories)
	}
	if res.ModelID != "fast" {
		t.Errorf("model = %q, want fast", res.ModelID)
	}
	if len(caller.calls) != 1 {
		t.Errorf("model calls = %d, want 1 (no fallback needed)", len(caller.calls))
	}
	if len(rec.runs) != 1 || rec.runs[0].Outcome != "ok" {
		t.Errorf("journal rows = %+v, want one ok row", rec.runs)
	}
}

func TestProcessorFallsBackThenSucceeds(t *testing.T) {
	caller := &fakeCaller{
		errs: map[string]error{"fast": &llm.ServiceError{StatusCode: 503}},
		responses: map[string]string{
			"slow": `{"transcription": "an apple", "items": [{"name": "an apple", "calories": 95, "protein": 0.5, "carbs": 25, "fat": 0.3}], "total": {"calories": 95, "protein": 0.5, "carbs": 25, "fat": 0.3}}`,
		},
	}
	p := newTestProcessor(t, caller, []string{"fast", "slow"}, nil)

	res, err := p.Run(context.Background(), Input{Text: "an apple"}, constants.PurposeAnalyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ModelID != "slow" {
		t.Errorf("model = %q, want slow", res.ModelID)
	}
	if len(caller.calls) != 2 {
		t.Errorf("model calls = %d, want 2", len(caller.calls))
	}
}

func TestProcessorTranscribe(t *testing.T) {
	caller := &fakeCaller{responses: map[string]string{
		"fast": "```\nTranscription: I had two eggs and toast\n```",
	}}
	p := newTestProcessor(t, caller, []string{"fast"}, nil)

	res, err := p.Run(context.Background(), Input{Text: "ignored"}, constants.PurposeTranscribe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Record.Transcription != "I had two eggs and toast" {
		t.Errorf("transcription = %q", res.Record.Transcription)
	}
	if len(res.Record.Items) != 0 {
		t.Errorf("transcribe-only run produced %d items", len(res.Record.Items))
	}
}

// A transcribe-purpose answer of the prompted refusal marker is a failure,
// never a transcription handed back to the caller.
func TestProcessorTranscribeRefusalMarker(t *testing.T) {
	for _, raw := range []string{
		"no food detected",
		"No Food Detected",
		"```\n\"no food detected\"\n```",
	} {
		caller := &fakeCaller{responses: map[string]string{"fast": raw}}
		rec := &memRecorder{}
		p := newTestProcessor(t, caller, []string{"fast"}, rec)

		_, err := p.Run(context.Background(), Input{Text: "mumble"}, constants.PurposeTranscribe)
		if err == nil {
			t.Fatalf("raw %q surfaced as a successful transcription", raw)
		}
		var perr *Error
		if !errors.As(err, &perr) {
			t.Fatalf("error = %T, want *pipeline.Error", err)
		}
		if perr.Category != llm.CategoryNoFoodDetected {
			t.Errorf("raw %q: category = %s, want NO_FOOD_DETECTED", raw, perr.Category)
		}
		if len(rec.runs) != 1 || rec.runs[0].Outcome != string(llm.CategoryNoFoodDetected) {
			t.Errorf("raw %q: journal rows = %+v", raw, rec.runs)
		}
	}
}

func TestProcessorFailureCarriesCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want llm.ErrorCategory
	}{
		{"overloaded", &llm.ServiceError{StatusCode: 529}, llm.CategoryServiceOverloaded},
		{"bad key", &llm.ServiceError{StatusCode: 401}, llm.CategoryConfigurationError},
		{"timeout", context.DeadlineExceeded, llm.CategoryTimedOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &fakeCaller{errs: map[string]error{"only": tt.err}}
			rec := &memRecorder{}
			p := newTestProcessor(t, caller, []string{"only"}, rec)

			_, err := p.Run(context.Background(), Input{Text: "x"}, constants.PurposeAnalyze)
			if err == nil {
				t.Fatal("expected failure")
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error = %T, want *pipeline.Error", err)
			}
			if perr.Category != tt.want {
				t.Errorf("category = %s, want %s", perr.Category, tt.want)
			}
			if len(rec.runs) != 1 || rec.runs[0].Outcome != string(tt.want) {
				t.Errorf("journal rows = %+v", rec.runs)
			}
		})
	}
}

func TestProcessorModelRefusal(t *testing.T) {
	caller := &fakeCaller{responses: map[string]string{
		"only": `{"error": "no food detected"}`,
	}}
	p := newTestProcessor(t, caller, []string{"only"}, nil)

	_, err := p.Run(context.Background(), Input{Text: "uh hello?"}, constants.PurposeAnalyze)
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *pipeline.Error", err)
	}
	if perr.Category != llm.CategoryNoFoodDetected {
		t.Errorf("category = %s, want NO_FOOD_DETECTED", perr.Category)
	}
}

func TestProcessorMalformedAnswer(t *testing.T) {
	caller := &fakeCaller{responses: map[string]string{
		"only": "I'm sorry, I cannot produce JSON today.",
	}}
	p := newTestProcessor(t, caller, []string{"only"}, nil)

	_, err := p.Run(context.Background(), Input{Text: "eggs"}, constants.PurposeAnalyze)
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *pipeline.Error", err)
	}
	if perr.Category != llm.CategoryMalformedOutput {
		t.Errorf("category = %s, want MALFORMED_OUTPUT", perr.Category)
	}
}
