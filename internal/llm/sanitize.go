package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Sanitization step labels recorded on an ExtractedPayload.
const (
	StepFenceRemoval       = "fence_removal"
	StepQuoteTrim          = "quote_trim"
	StepTranscriptionField = "transcription_unwrap"
	StepLabelStrip         = "label_strip"
	StepBraceSpan          = "brace_span"
)

// ExtractedPayload is the substring of a raw response judged most likely to
// be the intended content, plus the sanitization steps that touched it.
// Derived, never persisted.
type ExtractedPayload struct {
	Text  string
	Steps []string
}

var (
	// fence markers with or without a language tag; content is kept
	reFenceMarker = regexp.MustCompile("```[a-zA-Z0-9_-]*")
	// a transcription field embedded in otherwise free text
	reWrappedTranscription = regexp.MustCompile(`"transcription"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	// leading "transcription:" / "Transcription -" label
	reTranscriptionLabel = regexp.MustCompile(`(?i)^transcription\s*[:\-]\s*`)
)

// SanitizeTranscription cleans a transcription-purpose response. The step
// order is fixed: fence removal, quote trim, wrapped-field unwrap, label
// strip. Later steps assume the earlier ones already ran.
func SanitizeTranscription(raw string) ExtractedPayload {
	text := strings.TrimSpace(raw)
	var steps []string

	if cleaned := reFenceMarker.ReplaceAllString(text, ""); cleaned != text {
		text = strings.TrimSpace(cleaned)
		steps = append(steps, StepFenceRemoval)
	}

	if trimmed := strings.Trim(text, `"'`); trimmed != text {
		text = strings.TrimSpace(trimmed)
		steps = append(steps, StepQuoteTrim)
	}

	if m := reWrappedTranscription.FindStringSubmatch(text); m != nil {
		if unescaped, err := unescapeJSONString(m[1]); err == nil {
			text = strings.TrimSpace(unescaped)
			steps = append(steps, StepTranscriptionField)
		}
	}

	if loc := reTranscriptionLabel.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
		steps = append(steps, StepLabelStrip)
	}

	return ExtractedPayload{Text: text, Steps: steps}
}

// ExtractStructured locates the JSON candidate in an analysis-purpose
// response: fence removal, quote trim, then the span from the first '{'
// through the last '}'. The span rule tolerates preambles and postambles the
// model emits despite instructions not to. Idempotent on clean JSON.
func ExtractStructured(raw string) (ExtractedPayload, error) {
	text := strings.TrimSpace(raw)
	var steps []string

	if cleaned := reFenceMarker.ReplaceAllString(text, ""); cleaned != text {
		text = strings.TrimSpace(cleaned)
		steps = append(steps, StepFenceRemoval)
	}

	if trimmed := strings.Trim(text, `"'`); trimmed != text && strings.Contains(trimmed, "{") {
		text = strings.TrimSpace(trimmed)
		steps = append(steps, StepQuoteTrim)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ExtractedPayload{Text: text, Steps: steps}, fmt.Errorf("extract structured payload: %w", ErrNoJSONFound)
	}
	if span := text[start : end+1]; span != text {
		text = span
		steps = append(steps, StepBraceSpan)
	}

	return ExtractedPayload{Text: text, Steps: steps}, nil
}

func unescapeJSONString(escaped string) (string, error) {
	var out string
	if err := json.Unmarshal([]byte(`"`+escaped+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}
