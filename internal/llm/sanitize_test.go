package llm

import (
	"errors"
	"testing"
)

func TestSanitizeTranscription(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		steps []string
	}{
		{
			name: "clean text untouched",
			raw:  "two eggs and toast",
			want: "two eggs and toast",
		},
		{
			name:  "fenced with language tag",
			raw:   "```text\ntwo eggs and toast\n```",
			want:  "two eggs and toast",
			steps: []string{StepFenceRemoval},
		},
		{
			name:  "surrounding quotes",
			raw:   `"two eggs and toast"`,
			want:  "two eggs and toast",
			steps: []string{StepQuoteTrim},
		},
		{
			name:  "wrapped transcription field",
			raw:   `{"transcription": "two eggs and toast"}`,
			want:  "two eggs and toast",
			steps: []string{StepTranscriptionField},
		},
		{
			name:  "wrapped field with escapes",
			raw:   `{"transcription": "a \"large\" coffee"}`,
			want:  `a "large" coffee`,
			steps: []string{StepTranscriptionField},
		},
		{
			name:  "leading label",
			raw:   "Transcription: two eggs and toast",
			want:  "two eggs and toast",
			steps: []string{StepLabelStrip},
		},
		{
			name:  "fence then label",
			raw:   "```\ntranscription - two eggs\n```",
			want:  "two eggs",
			steps: []string{StepFenceRemoval, StepLabelStrip},
		},
		{
			name: "whitespace only",
			raw:  "   \n\t ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTranscription(tt.raw)
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
			if len(got.Steps) != len(tt.steps) {
				t.Fatalf("steps = %v, want %v", got.Steps, tt.steps)
			}
			for i := range tt.steps {
				if got.Steps[i] != tt.steps[i] {
					t.Errorf("steps[%d] = %q, want %q", i, got.Steps[i], tt.steps[i])
				}
			}
		})
	}
}

func TestSanitizeTranscriptionIdempotent(t *testing.T) {
	raw := "```text\n\"Transcription: two eggs and toast\"\n```"
	first := SanitizeTranscription(raw)
	second := SanitizeTranscription(first.Text)
	if second.Text != first.Text {
		t.Errorf("second pass changed text: %q -> %q", first.Text, second.Text)
	}
	if len(second.Steps) != 0 {
		t.Errorf("second pass applied steps: %v", second.Steps)
	}
}

func TestExtractStructured(t *testing.T) {
	clean := `{"transcription":"eggs","items":[],"total":{}}`

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"clean json untouched", clean, clean},
		{"fenced json", "```json\n" + clean + "\n```", clean},
		{"preamble and postamble", "Here is the JSON you asked for:\n" + clean + "\nLet me know!", clean},
		{"quoted json", `"` + clean + `"`, clean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractStructured(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestExtractStructuredNoJSON(t *testing.T) {
	_, err := ExtractStructured("sorry, I cannot help with that")
	if err == nil {
		t.Fatal("expected error for brace-free response")
	}
	if !errors.Is(err, ErrNoJSONFound) {
		t.Errorf("error = %v, want ErrNoJSONFound", err)
	}
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("error = %v, should unwrap to ErrMalformedOutput", err)
	}
}

func TestExtractStructuredIdempotent(t *testing.T) {
	raw := "```json\nnote: {\"transcription\":\"eggs\"} trailing\n```"
	first, err := ExtractStructured(raw)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := ExtractStructured(first.Text)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.Text != first.Text {
		t.Errorf("second pass changed text: %q -> %q", first.Text, second.Text)
	}
	if len(second.Steps) != 0 {
		t.Errorf("second pass applied steps: %v", second.Steps)
	}
}
