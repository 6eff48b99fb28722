package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nutrivoice/nutrivoice/internal/entity"
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateNutritionRecord parses a sanitized candidate and checks it against
// the nutrition-record contract. Shape only: the total is trusted as the
// model's own arithmetic and never recomputed against the item sum.
func ValidateNutritionRecord(candidate []byte) (*entity.NutritionRecord, error) {
	var probe map[string]any
	if err := json.Unmarshal(candidate, &probe); err != nil {
		return nil, fmt.Errorf("decode candidate: %v: %w", err, ErrMalformedOutput)
	}

	// An explicit error field is a refusal, never a zero-item success.
	if v, ok := probe["error"]; ok {
		msg := strings.TrimSpace(fmt.Sprintf("%v", v))
		if isNoFoodMessage(msg) {
			return nil, fmt.Errorf("model error %q: %w", msg, ErrNoFoodDetected)
		}
		return nil, &ModelReportedError{Text: msg}
	}

	if err := ValidateJSONAgainstSchema(BuildNutritionJSONSchema(), candidate); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedOutput)
	}

	var rec entity.NutritionRecord
	if err := json.Unmarshal(candidate, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %v: %w", err, ErrMalformedOutput)
	}
	if strings.TrimSpace(rec.Transcription) == "" {
		return nil, fmt.Errorf("blank transcription: %w", ErrMalformedOutput)
	}
	// Shape-valid but empty: the user described food, so an empty item list
	// is a recognition failure, not a legitimate record.
	if len(rec.Items) == 0 {
		return nil, fmt.Errorf("zero food items: %w", ErrNoFoodDetected)
	}
	return &rec, nil
}

func isNoFoodMessage(msg string) bool {
	m := strings.ToLower(msg)
	for _, marker := range []string{"no food", "unclear", "empty", "could not", "couldn't", "nothing"} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}
