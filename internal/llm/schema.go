package llm

// BuildNutritionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is embedded in the analysis prompt as the output contract
// and used locally to validate what actually came back. Intentionally
// lenient about extra keys (models like to add "confidence" and similar),
// and intentionally silent about items length: an empty items array is a
// distinct product-level rejection, not a schema violation.
func BuildNutritionJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"transcription": map[string]any{"type": "string", "minLength": 1},
			"items": map[string]any{
				"type":  "array",
				"items": foodItemProp(),
			},
			"total": macrosProp(),
		},
		"required": []string{"transcription", "items", "total"},
	}
}

func foodItemProp() map[string]any {
	props := macroFields()
	props["name"] = map[string]any{"type": "string", "minLength": 1}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"name", "calories", "protein", "carbs", "fat"},
	}
}

func macrosProp() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": macroFields(),
		"required":   []string{"calories", "protein", "carbs", "fat"},
	}
}

func macroFields() map[string]any {
	return map[string]any{
		"calories": numberProp(),
		"protein":  numberProp(),
		"carbs":    numberProp(),
		"fat":      numberProp(),
		"fiber":    numberProp(),
	}
}

func numberProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0}
}
