package llm

import (
	"encoding/json"
	"strings"

	"github.com/nutrivoice/nutrivoice/constants"
)

// NoFoodMarker is the exact refusal text both prompts request when the input
// carries no recognizable meal. Consumers compare against it
// case-insensitively.
const NoFoodMarker = "no food detected"

// BuildPrompt composes the instruction block for a purpose. The output
// contract here is advisory only; the service does not enforce it, which is
// why the sanitizer and validator exist downstream.
func BuildPrompt(purpose constants.Purpose) string {
	if purpose == constants.PurposeTranscribe {
		return buildTranscriptionPrompt()
	}
	return buildAnalysisPrompt()
}

func buildTranscriptionPrompt() string {
	parts := []string{
		"You are a precise speech-to-text transcriber.",
		"Transcribe exactly what the speaker says about their meal, in the speaker's own words.",
		"Return ONLY the plain transcription text.",
		"No markdown fences, no quotes, no labels such as 'transcription:', no JSON.",
		"If the audio contains no intelligible speech, return exactly: " + NoFoodMarker + ".",
	}
	return strings.Join(parts, " ")
}

func buildAnalysisPrompt() string {
	parts := []string{
		"You are a nutrition analyst. Identify every food the user describes, with its quantity.",
		"Return ONLY one JSON object matching this JSON Schema:",
		mustJSON(BuildNutritionJSONSchema()),
		"Keep the stated quantity inside each item name (e.g. \"200g black beans\").",
		"Scale calories and macros to the stated quantity, never per-100g reference values.",
		"Macro values are grams; calories are kcal.",
		"'total' is your own sum across items.",
		"'transcription' is the user's meal description verbatim.",
		"Do not use markdown fences. Do not add any text before or after the JSON object.",
		"If no food is described, or the input is unintelligible, return exactly {\"error\": \"" + NoFoodMarker + "\"}.",
	}
	return strings.Join(parts, " ")
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
