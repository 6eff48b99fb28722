package constants

import "strings"

// Purpose selects which pipeline variant a capture runs through.
type Purpose string

// Stable values (these exact strings appear in API requests and journal rows).
const (
	PurposeTranscribe Purpose = "transcribe" // speech-to-text only
	PurposeAnalyze    Purpose = "analyze"    // full structured nutrition extraction
)

// ParsePurpose maps free-form input to a Purpose. Unknown input returns
// PurposeAnalyze with ok=false.
func ParsePurpose(input string) (Purpose, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "transcribe", "transcription":
		return PurposeTranscribe, true
	case "analyze", "analysis", "":
		return PurposeAnalyze, input != ""
	}
	return PurposeAnalyze, false
}
