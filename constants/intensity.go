package constants

import "strings"

// Intensity is the effort level used for MET lookups.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

var allIntensities = []Intensity{
	IntensityLight,
	IntensityModerate,
	IntensityVigorous,
}

func IntensitiesAsStringSlice() []string {
	result := make([]string, len(allIntensities))
	for i, lvl := range allIntensities {
		result[i] = string(lvl)
	}
	return result
}

// CanonicalizeIntensity maps free-form input to an Intensity.
// Unknown input falls back to moderate.
func CanonicalizeIntensity(input string) (Intensity, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return IntensityModerate, false
	}

	// synonyms map
	synonyms := map[string]Intensity{
		"easy":    IntensityLight,
		"low":     IntensityLight,
		"casual":  IntensityLight,
		"medium":  IntensityModerate,
		"normal":  IntensityModerate,
		"hard":    IntensityVigorous,
		"high":    IntensityVigorous,
		"intense": IntensityVigorous,
	}

	if lvl, ok := synonyms[normalized]; ok {
		return lvl, true
	}

	for _, lvl := range allIntensities {
		if normalized == string(lvl) {
			return lvl, true
		}
	}

	return IntensityModerate, false
}
