package nutrition

import (
	"strings"

	"github.com/nutrivoice/nutrivoice/constants"
)

// MetEntry carries the metabolic equivalents for one activity at three
// intensities. Values follow the Compendium of Physical Activities.
type MetEntry struct {
	Activity string
	Light    float64
	Moderate float64
	Vigorous float64
}

// For returns the MET value for a canonical intensity.
func (e MetEntry) For(intensity constants.Intensity) float64 {
	switch intensity {
	case constants.IntensityLight:
		return e.Light
	case constants.IntensityVigorous:
		return e.Vigorous
	default:
		return e.Moderate
	}
}

// defaultMet covers activities the table does not know. Deliberately
// conservative so unknown activities under-count rather than over-count.
var defaultMet = MetEntry{Activity: "general activity", Light: 2.5, Moderate: 4.0, Vigorous: 6.0}

// metTable is ordered: lookup takes the first match. Entries carry one plain
// word each; a compound query ("trail running") lands on the word it
// contains.
var metTable = []MetEntry{
	{"running", 8.3, 9.8, 11.8},
	{"jogging", 6.0, 7.0, 8.3},
	{"walking", 2.8, 3.5, 4.3},
	{"hiking", 4.5, 5.3, 6.5},
	{"mountain biking", 7.0, 8.5, 10.5},
	{"cycling", 4.0, 6.8, 10.0},
	{"swimming", 4.5, 6.0, 9.8},
	{"rowing", 4.8, 7.0, 8.5},
	{"weight lifting", 3.0, 3.5, 6.0},
	{"strength training", 3.0, 3.5, 6.0},
	{"crossfit", 5.6, 8.0, 12.0},
	{"yoga", 2.0, 2.5, 4.0},
	{"pilates", 2.5, 3.0, 3.8},
	{"dancing", 3.0, 4.8, 7.8},
	{"basketball", 4.5, 6.5, 8.0},
	{"soccer", 5.0, 7.0, 10.0},
	{"football", 4.0, 6.0, 8.0},
	{"tennis", 5.0, 7.3, 8.0},
	{"badminton", 4.5, 5.5, 7.0},
	{"volleyball", 3.0, 4.0, 6.0},
	{"boxing", 5.5, 7.8, 12.8},
	{"martial arts", 5.3, 7.8, 10.3},
	{"skiing", 4.3, 5.3, 8.0},
	{"skating", 5.5, 7.0, 9.0},
	{"climbing", 5.8, 7.5, 8.8},
	{"elliptical", 4.0, 5.0, 6.0},
	{"aerobics", 5.0, 6.5, 7.3},
	{"jump rope", 8.8, 11.8, 12.3},
	{"gardening", 2.8, 3.8, 5.0},
	{"housework", 2.5, 3.3, 4.0},
	{"stairs", 4.0, 4.7, 8.8},
}

// LookupMet resolves a free-text activity name against the table with a
// two-way case-insensitive substring match: "brisk walking" finds "walking",
// and the short form "walk" finds it too. Unknown names fall back to the
// general-activity entry, so lookup never fails.
func LookupMet(activity string) MetEntry {
	needle := strings.ToLower(strings.TrimSpace(activity))
	if needle == "" {
		return defaultMet
	}
	for _, e := range metTable {
		if strings.Contains(needle, e.Activity) || strings.Contains(e.Activity, needle) {
			return e
		}
	}
	return defaultMet
}
