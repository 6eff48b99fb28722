package entity

// ActivityEstimate is the response shape for activity energy estimates.
// Computed on demand, never persisted.
type ActivityEstimate struct {
	Activity  string  `json:"activity,omitempty"`
	Intensity string  `json:"intensity,omitempty"`
	Minutes   float64 `json:"minutes,omitempty"`
	Steps     int     `json:"steps,omitempty"`
	Calories  int     `json:"calories"`
}
