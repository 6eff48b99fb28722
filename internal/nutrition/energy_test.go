package nutrition

import (
	"testing"

	"github.com/nutrivoice/nutrivoice/constants"
)

func TestEstimateEnergy(t *testing.T) {
	tests := []struct {
		name      string
		activity  string
		intensity constants.Intensity
		weightKg  float64
		minutes   float64
		want      int
	}{
		// round(9.8 * 70 * 0.5)
		{"running moderate half hour", "Running", constants.IntensityModerate, 70, 30, 343},
		// round(11.8 * 70 * 0.5)
		{"running vigorous half hour", "running", constants.IntensityVigorous, 70, 30, 413},
		// round(3.5 * 80 * 1)
		{"walking one hour", "brisk walking", constants.IntensityModerate, 80, 60, 280},
		// unknown activity uses the default entry: round(2.5 * 80 * (10/60))
		{"unknown activity falls back", "some totally unknown activity", constants.IntensityLight, 80, 10, 33},
		{"zero minutes", "running", constants.IntensityModerate, 70, 0, 0},
		{"negative minutes", "running", constants.IntensityModerate, 70, -5, 0},
		{"zero weight", "running", constants.IntensityModerate, 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateEnergy(tt.activity, tt.intensity, tt.weightKg, tt.minutes)
			if got != tt.want {
				t.Errorf("EstimateEnergy(%q, %s, %v, %v) = %d, want %d",
					tt.activity, tt.intensity, tt.weightKg, tt.minutes, got, tt.want)
			}
		})
	}
}

func TestLookupMet(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"running", "running"},
		{"Running", "running"},
		{"morning running session", "running"},
		{"walk", "walking"},
		{"brisk walking", "walking"},
		{"swim", "swimming"},
		{"quidditch", "general activity"},
		{"", "general activity"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := LookupMet(tt.query); got.Activity != tt.want {
				t.Errorf("LookupMet(%q) = %q, want %q", tt.query, got.Activity, tt.want)
			}
		})
	}
}

func TestMetEntryFor(t *testing.T) {
	e := MetEntry{Activity: "x", Light: 1, Moderate: 2, Vigorous: 3}
	if e.For(constants.IntensityLight) != 1 || e.For(constants.IntensityModerate) != 2 || e.For(constants.IntensityVigorous) != 3 {
		t.Error("intensity selection is wrong")
	}
	// anything unrecognized reads as moderate
	if e.For(constants.Intensity("extreme")) != 2 {
		t.Error("unknown intensity should read as moderate")
	}
}

func TestEstimateFromSteps(t *testing.T) {
	// 10000 steps, 170cm: stride 70.55cm, distance 7.055km, 84.66 min at
	// 5km/h, MET 3.5: round(3.5 * 70 * 84.66/60) = 346
	got := EstimateFromSteps(10000, 70, 170, 30, "male")
	if got != 346 {
		t.Errorf("male = %d, want 346", got)
	}
	// female multiplier 0.9: round(345.695 * 0.9) = 311
	if got := EstimateFromSteps(10000, 70, 170, 30, "female"); got != 311 {
		t.Errorf("female = %d, want 311", got)
	}
	// unknown gender behaves like the 1.0 multiplier
	if got := EstimateFromSteps(10000, 70, 170, 30, ""); got != 346 {
		t.Errorf("unspecified gender = %d, want 346", got)
	}
	// age is accepted for the caller contract but does not move the result
	if got := EstimateFromSteps(10000, 70, 170, 75, "male"); got != 346 {
		t.Errorf("age 75 = %d, want 346", got)
	}
}

func TestEstimateFromStepsInvalidInputs(t *testing.T) {
	if got := EstimateFromSteps(0, 70, 170, 30, "male"); got != 0 {
		t.Errorf("zero steps = %d, want 0", got)
	}
	if got := EstimateFromSteps(10000, 0, 170, 30, "male"); got != 0 {
		t.Errorf("zero weight = %d, want 0", got)
	}
	if got := EstimateFromSteps(10000, 70, 0, 30, "male"); got != 0 {
		t.Errorf("zero height = %d, want 0", got)
	}
}
