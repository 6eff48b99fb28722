package nutrition

import (
	"math"
	"strings"

	"github.com/nutrivoice/nutrivoice/constants"
)

const (
	// Stride length as a fraction of body height, the usual pedometer rule.
	strideFactorCm = 0.415
	// Assumed pace for converting steps into walking minutes.
	walkingSpeedKmh = 5.0
)

// EstimateEnergy converts an activity session into kilocalories:
// MET * weight (kg) * duration (h), rounded to the nearest whole kcal.
// Non-positive duration or weight yields zero.
func EstimateEnergy(activity string, intensity constants.Intensity, weightKg float64, minutes float64) int {
	if minutes <= 0 || weightKg <= 0 {
		return 0
	}
	met := LookupMet(activity).For(intensity)
	return int(math.Round(met * weightKg * minutes / 60))
}

// EstimateFromSteps turns a step count into kilocalories. Steps become
// distance via a height-derived stride, distance becomes minutes at the
// assumed walking pace, and the result goes through the same MET formula
// using the moderate walking entry. Women burn slightly fewer calories per
// kilogram, hence the gender multiplier. Age is part of the caller contract
// but the stride/MET arithmetic does not consume it.
func EstimateFromSteps(steps int, weightKg, heightCm float64, age int, gender string) int {
	if steps <= 0 || weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	strideCm := heightCm * strideFactorCm
	distanceKm := float64(steps) * strideCm / 100000
	minutes := distanceKm / walkingSpeedKmh * 60
	met := LookupMet("walking").For(constants.IntensityModerate)
	kcal := met * weightKg * minutes / 60 * genderMultiplier(gender)
	return int(math.Round(kcal))
}

func genderMultiplier(gender string) float64 {
	if strings.EqualFold(strings.TrimSpace(gender), "female") {
		return 0.9
	}
	return 1.0
}
