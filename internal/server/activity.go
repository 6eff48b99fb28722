package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrivoice/nutrivoice/constants"
	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/entity"
	"github.com/nutrivoice/nutrivoice/internal/nutrition"
)

// Profile fallbacks for callers who never filled in their body stats.
const (
	defaultWeightKg = 70.0
	defaultHeightCm = 170.0
)

type energyRequest struct {
	Activity  string  `json:"activity"`
	Intensity string  `json:"intensity"`
	Minutes   float64 `json:"minutes"`
	WeightKg  float64 `json:"weight_kg"`
}

type stepsRequest struct {
	Steps    int     `json:"steps"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
}

// handleEnergy estimates calories burned for an activity session. Weight
// falls back to the caller's profile, then to a population default.
func (s *Server) handleEnergy(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}
	var req energyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Activity == "" || req.Minutes <= 0 {
		writeError(c, common.NewAppError("BAD_INPUT", "activity and positive minutes are required", common.ErrInvalidInput))
		return
	}

	weight := req.WeightKg
	if weight <= 0 {
		if u, err := s.users.GetByID(c.Request.Context(), userID); err == nil && u.WeightKg > 0 {
			weight = u.WeightKg
		} else {
			weight = defaultWeightKg
		}
	}

	intensity, _ := constants.CanonicalizeIntensity(req.Intensity)
	kcal := nutrition.EstimateEnergy(req.Activity, intensity, weight, req.Minutes)
	c.JSON(http.StatusOK, entity.ActivityEstimate{
		Activity:  req.Activity,
		Intensity: string(intensity),
		Minutes:   req.Minutes,
		Calories:  kcal,
	})
}

// handleSteps estimates calories burned for a step count, using profile
// height, weight and gender when the request leaves them out.
func (s *Server) handleSteps(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}
	var req stepsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Steps <= 0 {
		writeError(c, common.NewAppError("BAD_INPUT", "a positive step count is required", common.ErrInvalidInput))
		return
	}

	weight, height, age, gender := req.WeightKg, req.HeightCm, req.Age, req.Gender
	if weight <= 0 || height <= 0 || age <= 0 || gender == "" {
		if u, err := s.users.GetByID(c.Request.Context(), userID); err == nil {
			if weight <= 0 {
				weight = u.WeightKg
			}
			if height <= 0 {
				height = u.HeightCm
			}
			if age <= 0 {
				age = u.Age
			}
			if gender == "" {
				gender = u.Gender
			}
		}
	}
	if weight <= 0 {
		weight = defaultWeightKg
	}
	if height <= 0 {
		height = defaultHeightCm
	}

	kcal := nutrition.EstimateFromSteps(req.Steps, weight, height, age, gender)
	c.JSON(http.StatusOK, entity.ActivityEstimate{
		Steps:    req.Steps,
		Calories: kcal,
	})
}
