package entity

import (
	"time"

	"github.com/google/uuid"
)

// MealEntry is the flattened record persisted after a successful analysis
// run: food names joined, macro totals, date, owning user.
type MealEntry struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	Description   string    `json:"description"`
	Transcription string    `json:"transcription"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbs         float64   `json:"carbs"`
	Fat           float64   `json:"fat"`
	Fiber         *float64  `json:"fiber,omitempty"`
	ModelID       string    `json:"model_id"`
	LoggedAt      time.Time `json:"logged_at" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DailySummary aggregates one user's entries for a single day.
type DailySummary struct {
	Date     time.Time `json:"date"`
	Meals    int       `json:"meals"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
}
