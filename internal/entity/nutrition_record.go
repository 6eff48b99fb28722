package entity

// Macros is a macro-nutrient summary. Values are per the model's own
// arithmetic; totals are trusted, never recomputed locally.
type Macros struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// FoodItem is one recognized food with its quantity folded into the name
// (e.g. "200g black beans").
type FoodItem struct {
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// NutritionRecord is the validated pipeline result. Created once per
// successful run and handed to the caller; a retry produces a new record.
// For transcription-only runs, Items and Total stay empty.
type NutritionRecord struct {
	Transcription string     `json:"transcription"`
	Items         []FoodItem `json:"items,omitempty"`
	Total         Macros     `json:"total"`
}
