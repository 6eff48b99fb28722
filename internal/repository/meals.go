package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/entity"
)

// MealRepository persists analysis results as flat meal entries.
type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Create inserts one entry. A missing owner is a programming error upstream
// and must fail loudly, never be silently attributed to nobody.
func (r *MealRepository) Create(ctx context.Context, entry *entity.MealEntry) error {
	if entry.UserID == uuid.Nil {
		return common.NewAppError("MEAL_NO_OWNER", "meal entry has no user id", common.ErrUnauthorized)
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return common.NewAppError("MEAL_CREATE_FAILED", "failed to create meal entry", err)
	}
	return nil
}

// ListByUser returns entries in [from, to), newest first. Zero bounds are
// open; limit <= 0 means 100.
func (r *MealRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]entity.MealEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("logged_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("logged_at < ?", to)
	}
	var entries []entity.MealEntry
	if err := q.Order("logged_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, common.NewAppError("MEAL_LIST_FAILED", "failed to list meal entries", err)
	}
	return entries, nil
}

// SummaryForDay aggregates one user's entries for the day containing at,
// in UTC.
func (r *MealRepository) SummaryForDay(ctx context.Context, userID uuid.UUID, at time.Time) (*entity.DailySummary, error) {
	day := at.UTC().Truncate(24 * time.Hour)
	next := day.Add(24 * time.Hour)

	var row struct {
		Meals    int
		Calories float64
		Protein  float64
		Carbs    float64
		Fat      float64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.MealEntry{}).
		Select("COUNT(*) AS meals, COALESCE(SUM(calories),0) AS calories, COALESCE(SUM(protein),0) AS protein, COALESCE(SUM(carbs),0) AS carbs, COALESCE(SUM(fat),0) AS fat").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, day, next).
		Scan(&row).Error
	if err != nil {
		return nil, common.NewAppError("MEAL_SUMMARY_FAILED", "failed to summarize meal entries", err)
	}
	return &entity.DailySummary{
		Date:     day,
		Meals:    row.Meals,
		Calories: row.Calories,
		Protein:  row.Protein,
		Carbs:    row.Carbs,
		Fat:      row.Fat,
	}, nil
}
