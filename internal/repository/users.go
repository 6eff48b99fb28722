package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/entity"
)

// UserRepository reads and provisions user profiles.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewAppError("USER_NOT_FOUND", "user not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("USER_GET_FAILED", "failed to load user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewAppError("USER_NOT_FOUND", "user not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("USER_GET_FAILED", "failed to load user", err)
	}
	return &u, nil
}

// Upsert creates or updates a profile keyed by email.
func (r *UserRepository) Upsert(ctx context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "weight_kg", "height_cm", "age", "gender", "updated_at"}),
		}).
		Create(u).Error
	if err != nil {
		return common.NewAppError("USER_UPSERT_FAILED", "failed to upsert user", err)
	}
	return nil
}
