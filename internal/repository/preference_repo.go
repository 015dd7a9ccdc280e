package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// PreferenceRepository persists per-user filter toggles.
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (models.FilterPreference, error)
	Upsert(ctx context.Context, preference *models.FilterPreference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository instantiates a GORM-backed repository.
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID string) (models.FilterPreference, error) {
	var preference models.FilterPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&preference).Error; err != nil {
		return models.FilterPreference{}, err
	}
	return preference, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, preference *models.FilterPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"unsubmitted_only", "hide_overdue_calendar", "hide_overdue_subjects", "updated_at"}),
	}).Create(preference).Error
}
