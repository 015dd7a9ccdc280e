package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// AssignmentRepository defines persistence operations for assignments.
// Every operation is scoped to the owning user.
type AssignmentRepository interface {
	List(ctx context.Context, userID string) ([]models.Assignment, error)
	ListByDate(ctx context.Context, userID, date string) ([]models.Assignment, error)
	GetByID(ctx context.Context, userID string, id uint) (models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	UpdateCompletion(ctx context.Context, userID string, id uint, completed bool) (models.Assignment, error)
	Delete(ctx context.Context, userID string, id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) List(ctx context.Context, userID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC").Order("due_time ASC").Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return normalize(assignments), nil
}

func (r *assignmentRepository) ListByDate(ctx context.Context, userID, date string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date = ?", userID, date).
		Order("due_time ASC").Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return normalize(assignments), nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, userID string, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	assignment.DueTime = models.NormalizeDueTime(assignment.DueTime)
	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) UpdateCompletion(ctx context.Context, userID string, id uint, completed bool) (models.Assignment, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", completed)
	if result.Error != nil {
		return models.Assignment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, userID, id)
}

func (r *assignmentRepository) Delete(ctx context.Context, userID string, id uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func normalize(assignments []models.Assignment) []models.Assignment {
	if assignments == nil {
		return []models.Assignment{}
	}
	for i := range assignments {
		assignments[i].DueTime = models.NormalizeDueTime(assignments[i].DueTime)
	}
	return assignments
}
