package repository

import (
	"errors"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	// Find returns nil when no attempt exists with the given id.
	Find(id uuid.UUID) (*model.Attempt, error)
	FindByID(id uuid.UUID) (*model.Attempt, error)
	FindByAssignmentID(assignmentID uuid.UUID) ([]model.Attempt, error)
	FindByAssignmentAndUser(assignmentID, userID uuid.UUID) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Find(id uuid.UUID) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.First(&attempt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByID(id uuid.UUID) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByAssignmentID(assignmentID uuid.UUID) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("assignment_id = ?", assignmentID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindByAssignmentAndUser(assignmentID, userID uuid.UUID) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
