package repository

import (
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	FindByID(id uuid.UUID) (*model.Feedback, error)
	FindByAttemptID(attemptID uuid.UUID) ([]model.Feedback, error)
	Update(feedback *model.Feedback) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *feedbackRepository) FindByID(id uuid.UUID) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.db.First(&feedback, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByAttemptID(attemptID uuid.UUID) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.Where("attempt_id = ?", attemptID).Order("created_at ASC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepository) Update(feedback *model.Feedback) error {
	return r.db.Save(feedback).Error
}
