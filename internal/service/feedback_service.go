package service

import (
	"fmt"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/datatypes"
)

type FeedbackService interface {
	// CreateFeedback records human-authored feedback on an attempt.
	CreateFeedback(user *model.User, req dto.FeedbackCreateRequest) (*dto.FeedbackPublic, error)
	GetFeedback(id uuid.UUID) (*dto.FeedbackPublic, error)
	ListFeedbackForAttempt(attemptID uuid.UUID) ([]dto.FeedbackPublic, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo}
}

func (s *feedbackService) CreateFeedback(user *model.User, req dto.FeedbackCreateRequest) (*dto.FeedbackPublic, error) {
	if _, err := model.ParseFeedbackData(datatypes.JSON(req.Data)); err != nil {
		return nil, err
	}
	feedback := &model.Feedback{
		AttemptID: req.AttemptID,
		UserID:    &user.ID,
		IsAI:      false,
		Data:      datatypes.JSON(req.Data),
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	var pub dto.FeedbackPublic
	if err := copier.Copy(&pub, feedback); err != nil {
		return nil, fmt.Errorf("failed to map feedback: %w", err)
	}
	return &pub, nil
}

func (s *feedbackService) GetFeedback(id uuid.UUID) (*dto.FeedbackPublic, error) {
	feedback, err := s.feedbackRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	var pub dto.FeedbackPublic
	if err := copier.Copy(&pub, feedback); err != nil {
		return nil, fmt.Errorf("failed to map feedback: %w", err)
	}
	return &pub, nil
}

func (s *feedbackService) ListFeedbackForAttempt(attemptID uuid.UUID) ([]dto.FeedbackPublic, error) {
	feedbacks, err := s.feedbackRepo.FindByAttemptID(attemptID)
	if err != nil {
		return nil, err
	}
	var pubs []dto.FeedbackPublic
	if err := copier.Copy(&pubs, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to map feedbacks: %w", err)
	}
	return pubs, nil
}
