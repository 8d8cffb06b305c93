package service

import (
	"fmt"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptService interface {
	// SubmitAttempt stores a new attempt and enqueues the AI feedback job for
	// it in the same transaction, so no attempt exists without its job.
	SubmitAttempt(user *model.User, req dto.AttemptCreateRequest) (*dto.AttemptPublic, error)
	GetAttempt(id uuid.UUID) (*dto.AttemptPublic, error)
	ListAttemptsForAssignment(assignmentID uuid.UUID) ([]dto.AttemptPublic, error)
	ListOwnAttempts(user *model.User, assignmentID uuid.UUID) ([]dto.AttemptPublic, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	feedbackRepo repository.FeedbackRepository
	db           *gorm.DB
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	feedbackRepo repository.FeedbackRepository,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		feedbackRepo: feedbackRepo,
		db:           db,
	}
}

func (s *attemptService) toPublic(attempt *model.Attempt) (*dto.AttemptPublic, error) {
	var pub dto.AttemptPublic
	if err := copier.Copy(&pub, attempt); err != nil {
		return nil, fmt.Errorf("failed to map attempt: %w", err)
	}
	feedbacks, err := s.feedbackRepo.FindByAttemptID(attempt.ID)
	if err != nil {
		return nil, err
	}
	if err := copier.Copy(&pub.Feedbacks, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to map feedbacks: %w", err)
	}
	return &pub, nil
}

func (s *attemptService) SubmitAttempt(user *model.User, req dto.AttemptCreateRequest) (*dto.AttemptPublic, error) {
	// Reject malformed payloads before anything is persisted.
	if _, err := model.ParseSMARTData(datatypes.JSON(req.Data)); err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		AssignmentID: req.AssignmentID,
		UserID:       user.ID,
		Data:         datatypes.JSON(req.Data),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return fmt.Errorf("failed to create attempt: %w", err)
		}
		for _, fileID := range req.FileIDs {
			var file model.File
			if err := tx.First(&file, "id = ?", fileID).Error; err != nil {
				return fmt.Errorf("failed to load file %s: %w", fileID, err)
			}
			// Linking a file exposes it to everyone who can see the attempt,
			// so only the uploader may attach it.
			if file.UserID != user.ID {
				return fmt.Errorf("file %s does not belong to the submitting user", fileID)
			}
			if err := tx.Model(attempt).Association("Files").Append(&file); err != nil {
				return fmt.Errorf("failed to link file %s: %w", fileID, err)
			}
		}
		job, err := model.NewAIFeedbackJob(attempt.ID)
		if err != nil {
			return err
		}
		return tx.Create(job).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("attemptID", attempt.ID.String()).
		Str("userID", user.ID.String()).
		Msg("Attempt submitted, AI feedback job enqueued")
	return s.toPublic(attempt)
}

func (s *attemptService) GetAttempt(id uuid.UUID) (*dto.AttemptPublic, error) {
	attempt, err := s.attemptRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.toPublic(attempt)
}

func (s *attemptService) ListAttemptsForAssignment(assignmentID uuid.UUID) ([]dto.AttemptPublic, error) {
	attempts, err := s.attemptRepo.FindByAssignmentID(assignmentID)
	if err != nil {
		return nil, err
	}
	return s.toPublicList(attempts)
}

func (s *attemptService) ListOwnAttempts(user *model.User, assignmentID uuid.UUID) ([]dto.AttemptPublic, error) {
	attempts, err := s.attemptRepo.FindByAssignmentAndUser(assignmentID, user.ID)
	if err != nil {
		return nil, err
	}
	return s.toPublicList(attempts)
}

func (s *attemptService) toPublicList(attempts []model.Attempt) ([]dto.AttemptPublic, error) {
	pubs := make([]dto.AttemptPublic, 0, len(attempts))
	for i := range attempts {
		pub, err := s.toPublic(&attempts[i])
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *pub)
	}
	return pubs, nil
}
