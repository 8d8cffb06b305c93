package service

import (
	"context"
	"fmt"

	"github.com/dangbert/thesis-app/config"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/rs/zerolog/log"
)

// FeedbackJobService generates AI feedback for attempts. This is the crux of
// this project: the handler behind JobTypeAIFeedback jobs.
type FeedbackJobService interface {
	GenerateAIFeedback(ctx context.Context, job *model.Job) error
}

type feedbackJobService struct {
	attemptRepo  repository.AttemptRepository
	feedbackRepo repository.FeedbackRepository
	jobRepo      repository.JobRepository
	llmService   LLMService
	language     string
}

func NewFeedbackJobService(
	attemptRepo repository.AttemptRepository,
	feedbackRepo repository.FeedbackRepository,
	jobRepo repository.JobRepository,
	llmService LLMService,
	cfg *config.Config,
) FeedbackJobService {
	return &feedbackJobService{
		attemptRepo:  attemptRepo,
		feedbackRepo: feedbackRepo,
		jobRepo:      jobRepo,
		llmService:   llmService,
		language:     cfg.FeedbackLanguage,
	}
}

// failJob records a task-level failure on the job itself. Only persistence
// errors are returned to the caller.
func (s *feedbackJobService) failJob(job *model.Job, msg string) error {
	job.Status = model.JobStatusFailed
	job.Error = &msg
	if err := s.jobRepo.Update(job); err != nil {
		return fmt.Errorf("failed to persist job failure: %w", err)
	}
	return nil
}

// GenerateAIFeedback produces one AI-authored Feedback row for the attempt
// named in the job payload, then marks the job completed. All data-level
// failures mark the job failed with a descriptive error instead of
// propagating, so a job never stays stuck in_progress.
func (s *feedbackJobService) GenerateAIFeedback(ctx context.Context, job *model.Job) error {
	jobData, err := model.ParseAIFeedbackJobData(job.Data)
	if err != nil {
		log.Error().Err(err).Str("job", job.String()).Msg("Failed to parse data for job")
		return s.failJob(job, "failed to parse data for job")
	}

	attempt, err := s.attemptRepo.Find(jobData.AttemptID)
	if err != nil {
		return fmt.Errorf("failed to load attempt %s: %w", jobData.AttemptID, err)
	}
	if attempt == nil {
		log.Error().
			Str("attemptID", jobData.AttemptID.String()).
			Str("job", job.String()).
			Msg("Attempt not found but referenced in job")
		return s.failJob(job, "attempt not found")
	}

	smartData, err := model.ParseSMARTData(attempt.Data)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to parse data for attempt")
		return s.failJob(job, "failed to parse data for attempt")
	}

	// Re-persist in_progress before the external call so progress stays
	// visible through a crash.
	job.Status = model.JobStatusInProgress
	if err := s.jobRepo.Update(job); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	prompt := BuildSMARTFeedbackPrompt(smartData.Goal, smartData.Plan, s.language)

	outputs, meta, err := s.llmService.Complete(ctx, []string{prompt}, GenerationOptions{})
	if err != nil {
		log.Error().Err(err).Str("job", job.String()).Msg("LLM request failed")
		return s.failJob(job, fmt.Sprintf("llm request failed: %s", err))
	}
	if len(outputs) != 1 {
		return s.failJob(job, fmt.Sprintf("llm returned %d outputs, expected 1", len(outputs)))
	}
	cost := s.llmService.ComputePrice(meta)

	feedbackData := model.FeedbackData{
		Feedback: outputs[0],
		Prompt:   &prompt,
		Cost:     cost,
		Approved: false, // approval is meaningless for AI feedback
	}
	raw, err := feedbackData.ToJSON()
	if err != nil {
		return s.failJob(job, fmt.Sprintf("failed to encode feedback data: %s", err))
	}

	feedback := &model.Feedback{
		AttemptID: attempt.ID,
		UserID:    nil,
		IsAI:      true,
		Data:      raw,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	job.Status = model.JobStatusCompleted
	if err := s.jobRepo.Update(job); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}
	log.Info().
		Str("job", job.String()).
		Str("feedbackID", feedback.ID.String()).
		Float64("costUSD", cost).
		Msg("AI feedback generated")
	return nil
}
