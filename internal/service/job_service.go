package service

import (
	"context"
	"fmt"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/rs/zerolog/log"
)

// JobHandler executes one claimed (in_progress) job. The handler owns the
// job's terminal transition (completed/failed) and persists it itself; a
// non-nil return signals an infrastructure fault (e.g. the store is down),
// not a failed job.
type JobHandler func(ctx context.Context, job *model.Job) error

type JobService interface {
	// RunJob runs a pending job to completion. Calling it on a non-pending
	// job is a logged no-op: claim races are the scheduler's concern.
	RunJob(ctx context.Context, job *model.Job) error

	// Dispatch executes the handler for an already claimed job. An
	// unregistered job type is a configuration bug and returns an error.
	Dispatch(ctx context.Context, job *model.Job) error
}

type jobService struct {
	jobRepo  repository.JobRepository
	handlers map[model.JobType]JobHandler
}

// NewJobService wires the closed set of job type handlers.
func NewJobService(jobRepo repository.JobRepository, feedbackJobSvc FeedbackJobService) JobService {
	return &jobService{
		jobRepo: jobRepo,
		handlers: map[model.JobType]JobHandler{
			model.JobTypeAIFeedback: feedbackJobSvc.GenerateAIFeedback,
		},
	}
}

func (s *jobService) RunJob(ctx context.Context, job *model.Job) error {
	if job.Status != model.JobStatusPending {
		log.Error().
			Str("job", job.String()).
			Msgf("Job must have status '%s' to run, not '%s'", model.JobStatusPending, job.Status)
		return nil
	}

	// Persist the transition before executing so a crash mid-run leaves a
	// visibly stuck job rather than a silently re-pending one.
	job.Status = model.JobStatusInProgress
	if err := s.jobRepo.Update(job); err != nil {
		return fmt.Errorf("failed to mark job in progress: %w", err)
	}

	return s.Dispatch(ctx, job)
}

func (s *jobService) Dispatch(ctx context.Context, job *model.Job) error {
	handler, ok := s.handlers[job.JobType]
	if !ok {
		return fmt.Errorf("job type '%s' not implemented", job.JobType)
	}
	return handler(ctx, job)
}
