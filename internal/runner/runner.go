package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/service"
	"github.com/rs/zerolog/log"
)

// Runner polls the job table and executes pending jobs one at a time. Several
// runner processes may share one database; the claim in JobRepository keeps
// them from executing the same job twice.
type Runner struct {
	jobRepo  repository.JobRepository
	jobSvc   service.JobService
	interval time.Duration
}

func New(jobRepo repository.JobRepository, jobSvc service.JobService, interval time.Duration) *Runner {
	return &Runner{
		jobRepo:  jobRepo,
		jobSvc:   jobSvc,
		interval: interval,
	}
}

// Run loops until ctx is cancelled. Infrastructure errors (database down,
// unknown job type) abort the loop so the process restarts with a clean slate;
// per-job failures are recorded on the job itself and do not stop the runner.
func (r *Runner) Run(ctx context.Context) error {
	log.Info().Dur("interval", r.interval).Msg("Job runner started")
	for {
		// Stop before claiming: a job claimed after cancellation would be
		// dispatched with a dead context and fail instead of staying pending
		// for the next runner.
		select {
		case <-ctx.Done():
			log.Info().Msg("Job runner stopping")
			return ctx.Err()
		default:
		}

		job, err := r.jobRepo.ClaimNextPending()
		if err != nil {
			return fmt.Errorf("failed to claim next job: %w", err)
		}

		if job == nil {
			select {
			case <-ctx.Done():
				log.Info().Msg("Job runner stopping")
				return ctx.Err()
			case <-time.After(r.interval):
			}
			continue
		}

		pending, err := r.jobRepo.CountPending()
		if err != nil {
			return fmt.Errorf("failed to count pending jobs: %w", err)
		}
		log.Info().Str("job", job.String()).Int64("pendingJobs", pending).Msg("Running job")

		if err := r.jobSvc.Dispatch(ctx, job); err != nil {
			return fmt.Errorf("job %s: %w", job.ID, err)
		}
	}
}

// RunOnce drains the queue without sleeping, executing claimed jobs until none
// remain. Used by tests and one-shot maintenance runs.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	ran := 0
	for {
		job, err := r.jobRepo.ClaimNextPending()
		if err != nil {
			return ran, fmt.Errorf("failed to claim next job: %w", err)
		}
		if job == nil {
			return ran, nil
		}
		if err := r.jobSvc.Dispatch(ctx, job); err != nil {
			return ran, fmt.Errorf("job %s: %w", job.ID, err)
		}
		ran++
	}
}
