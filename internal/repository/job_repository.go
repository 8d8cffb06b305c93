package repository

import (
	"errors"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(job *model.Job) error
	FindByID(id uuid.UUID) (*model.Job, error)
	Update(job *model.Job) error
	CountPending() (int64, error)

	// ClaimNextPending atomically transitions the oldest pending job to
	// in_progress and returns it. Returns nil when no pending job exists.
	// Safe for multiple concurrent runner processes sharing one queue.
	ClaimNextPending() (*model.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) FindByID(id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).Where("status = ?", model.JobStatusPending).Count(&count).Error
	return count, err
}

func (r *jobRepository) ClaimNextPending() (*model.Job, error) {
	for {
		var job model.Job
		err := r.db.Where("status = ?", model.JobStatusPending).
			Order("created_at ASC").
			First(&job).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		// The status guard makes the update atomic: of N concurrent claimers
		// only one sees RowsAffected == 1, the rest loop and pick another job.
		res := r.db.Model(&model.Job{}).
			Where("id = ? AND status = ?", job.ID, model.JobStatusPending).
			Update("status", model.JobStatusInProgress)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race for this job
			continue
		}

		job.Status = model.JobStatusInProgress
		return &job, nil
	}
}
