package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeAIFeedback JobType = "ai_feedback"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job is a unit of background work. Jobs are created PENDING, claimed by the
// runner (PENDING -> IN_PROGRESS) and finished terminally as COMPLETED or
// FAILED. Jobs are never deleted here.
type Job struct {
	Base
	JobType JobType        `gorm:"not null" json:"job_type"`
	Status  JobStatus      `gorm:"not null;default:'pending';index" json:"status"`
	Data    datatypes.JSON `gorm:"not null" json:"data"`
	Error   *string        `json:"error,omitempty"`
	Retries int            `gorm:"not null;default:0" json:"retries"`
}

func (j *Job) String() string {
	return fmt.Sprintf("<job id=%s, job_type=%s, status=%s />", j.ID, j.JobType, j.Status)
}

// AIFeedbackJobData is the payload shape for JobTypeAIFeedback jobs.
type AIFeedbackJobData struct {
	AttemptID uuid.UUID `json:"attempt_id"`
}

func ParseAIFeedbackJobData(raw datatypes.JSON) (*AIFeedbackJobData, error) {
	var data AIFeedbackJobData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid job data: %w", err)
	}
	if data.AttemptID == uuid.Nil {
		return nil, fmt.Errorf("job data is missing attempt_id")
	}
	return &data, nil
}

// NewAIFeedbackJob builds a pending AI feedback job for the given attempt.
func NewAIFeedbackJob(attemptID uuid.UUID) (*Job, error) {
	raw, err := json.Marshal(AIFeedbackJobData{AttemptID: attemptID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode job data: %w", err)
	}
	return &Job{
		JobType: JobTypeAIFeedback,
		Status:  JobStatusPending,
		Data:    datatypes.JSON(raw),
	}, nil
}
