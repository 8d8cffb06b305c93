package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AttemptCreateRequest struct {
	AssignmentID uuid.UUID       `json:"assignment_id" binding:"required"`
	Data         json.RawMessage `json:"data" binding:"required"`
	FileIDs      []uuid.UUID     `json:"file_ids"`
}

type AttemptPublic struct {
	ID           uuid.UUID        `json:"id"`
	AssignmentID uuid.UUID        `json:"assignment_id"`
	UserID       uuid.UUID        `json:"user_id"`
	Data         json.RawMessage  `json:"data"`
	Feedbacks    []FeedbackPublic `json:"feedbacks"`
	Files        []FilePublic     `json:"files"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type FeedbackCreateRequest struct {
	// AttemptID is taken from the URL path, not the request body.
	AttemptID uuid.UUID       `json:"-"`
	Data      json.RawMessage `json:"data" binding:"required"`
}

type FeedbackPublic struct {
	ID        uuid.UUID       `json:"id"`
	AttemptID uuid.UUID       `json:"attempt_id"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	IsAI      bool            `json:"is_ai"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type FilePublic struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Ext       string    `json:"ext"`
	CreatedAt time.Time `json:"created_at"`
}
