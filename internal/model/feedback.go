package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Feedback is a single piece of feedback on an attempt, either authored by a
// user (IsAI=false, UserID set) or generated by the system (IsAI=true, UserID nil).
type Feedback struct {
	Base
	AttemptID uuid.UUID      `gorm:"type:uuid;not null;index" json:"attempt_id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	IsAI      bool           `gorm:"not null;default:false" json:"is_ai"`
	Data      datatypes.JSON `gorm:"not null" json:"data"`
}

// FeedbackData is the expected shape of Feedback.Data.
// Must match the frontend's models.ts.
type FeedbackData struct {
	Feedback      string          `json:"feedback"`
	Prompt        *string         `json:"prompt,omitempty"`
	Cost          float64         `json:"cost,omitempty"`
	Approved      bool            `json:"approved"`
	OtherComments *string         `json:"other_comments,omitempty"`
	Score         *int            `json:"score,omitempty"`
	EvalMetrics   json.RawMessage `json:"eval_metrics,omitempty"`
}

func (d FeedbackData) ToJSON() (datatypes.JSON, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feedback data: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func ParseFeedbackData(raw datatypes.JSON) (*FeedbackData, error) {
	var data FeedbackData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid feedback data: %w", err)
	}
	return &data, nil
}
