package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Attempt struct {
	Base
	AssignmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"assignment_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Data         datatypes.JSON `gorm:"not null" json:"data"`

	Feedbacks []Feedback `gorm:"foreignKey:AttemptID" json:"feedbacks,omitempty"`
	Files     []File     `gorm:"many2many:attempt_files" json:"files,omitempty"`
}

// SMARTData is the expected shape of Attempt.Data: a SMART goal and action plan.
// Must match the frontend's models.ts.
type SMARTData struct {
	Goal string `json:"goal"`
	Plan string `json:"plan"`
}

// ParseSMARTData validates and decodes an attempt payload.
func ParseSMARTData(raw datatypes.JSON) (*SMARTData, error) {
	var data SMARTData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid attempt data: %w", err)
	}
	if data.Goal == "" || data.Plan == "" {
		return nil, fmt.Errorf("attempt data must contain non-empty goal and plan")
	}
	return &data, nil
}
