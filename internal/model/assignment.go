package model

import (
	"github.com/google/uuid"
)

type Assignment struct {
	Base
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Name     string    `gorm:"not null" json:"name"`
	About    string    `gorm:"type:text;not null;default:''" json:"about"`
	Scorable bool      `gorm:"not null;default:false" json:"scorable"`

	Files []File `gorm:"many2many:assignment_files" json:"files,omitempty"`
}
