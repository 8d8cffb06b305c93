package model

import (
	"github.com/google/uuid"
)

// File is an uploaded file, linkable to courses, assignments and attempts.
// Storage of the file contents themselves is handled outside this backend.
type File struct {
	Base
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename string    `gorm:"not null" json:"filename"`
	Ext      string    `gorm:"not null" json:"ext"`

	Courses     []Course     `gorm:"many2many:course_files" json:"-"`
	Assignments []Assignment `gorm:"many2many:assignment_files" json:"-"`
	Attempts    []Attempt    `gorm:"many2many:attempt_files" json:"-"`
}
