package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRole string

const (
	CourseRoleStudent CourseRole = "student"
	CourseRoleTeacher CourseRole = "teacher"
)

type Course struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	About     string `gorm:"type:text;not null;default:''" json:"about"`
	InviteKey string `gorm:"uniqueIndex;not null" json:"invite_key"`

	// Deleting a course deletes its assignments (see CourseRepository.Delete).
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	Files       []File       `gorm:"many2many:course_files" json:"files,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if err := c.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if c.InviteKey == "" {
		c.InviteKey = RandomToken(16)
	}
	return nil
}

// CourseUserLink is the sole source of a user's permissions within a course.
// Unique per (course, user).
type CourseUserLink struct {
	Base
	CourseID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_course_user" json:"course_id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_course_user" json:"user_id"`
	Role     CourseRole `gorm:"not null" json:"role"`
	GroupNum *int       `json:"group_num,omitempty"`
}
