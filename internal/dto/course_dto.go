package dto

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type CourseCreateRequest struct {
	Name  string `json:"name" binding:"required"`
	About string `json:"about"`
}

// CoursePublic is the public representation of a course, annotated with the
// requesting user's role (nil when not enrolled).
type CoursePublic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	About     string    `json:"about"`
	YourRole  *string   `json:"your_role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AssignmentCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	About    string `json:"about"`
	Scorable bool   `json:"scorable"`
}

type AssignmentPublic struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Name      string    `json:"name"`
	About     string    `json:"about"`
	Scorable  bool      `json:"scorable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnrollRequest updates one user's role within a course. A null role revokes
// the enrollment.
type EnrollRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Role     *string   `json:"role"`
	GroupNum *int      `json:"group_num,omitempty"`
}
