package service

import (
	"fmt"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/google/uuid"
)

// AuthorizationService decides whether a user may view or edit an entity.
// Checks are read-only capability checks; a negative answer is a normal
// outcome, not an error. Callers translate false into 403/404 at the route
// boundary.
type AuthorizationService interface {
	// CanView reports whether user may view (or edit, when edit=true) the
	// given entity. entity must be one of *model.Course, *model.Assignment,
	// *model.Attempt, *model.Feedback, *model.File; any other type returns a
	// non-nil error because it indicates a bug in the caller.
	CanView(user *model.User, entity any, edit bool) (bool, error)
}

type authorizationService struct {
	courseRepo     repository.CourseRepository
	assignmentRepo repository.AssignmentRepository
	attemptRepo    repository.AttemptRepository
	fileRepo       repository.FileRepository
}

func NewAuthorizationService(
	courseRepo repository.CourseRepository,
	assignmentRepo repository.AssignmentRepository,
	attemptRepo repository.AttemptRepository,
	fileRepo repository.FileRepository,
) AuthorizationService {
	return &authorizationService{
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		attemptRepo:    attemptRepo,
		fileRepo:       fileRepo,
	}
}

func (s *authorizationService) CanView(user *model.User, entity any, edit bool) (bool, error) {
	switch e := entity.(type) {
	case *model.Course:
		return s.canViewCourse(user, e.ID, edit)
	case *model.Assignment:
		return s.canViewAssignment(user, e, edit)
	case *model.Attempt:
		return s.canViewAttempt(user, e, edit)
	case *model.Feedback:
		return s.canViewFeedback(user, e, edit)
	case *model.File:
		return s.canViewFile(user, e, edit)
	default:
		return false, fmt.Errorf("can_view: unsupported entity type %T", entity)
	}
}

// canViewCourse is the base case: the CourseUserLink is the sole source of a
// user's permissions within a course.
func (s *authorizationService) canViewCourse(user *model.User, courseID uuid.UUID, edit bool) (bool, error) {
	link, err := s.courseRepo.FindLink(courseID, user.ID)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, nil
	}
	if edit {
		return link.Role == model.CourseRoleTeacher, nil
	}
	// any enrollment grants view
	return link.Role == model.CourseRoleStudent || link.Role == model.CourseRoleTeacher, nil
}

// canViewAssignment delegates to the course check: an assignment has no
// independent permissions.
func (s *authorizationService) canViewAssignment(user *model.User, assignment *model.Assignment, edit bool) (bool, error) {
	return s.canViewCourse(user, assignment.CourseID, edit)
}

func (s *authorizationService) canViewAttempt(user *model.User, attempt *model.Attempt, edit bool) (bool, error) {
	assignment, err := s.assignmentRepo.FindByID(attempt.AssignmentID)
	if err != nil {
		return false, err
	}

	// Edit access to the assignment (teacher of the course) grants both view
	// and edit of any attempt within it.
	canEditAssignment, err := s.canViewAssignment(user, assignment, true)
	if err != nil {
		return false, err
	}
	if canEditAssignment {
		return true, nil
	}

	// The submitter may view their own attempt, but only while still enrolled
	// in the course; revoking enrollment revokes access to old attempts.
	if !edit && attempt.UserID == user.ID {
		return s.canViewAssignment(user, assignment, false)
	}
	return false, nil
}

func (s *authorizationService) canViewFeedback(user *model.User, feedback *model.Feedback, edit bool) (bool, error) {
	// AI feedback is view-only for everyone.
	if edit && feedback.IsAI {
		return false, nil
	}
	attempt, err := s.attemptRepo.FindByID(feedback.AttemptID)
	if err != nil {
		return false, err
	}
	return s.canViewAttempt(user, attempt, edit)
}

// canViewFile grants the uploader unconditional access; otherwise access to
// any linked course, assignment or attempt suffices (short-circuiting on the
// first success).
func (s *authorizationService) canViewFile(user *model.User, file *model.File, edit bool) (bool, error) {
	if file.UserID == user.ID {
		return true, nil
	}

	courses, err := s.fileRepo.ListCoursesForFile(file.ID)
	if err != nil {
		return false, err
	}
	for i := range courses {
		ok, err := s.canViewCourse(user, courses[i].ID, edit)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	assignments, err := s.fileRepo.ListAssignmentsForFile(file.ID)
	if err != nil {
		return false, err
	}
	for i := range assignments {
		ok, err := s.canViewAssignment(user, &assignments[i], edit)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	attempts, err := s.fileRepo.ListAttemptsForFile(file.ID)
	if err != nil {
		return false, err
	}
	for i := range attempts {
		ok, err := s.canViewAttempt(user, &attempts[i], edit)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
