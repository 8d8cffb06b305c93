package service

import (
	"fmt"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CourseService interface {
	// CreateCourse creates a course and enrolls the creator as its teacher.
	CreateCourse(user *model.User, req dto.CourseCreateRequest) (*dto.CoursePublic, error)
	GetCourse(user *model.User, id uuid.UUID) (*dto.CoursePublic, error)
	// ListCourses returns all courses the user is enrolled in.
	ListCourses(user *model.User) ([]dto.CoursePublic, error)
	// JoinByInviteKey enrolls the user as a student in the course behind the
	// invite key. Returns nil when no course matches.
	JoinByInviteKey(user *model.User, key string) (*dto.CoursePublic, error)
	DeleteCourse(course *model.Course) error

	CreateAssignment(course *model.Course, req dto.AssignmentCreateRequest) (*dto.AssignmentPublic, error)
	ListAssignments(course *model.Course) ([]dto.AssignmentPublic, error)
}

type courseService struct {
	courseRepo     repository.CourseRepository
	assignmentRepo repository.AssignmentRepository
	enrollmentSvc  EnrollmentService
	db             *gorm.DB
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	assignmentRepo repository.AssignmentRepository,
	enrollmentSvc EnrollmentService,
	db *gorm.DB,
) CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		enrollmentSvc:  enrollmentSvc,
		db:             db,
	}
}

func (s *courseService) toPublic(user *model.User, course *model.Course) (*dto.CoursePublic, error) {
	var pub dto.CoursePublic
	if err := copier.Copy(&pub, course); err != nil {
		return nil, fmt.Errorf("failed to map course: %w", err)
	}
	role, err := s.enrollmentSvc.GetCourseRole(user, course)
	if err != nil {
		return nil, err
	}
	if role != nil {
		r := string(*role)
		pub.YourRole = &r
	}
	return &pub, nil
}

func (s *courseService) CreateCourse(user *model.User, req dto.CourseCreateRequest) (*dto.CoursePublic, error) {
	course := &model.Course{Name: req.Name, About: req.About}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}
		link := &model.CourseUserLink{
			CourseID: course.ID,
			UserID:   user.ID,
			Role:     model.CourseRoleTeacher,
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("courseID", course.ID.String()).Str("userID", user.ID.String()).Msg("Course created")
	return s.toPublic(user, course)
}

func (s *courseService) GetCourse(user *model.User, id uuid.UUID) (*dto.CoursePublic, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.toPublic(user, course)
}

func (s *courseService) ListCourses(user *model.User) ([]dto.CoursePublic, error) {
	courses, err := s.courseRepo.FindAllForUser(user.ID)
	if err != nil {
		return nil, err
	}
	pubs := make([]dto.CoursePublic, 0, len(courses))
	for i := range courses {
		pub, err := s.toPublic(user, &courses[i])
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *pub)
	}
	return pubs, nil
}

func (s *courseService) JoinByInviteKey(user *model.User, key string) (*dto.CoursePublic, error) {
	course, err := s.courseRepo.FindByInviteKey(key)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	// An existing enrollment keeps its role; joining again is a no-op.
	role, err := s.enrollmentSvc.GetCourseRole(user, course)
	if err != nil {
		return nil, err
	}
	if role == nil {
		student := model.CourseRoleStudent
		if err := s.enrollmentSvc.Enroll(user, course, &student, nil); err != nil {
			return nil, err
		}
	}
	return s.toPublic(user, course)
}

func (s *courseService) DeleteCourse(course *model.Course) error {
	return s.courseRepo.Delete(course)
}

func (s *courseService) CreateAssignment(course *model.Course, req dto.AssignmentCreateRequest) (*dto.AssignmentPublic, error) {
	assignment := &model.Assignment{
		CourseID: course.ID,
		Name:     req.Name,
		About:    req.About,
		Scorable: req.Scorable,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	var pub dto.AssignmentPublic
	if err := copier.Copy(&pub, assignment); err != nil {
		return nil, fmt.Errorf("failed to map assignment: %w", err)
	}
	return &pub, nil
}

func (s *courseService) ListAssignments(course *model.Course) ([]dto.AssignmentPublic, error) {
	assignments, err := s.assignmentRepo.FindByCourseID(course.ID)
	if err != nil {
		return nil, err
	}
	var pubs []dto.AssignmentPublic
	if err := copier.Copy(&pubs, &assignments); err != nil {
		return nil, fmt.Errorf("failed to map assignments: %w", err)
	}
	return pubs, nil
}
