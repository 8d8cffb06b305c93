package service

import (
	"errors"
	"fmt"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	// Enroll sets the user's role within a course. A nil role revokes the
	// enrollment entirely. The change is applied transactionally.
	Enroll(user *model.User, course *model.Course, role *model.CourseRole, groupNum *int) error

	// GetCourseRole returns the user's role in the course, or nil when the
	// user is not enrolled.
	GetCourseRole(user *model.User, course *model.Course) (*model.CourseRole, error)
}

type enrollmentService struct {
	courseRepo repository.CourseRepository
	db         *gorm.DB // for transaction handling
}

func NewEnrollmentService(courseRepo repository.CourseRepository, db *gorm.DB) EnrollmentService {
	return &enrollmentService{courseRepo: courseRepo, db: db}
}

func (s *enrollmentService) Enroll(user *model.User, course *model.Course, role *model.CourseRole, groupNum *int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var link model.CourseUserLink
		err := tx.First(&link, "course_id = ? AND user_id = ?", course.ID, user.ID).Error
		notFound := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !notFound {
			return fmt.Errorf("failed to look up enrollment: %w", err)
		}

		if role == nil {
			if notFound {
				return nil
			}
			log.Info().Str("userID", user.ID.String()).Str("courseID", course.ID.String()).Msg("Revoking course enrollment")
			return tx.Delete(&link).Error
		}

		if notFound {
			link = model.CourseUserLink{
				CourseID: course.ID,
				UserID:   user.ID,
				Role:     *role,
				GroupNum: groupNum,
			}
			return tx.Create(&link).Error
		}

		link.Role = *role
		if groupNum != nil {
			link.GroupNum = groupNum
		}
		return tx.Save(&link).Error
	})
}

func (s *enrollmentService) GetCourseRole(user *model.User, course *model.Course) (*model.CourseRole, error) {
	link, err := s.courseRepo.FindLink(course.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, nil
	}
	return &link.Role, nil
}
