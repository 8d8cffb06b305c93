package repository

import (
	"errors"
	"fmt"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uuid.UUID) (*model.Course, error)
	FindByInviteKey(key string) (*model.Course, error)
	FindAllForUser(userID uuid.UUID) ([]model.Course, error)
	Delete(course *model.Course) error

	// FindLink returns the enrollment link for (course, user), or nil if the
	// user is not enrolled.
	FindLink(courseID, userID uuid.UUID) (*model.CourseUserLink, error)
	FindLinksByCourse(courseID uuid.UUID) ([]model.CourseUserLink, error)
	CreateLink(link *model.CourseUserLink) error
	UpdateLink(link *model.CourseUserLink) error
	DeleteLink(link *model.CourseUserLink) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByInviteKey(key string) (*model.Course, error) {
	var course model.Course
	err := r.db.First(&course, "invite_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAllForUser(userID uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.
		Joins("JOIN course_user_links ON course_user_links.course_id = courses.id").
		Where("course_user_links.user_id = ?", userID).
		Order("courses.created_at DESC").
		Find(&courses).Error
	return courses, err
}

// Delete removes a course along with its assignments and enrollment links.
// Lifecycle ownership is Course -> Assignment -> Attempt -> Feedback/File.
func (r *courseRepository) Delete(course *model.Course) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&model.Assignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete course assignments: %w", err)
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&model.CourseUserLink{}).Error; err != nil {
			return fmt.Errorf("failed to delete course enrollments: %w", err)
		}
		return tx.Delete(course).Error
	})
}

func (r *courseRepository) FindLink(courseID, userID uuid.UUID) (*model.CourseUserLink, error) {
	var link model.CourseUserLink
	err := r.db.First(&link, "course_id = ? AND user_id = ?", courseID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *courseRepository) FindLinksByCourse(courseID uuid.UUID) ([]model.CourseUserLink, error) {
	var links []model.CourseUserLink
	err := r.db.Where("course_id = ?", courseID).Find(&links).Error
	return links, err
}

func (r *courseRepository) CreateLink(link *model.CourseUserLink) error {
	return r.db.Create(link).Error
}

func (r *courseRepository) UpdateLink(link *model.CourseUserLink) error {
	return r.db.Save(link).Error
}

func (r *courseRepository) DeleteLink(link *model.CourseUserLink) error {
	return r.db.Delete(link).Error
}
