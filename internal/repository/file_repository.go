package repository

import (
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepository interface {
	Create(file *model.File) error
	FindByID(id uuid.UUID) (*model.File, error)

	// Explicit relationship lookups so the authorization engine's data
	// dependencies are visible in its contract.
	ListCoursesForFile(fileID uuid.UUID) ([]model.Course, error)
	ListAssignmentsForFile(fileID uuid.UUID) ([]model.Assignment, error)
	ListAttemptsForFile(fileID uuid.UUID) ([]model.Attempt, error)

	LinkToCourse(file *model.File, course *model.Course) error
	LinkToAssignment(file *model.File, assignment *model.Assignment) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	return r.db.Create(file).Error
}

func (r *fileRepository) FindByID(id uuid.UUID) (*model.File, error) {
	var file model.File
	if err := r.db.First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) ListCoursesForFile(fileID uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.
		Joins("JOIN course_files ON course_files.course_id = courses.id").
		Where("course_files.file_id = ?", fileID).
		Find(&courses).Error
	return courses, err
}

func (r *fileRepository) ListAssignmentsForFile(fileID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.
		Joins("JOIN assignment_files ON assignment_files.assignment_id = assignments.id").
		Where("assignment_files.file_id = ?", fileID).
		Find(&assignments).Error
	return assignments, err
}

func (r *fileRepository) ListAttemptsForFile(fileID uuid.UUID) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Joins("JOIN attempt_files ON attempt_files.attempt_id = attempts.id").
		Where("attempt_files.file_id = ?", fileID).
		Find(&attempts).Error
	return attempts, err
}

func (r *fileRepository) LinkToCourse(file *model.File, course *model.Course) error {
	return r.db.Model(course).Association("Files").Append(file)
}

func (r *fileRepository) LinkToAssignment(file *model.File, assignment *model.Assignment) error {
	return r.db.Model(assignment).Association("Files").Append(file)
}
