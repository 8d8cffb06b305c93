package repository

import (
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByID(id uuid.UUID) (*model.Assignment, error)
	FindByCourseID(courseID uuid.UUID) ([]model.Assignment, error)
	Update(assignment *model.Assignment) error
	Delete(id uuid.UUID) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindByCourseID(courseID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.Where("course_id = ?", courseID).Order("created_at ASC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) Update(assignment *model.Assignment) error {
	return r.db.Save(assignment).Error
}

func (r *assignmentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Assignment{}, "id = ?", id).Error
}
