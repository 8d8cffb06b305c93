package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type FileService interface {
	// CreateFile registers an uploaded file's metadata, owned by the uploader.
	CreateFile(user *model.User, filename string) (*dto.FilePublic, error)
	GetFile(id uuid.UUID) (*model.File, error)
	AttachToCourse(file *model.File, course *model.Course) error
	AttachToAssignment(file *model.File, assignment *model.Assignment) error
}

type fileService struct {
	fileRepo repository.FileRepository
}

func NewFileService(fileRepo repository.FileRepository) FileService {
	return &fileService{fileRepo: fileRepo}
}

func (s *fileService) CreateFile(user *model.User, filename string) (*dto.FilePublic, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	file := &model.File{
		UserID:   user.ID,
		Filename: filename,
		Ext:      ext,
	}
	if err := s.fileRepo.Create(file); err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	var pub dto.FilePublic
	if err := copier.Copy(&pub, file); err != nil {
		return nil, fmt.Errorf("failed to map file: %w", err)
	}
	return &pub, nil
}

func (s *fileService) GetFile(id uuid.UUID) (*model.File, error) {
	return s.fileRepo.FindByID(id)
}

func (s *fileService) AttachToCourse(file *model.File, course *model.Course) error {
	return s.fileRepo.LinkToCourse(file, course)
}

func (s *fileService) AttachToAssignment(file *model.File, assignment *model.Assignment) error {
	return s.fileRepo.LinkToAssignment(file, assignment)
}
