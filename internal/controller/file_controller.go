package controller

import (
	"net/http"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type FileController struct {
	fileSvc service.FileService
	authSvc service.AuthorizationService
}

func NewFileController(fileSvc service.FileService, authSvc service.AuthorizationService) *FileController {
	return &FileController{fileSvc: fileSvc, authSvc: authSvc}
}

type fileCreateRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// CreateFile godoc
// @Summary Register an uploaded file
// @Description Records file metadata owned by the caller. Blob storage is handled separately.
// @Tags Files
// @Accept json
// @Produce json
// @Param file body fileCreateRequest true "Filename"
// @Success 201 {object} dto.FilePublic
// @Failure 400 {object} dto.ErrorResponse
// @Router /files [post]
func (c *FileController) CreateFile(ctx *gin.Context) {
	var req fileCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	pub, err := c.fileSvc.CreateFile(CurrentUser(ctx), req.Filename)
	if err != nil {
		log.Error().Err(err).Msg("CreateFile: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create file"})
		return
	}
	ctx.JSON(http.StatusCreated, pub)
}

// GetFile godoc
// @Summary Get file metadata
// @Tags Files
// @Produce json
// @Param file_id path string true "File ID"
// @Success 200 {object} dto.FilePublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /files/{file_id} [get]
func (c *FileController) GetFile(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("file_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid file ID format"})
		return
	}
	file, err := c.fileSvc.GetFile(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "File not found"})
		return
	}
	ok, err := c.authSvc.CanView(CurrentUser(ctx), file, false)
	if err != nil {
		log.Error().Err(err).Msg("GetFile: authorization check failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authorization check failed"})
		return
	}
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "File not found"})
		return
	}
	ctx.JSON(http.StatusOK, dto.FilePublic{
		ID:        file.ID,
		Filename:  file.Filename,
		Ext:       file.Ext,
		CreatedAt: file.CreatedAt,
	})
}
