package controller

import (
	"net/http"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptSvc     service.AttemptService
	feedbackSvc    service.FeedbackService
	authSvc        service.AuthorizationService
	attemptRepo    repository.AttemptRepository
	assignmentRepo repository.AssignmentRepository
	feedbackRepo   repository.FeedbackRepository
}

func NewAttemptController(
	attemptSvc service.AttemptService,
	feedbackSvc service.FeedbackService,
	authSvc service.AuthorizationService,
	attemptRepo repository.AttemptRepository,
	assignmentRepo repository.AssignmentRepository,
	feedbackRepo repository.FeedbackRepository,
) *AttemptController {
	return &AttemptController{
		attemptSvc:     attemptSvc,
		feedbackSvc:    feedbackSvc,
		authSvc:        authSvc,
		attemptRepo:    attemptRepo,
		assignmentRepo: assignmentRepo,
		feedbackRepo:   feedbackRepo,
	}
}

func (c *AttemptController) loadAuthorizedAttempt(ctx *gin.Context, edit bool) *model.Attempt {
	id, err := uuid.Parse(ctx.Param("attempt_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return nil
	}
	attempt, err := c.attemptRepo.Find(id)
	if err != nil {
		log.Error().Err(err).Msg("AttemptController: failed to load attempt")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load attempt"})
		return nil
	}
	if attempt == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
		return nil
	}
	ok, err := c.authSvc.CanView(CurrentUser(ctx), attempt, edit)
	if err != nil {
		log.Error().Err(err).Msg("AttemptController: authorization check failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authorization check failed"})
		return nil
	}
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
		return nil
	}
	return attempt
}

// SubmitAttempt godoc
// @Summary Submit an attempt for an assignment
// @Description Stores the attempt and enqueues AI feedback generation.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt body dto.AttemptCreateRequest true "Attempt payload (SMART goal and plan)"
// @Success 201 {object} dto.AttemptPublic
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req dto.AttemptCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	user := CurrentUser(ctx)

	// Submitting requires view access to the assignment (i.e. enrollment).
	assignment, err := c.assignmentRepo.FindByID(req.AssignmentID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Assignment not found"})
		return
	}
	ok, err := c.authSvc.CanView(user, assignment, false)
	if err != nil {
		log.Error().Err(err).Msg("SubmitAttempt: authorization check failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authorization check failed"})
		return
	}
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Assignment not found"})
		return
	}

	pub, err := c.attemptSvc.SubmitAttempt(user, req)
	if err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: rejected")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to submit attempt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, pub)
}

// GetAttempt godoc
// @Summary Get one attempt with its feedback
// @Tags Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptPublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attempt := c.loadAuthorizedAttempt(ctx, false)
	if attempt == nil {
		return
	}
	pub, err := c.attemptSvc.GetAttempt(attempt.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load attempt"})
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

// ListAssignmentAttempts godoc
// @Summary List attempts for an assignment
// @Description Teachers see all attempts; students only their own.
// @Tags Attempts
// @Produce json
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {array} dto.AttemptPublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{assignment_id}/attempts [get]
func (c *AttemptController) ListAssignmentAttempts(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("assignment_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid assignment ID format"})
		return
	}
	assignment, err := c.assignmentRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Assignment not found"})
		return
	}
	user := CurrentUser(ctx)
	canEdit, err := c.authSvc.CanView(user, assignment, true)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authorization check failed"})
		return
	}
	if canEdit {
		pubs, err := c.attemptSvc.ListAttemptsForAssignment(assignment.ID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list attempts"})
			return
		}
		ctx.JSON(http.StatusOK, pubs)
		return
	}
	canView, err := c.authSvc.CanView(user, assignment, false)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authorization check failed"})
		return
	}
	if !canView {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Assignment not found"})
		return
	}
	pubs, err := c.attemptSvc.ListOwnAttempts(user, assignment.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list attempts"})
		return
	}
	ctx.JSON(http.StatusOK, pubs)
}

// CreateFeedback godoc
// @Summary Add human feedback to an attempt
// @Description Requires edit access to the attempt (teacher of the course).
// @Tags Feedback
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param feedback body dto.FeedbackCreateRequest true "Feedback payload"
// @Success 201 {object} dto.FeedbackPublic
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/feedback [post]
func (c *AttemptController) CreateFeedback(ctx *gin.Context) {
	attempt := c.loadAuthorizedAttempt(ctx, true)
	if attempt == nil {
		return
	}
	var req dto.FeedbackCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	req.AttemptID = attempt.ID
	pub, err := c.feedbackSvc.CreateFeedback(CurrentUser(ctx), req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateFeedback: rejected")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create feedback", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, pub)
}

// ListFeedback godoc
// @Summary List feedback on an attempt
// @Tags Feedback
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {array} dto.FeedbackPublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/feedback [get]
func (c *AttemptController) ListFeedback(ctx *gin.Context) {
	attempt := c.loadAuthorizedAttempt(ctx, false)
	if attempt == nil {
		return
	}
	pubs, err := c.feedbackSvc.ListFeedbackForAttempt(attempt.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list feedback"})
		return
	}
	ctx.JSON(http.StatusOK, pubs)
}
