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

type CourseController struct {
	courseSvc     service.CourseService
	enrollmentSvc service.EnrollmentService
	authSvc       service.AuthorizationService
	userSvc       service.UserService
	courseRepo    repository.CourseRepository
}

func NewCourseController(
	courseSvc service.CourseService,
	enrollmentSvc service.EnrollmentService,
	authSvc service.AuthorizationService,
	userSvc service.UserService,
	courseRepo repository.CourseRepository,
) *CourseController {
	return &CourseController{
		courseSvc:     courseSvc,
		enrollmentSvc: enrollmentSvc,
		authSvc:       authSvc,
		userSvc:       userSvc,
		courseRepo:    courseRepo,
	}
}

// loadAuthorizedCourse resolves the :course_id param, checks access and writes
// the error response itself when access is denied. Missing and forbidden both
// answer 404 so course existence is not leaked.
func (c *CourseController) loadAuthorizedCourse(ctx *gin.Context, edit bool) *model.Course {
	id, err := uuid.Parse(ctx.Param("course_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course ID format"})
		return nil
	}
	course, err := c.courseRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Course not found"})
		return nil
	}
	user := CurrentUser(ctx)
	ok, err := c.authSvc.CanView(user, course, edit)
	if err != nil {
		log.Error().Err(err).Msg("CourseController: authorization check failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authorization check failed"})
		return nil
	}
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Course not found"})
		return nil
	}
	return course
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a course and enrolls the caller as its teacher.
// @Tags Courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateRequest true "Course fields"
// @Success 201 {object} dto.CoursePublic
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	pub, err := c.courseSvc.CreateCourse(CurrentUser(ctx), req)
	if err != nil {
		log.Error().Err(err).Msg("CreateCourse: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create course"})
		return
	}
	ctx.JSON(http.StatusCreated, pub)
}

// ListCourses godoc
// @Summary List the caller's courses
// @Tags Courses
// @Produce json
// @Success 200 {array} dto.CoursePublic
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	pubs, err := c.courseSvc.ListCourses(CurrentUser(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListCourses: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list courses"})
		return
	}
	ctx.JSON(http.StatusOK, pubs)
}

// GetCourse godoc
// @Summary Get one course
// @Tags Courses
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} dto.CoursePublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course := c.loadAuthorizedCourse(ctx, false)
	if course == nil {
		return
	}
	pub, err := c.courseSvc.GetCourse(CurrentUser(ctx), course.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load course"})
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Teacher only. Removes the course with its assignments and enrollments.
// @Tags Courses
// @Param course_id path string true "Course ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	course := c.loadAuthorizedCourse(ctx, true)
	if course == nil {
		return
	}
	if err := c.courseSvc.DeleteCourse(course); err != nil {
		log.Error().Err(err).Str("courseID", course.ID.String()).Msg("DeleteCourse: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete course"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// JoinCourse godoc
// @Summary Join a course via invite key
// @Tags Courses
// @Produce json
// @Param invite_key path string true "Invite key"
// @Success 200 {object} dto.CoursePublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/join/{invite_key} [post]
func (c *CourseController) JoinCourse(ctx *gin.Context) {
	pub, err := c.courseSvc.JoinByInviteKey(CurrentUser(ctx), ctx.Param("invite_key"))
	if err != nil {
		log.Error().Err(err).Msg("JoinCourse: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to join course"})
		return
	}
	if pub == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No course matches this invite key"})
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

// EnrollUser godoc
// @Summary Set a user's role in a course
// @Description Teacher only. A null role revokes the enrollment.
// @Tags Courses
// @Accept json
// @Param course_id path string true "Course ID"
// @Param enrollment body dto.EnrollRequest true "Target user and role"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id}/enrollments [put]
func (c *CourseController) EnrollUser(ctx *gin.Context) {
	course := c.loadAuthorizedCourse(ctx, true)
	if course == nil {
		return
	}
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	target, err := c.userSvc.GetUser(req.UserID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "User not found"})
		return
	}
	var role *model.CourseRole
	if req.Role != nil {
		r := model.CourseRole(*req.Role)
		if r != model.CourseRoleStudent && r != model.CourseRoleTeacher {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid role"})
			return
		}
		role = &r
	}
	if err := c.enrollmentSvc.Enroll(target, course, role, req.GroupNum); err != nil {
		log.Error().Err(err).Msg("EnrollUser: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update enrollment"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateAssignment godoc
// @Summary Create an assignment in a course
// @Description Teacher only.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param assignment body dto.AssignmentCreateRequest true "Assignment fields"
// @Success 201 {object} dto.AssignmentPublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id}/assignments [post]
func (c *CourseController) CreateAssignment(ctx *gin.Context) {
	course := c.loadAuthorizedCourse(ctx, true)
	if course == nil {
		return
	}
	var req dto.AssignmentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	pub, err := c.courseSvc.CreateAssignment(course, req)
	if err != nil {
		log.Error().Err(err).Msg("CreateAssignment: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create assignment"})
		return
	}
	ctx.JSON(http.StatusCreated, pub)
}

// ListAssignments godoc
// @Summary List assignments in a course
// @Tags Assignments
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.AssignmentPublic
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id}/assignments [get]
func (c *CourseController) ListAssignments(ctx *gin.Context) {
	course := c.loadAuthorizedCourse(ctx, false)
	if course == nil {
		return
	}
	pubs, err := c.courseSvc.ListAssignments(course)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list assignments"})
		return
	}
	ctx.JSON(http.StatusOK, pubs)
}
