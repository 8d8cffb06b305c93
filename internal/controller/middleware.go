package controller

import (
	"net/http"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

// RequireUser resolves the authenticated user from the X-User-ID header set by
// the auth proxy in front of this API, and aborts with 401 when it is missing
// or unknown.
func RequireUser(userSvc service.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		idStr := ctx.GetHeader("X-User-ID")
		if idStr == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing X-User-ID header"})
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid X-User-ID header"})
			return
		}
		user, err := userSvc.GetUser(id)
		if err != nil {
			log.Warn().Err(err).Str("userID", idStr).Msg("RequireUser: unknown user")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unknown user"})
			return
		}
		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the user placed in the context by RequireUser.
func CurrentUser(ctx *gin.Context) *model.User {
	return ctx.MustGet(currentUserKey).(*model.User)
}
