package handler

import (
	"net/http"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/service"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetProfile")

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to fetch profile").
			UserID(userID).
			Err(err).
			Log()
		c.JSON(apperrors.StatusOf(err), constants.BuildErrorResponse(constants.MsgNotFound, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(profile, constants.MsgSuccess))
}

// UpdateProfile applies partial profile updates.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProfile")

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	profile, err := h.userService.UpdateProfile(ctx, userID, req)
	if err != nil {
		logger.WarnWithContext(ctx, "Profile update failed").
			UserID(userID).
			Err(err).
			Log()
		c.JSON(apperrors.StatusOf(err), constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	logger.InfoWithContext(ctx, "Profile updated").
		UserID(userID).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(profile, constants.MsgProfileUpdated))
}
