package handler

import (
	"net/http"
	"strconv"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"github.com/daycarehub/backend/internal/service"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// EngagementHandler exposes favorites, applications, contact logs and
// messages for signed-in users.
type EngagementHandler struct {
	favorites    *service.FavoriteService
	applications *service.ApplicationService
	contactLogs  *service.ContactLogService
	messages     *service.MessageService
	users        service.UserStore
}

func NewEngagementHandler(
	favorites *service.FavoriteService,
	applications *service.ApplicationService,
	contactLogs *service.ContactLogService,
	messages *service.MessageService,
	users service.UserStore,
) *EngagementHandler {
	return &EngagementHandler{
		favorites:    favorites,
		applications: applications,
		contactLogs:  contactLogs,
		messages:     messages,
		users:        users,
	}
}

func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	}
	return userID, ok
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid ID", nil))
		return 0, false
	}
	return uint(id), true
}

func respondDomainError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	message := constants.MsgInternalServer
	if domainErr := apperrors.GetDomainError(err); domainErr != nil && status < http.StatusInternalServerError {
		message = domainErr.Message
	}
	c.JSON(status, constants.BuildErrorResponse(message, nil))
}

// AddFavorite saves a listing for the current user.
func (h *EngagementHandler) AddFavorite(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddFavorite")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	favorite, err := h.favorites.Add(ctx, userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(favorite, constants.MsgSuccess))
}

// ListFavorites returns the current user's saved listings.
func (h *EngagementHandler) ListFavorites(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListFavorites")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	favorites, err := h.favorites.List(ctx, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(favorites, constants.MsgSuccess))
}

// RemoveFavorite unsaves a listing.
func (h *EngagementHandler) RemoveFavorite(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RemoveFavorite")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	daycareID, ok := parseIDParam(c, "daycareId")
	if !ok {
		return
	}

	if err := h.favorites.Remove(ctx, userID, daycareID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgSuccess))
}

// CreateApplication submits an enrollment application.
func (h *EngagementHandler) CreateApplication(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateApplication")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	application, err := h.applications.Create(ctx, userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(application, constants.MsgSuccess))
}

// ListApplications returns the current user's applications, or the
// applications to the provider's listing when called by a provider.
func (h *EngagementHandler) ListApplications(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListApplications")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var (
		applications []model.Application
		err          error
	)
	if ctxutil.GetUserType(ctx) == constants.UserTypeProvider {
		var provider *model.User
		provider, err = h.users.GetByID(ctx, userID)
		if err != nil {
			respondDomainError(c, apperrors.WrapError(apperrors.ErrInternal, err))
			return
		}
		applications, err = h.applications.ListForProvider(ctx, provider)
	} else {
		applications, err = h.applications.ListForUser(ctx, userID)
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(applications, constants.MsgSuccess))
}

// UpdateApplicationStatus moves an application through review states.
func (h *EngagementHandler) UpdateApplicationStatus(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateApplicationStatus")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	applicationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	provider, err := h.users.GetByID(ctx, userID)
	if err != nil {
		respondDomainError(c, apperrors.WrapError(apperrors.ErrInternal, err))
		return
	}

	application, err := h.applications.UpdateStatus(ctx, provider, applicationID, req)
	if err != nil {
		logger.WarnWithContext(ctx, "Application status update failed").
			Uint("application_id", applicationID).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(application, constants.MsgSuccess))
}

// WithdrawApplication deletes the caller's own application.
func (h *EngagementHandler) WithdrawApplication(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "WithdrawApplication")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	applicationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.applications.Withdraw(ctx, userID, applicationID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgSuccess))
}

// CreateContactLog records an outreach attempt.
func (h *EngagementHandler) CreateContactLog(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateContactLog")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContactLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	log, err := h.contactLogs.Create(ctx, userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(log, constants.MsgSuccess))
}

// ListContactLogs returns the caller's outreach history.
func (h *EngagementHandler) ListContactLogs(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListContactLogs")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logs, err := h.contactLogs.List(ctx, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(logs, constants.MsgSuccess))
}

// SendMessage delivers a direct message to another account.
func (h *EngagementHandler) SendMessage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SendMessage")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	message, err := h.messages.Send(ctx, userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(message, constants.MsgSuccess))
}

// Inbox returns messages addressed to the caller.
func (h *EngagementHandler) Inbox(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Inbox")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	messages, err := h.messages.Inbox(ctx, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(messages, constants.MsgSuccess))
}

// SentMessages returns messages the caller has sent.
func (h *EngagementHandler) SentMessages(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SentMessages")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	messages, err := h.messages.Sent(ctx, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(messages, constants.MsgSuccess))
}

// MarkMessageRead flags an inbox message as read.
func (h *EngagementHandler) MarkMessageRead(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "MarkMessageRead")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.messages.MarkRead(ctx, userID, messageID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgSuccess))
}
