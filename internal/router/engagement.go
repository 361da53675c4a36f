package router

import (
	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) engagementRoutes(version *gin.RouterGroup) {
	favorites := version.Group("/favorites")
	favorites.Use(r.authMw.RequireAuth())
	{
		favorites.GET("", r.engagementHandler.ListFavorites)
		favorites.POST("",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateFavoriteRequest{} }),
			r.engagementHandler.AddFavorite)
		favorites.DELETE("/:daycareId", r.engagementHandler.RemoveFavorite)
	}

	applications := version.Group("/applications")
	applications.Use(r.authMw.RequireAuth())
	{
		applications.GET("", r.engagementHandler.ListApplications)
		applications.POST("",
			r.authMw.RequireUserType(constants.UserTypeParent),
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateApplicationRequest{} }),
			r.engagementHandler.CreateApplication)
		applications.PATCH("/:id/status",
			r.authMw.RequireUserType(constants.UserTypeProvider),
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateApplicationStatusRequest{} }),
			r.engagementHandler.UpdateApplicationStatus)
		applications.DELETE("/:id", r.engagementHandler.WithdrawApplication)
	}

	contactLogs := version.Group("/contact-logs")
	contactLogs.Use(r.authMw.RequireAuth())
	{
		contactLogs.GET("", r.engagementHandler.ListContactLogs)
		contactLogs.POST("",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateContactLogRequest{} }),
			r.engagementHandler.CreateContactLog)
	}

	messages := version.Group("/messages")
	messages.Use(r.authMw.RequireAuth())
	{
		messages.GET("/inbox", r.engagementHandler.Inbox)
		messages.GET("/sent", r.engagementHandler.SentMessages)
		messages.POST("",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.SendMessageRequest{} }),
			r.engagementHandler.SendMessage)
		messages.PATCH("/:id/read", r.engagementHandler.MarkMessageRead)
	}
}
