package router

import (
	"github.com/daycarehub/backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.authMw.RequireAuth())
	{
		users.GET("/me", r.userHandler.GetProfile)
		users.PUT("/me",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateProfileRequest{} }),
			r.userHandler.UpdateProfile)
	}
}
