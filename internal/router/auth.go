package router

import (
	"github.com/daycarehub/backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes
		auth.POST("/register",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.RegisterRequest{} }),
			r.authHandler.Register)
		auth.POST("/login",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.LoginRequest{} }),
			r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.RefreshToken)

		auth.GET("/verify-email", r.authHandler.VerifyEmail)
		auth.POST("/verify-email", r.authHandler.VerifyEmail)
		auth.POST("/resend-verification",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.ResendVerificationRequest{} }),
			r.authHandler.ResendVerification)

		auth.POST("/forgot-password",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.ForgotPasswordRequest{} }),
			r.authHandler.ForgotPassword)
		auth.GET("/verify-reset-token", r.authHandler.VerifyResetToken)
		auth.POST("/verify-reset-token", r.authHandler.VerifyResetToken)
		auth.POST("/reset-password",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.ResetPasswordRequest{} }),
			r.authHandler.ResetPassword)

		auth.GET("/check-email", r.authHandler.CheckEmail)

		// Protected routes
		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
			protected.POST("/change-password",
				r.validMw.ValidateRequestBody(func() interface{} { return &dto.ChangePasswordRequest{} }),
				r.authHandler.ChangePassword)
		}
	}
}
