package handler

import (
	"net/http"

	"github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/dto"
	"github.com/daycarehub/backend/internal/service"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	jwtService  *service.JWTService
	cookies     *cookieWriter
}

func NewAuthHandler(authService *service.AuthService, jwtService *service.JWTService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		cookies:     newCookieWriter(cfg),
	}
}

// Register creates a new account and dispatches the verification email.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid registration payload").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	result, err := h.authService.Register(ctx, req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("email", req.Email).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	logger.InfoWithContext(ctx, "User registered").
		String("email", req.Email).
		String("user_type", req.UserType).
		Log()

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(result, constants.MsgRegistered))
}

// Login authenticates and sets the auth cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	user, tokens, err := h.authService.Login(ctx, req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login rejected").
			String("email", req.Email).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	h.cookies.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken, h.jwtService.AccessTTL(), h.jwtService.RefreshTTL())

	logger.InfoWithContext(ctx, "User logged in").
		UserID(user.ID).
		String("email", user.Email).
		Log()

	response := dto.NewLoginResponse(user, tokens.AccessToken, tokens.RefreshToken, int(h.jwtService.AccessTTL().Seconds()))
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(response, constants.MsgLoginSuccess))
}

// RefreshToken mints a fresh access token from the refresh cookie. A
// body token is accepted for clients that cannot use cookies. The
// refresh token itself is not rotated.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshToken")

	refreshToken, _ := c.Cookie(constants.CookieRefreshToken)
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	user, accessToken, err := h.authService.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		logger.WarnWithContext(ctx, "Token refresh rejected").
			Err(err).
			Log()
		h.cookies.clearAuthCookies(c)
		respondDomainError(c, err)
		return
	}

	h.cookies.setAccessCookie(c, accessToken, h.jwtService.AccessTTL())

	logger.InfoWithContext(ctx, "Access token refreshed").
		UserID(user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(dto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(h.jwtService.AccessTTL().Seconds()),
	}, constants.MsgTokenRefreshed))
}

// Logout clears the auth cookies. Tokens are stateless so nothing is
// revoked server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	h.cookies.clearAuthCookies(c)

	if userID, ok := ctxutil.GetUserID(ctx); ok {
		logger.InfoWithContext(ctx, "User logged out").
			UserID(userID).
			Log()
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgLogoutSuccess))
}

// VerifyEmail consumes a verification token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyEmail")

	token := c.Query("token")
	if token == "" {
		var req dto.VerifyEmailRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.Token
		}
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidOrExpired, nil))
		return
	}

	user, alreadyVerified, err := h.authService.VerifyEmail(ctx, token)
	if err != nil {
		logger.WarnWithContext(ctx, "Email verification rejected").
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	message := constants.MsgEmailVerified
	if alreadyVerified {
		message = constants.MsgAlreadyVerified
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(user, message))
}

// ResendVerification issues a new verification token. The response is
// the same whether or not the account exists.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResendVerification")

	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	if err := h.authService.ResendVerification(ctx, req.Email); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgVerificationResent))
}

// ForgotPassword starts the password reset flow. The response is the
// same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ForgotPassword")

	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	if err := h.authService.RequestPasswordReset(ctx, req.Email); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgPasswordResetSent))
}

// VerifyResetToken checks a reset token without consuming it, so the
// client can show the reset form only for valid links.
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyResetToken")

	token := c.Query("token")
	if token == "" {
		var req dto.VerifyResetTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.Token
		}
	}

	if err := h.authService.VerifyResetToken(ctx, token); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgResetTokenValid))
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	if err := h.authService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		logger.WarnWithContext(ctx, "Password reset rejected").
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgPasswordReset))
}

// ChangePassword updates the password for the authenticated user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChangePassword")

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	if err := h.authService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(nil, constants.MsgPasswordChanged))
}

// CheckEmail reports whether an email is already registered.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CheckEmail")

	email := c.Query("email")
	if email == "" {
		var req dto.CheckEmailRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			email = req.Email
		}
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
		return
	}

	exists, err := h.authService.CheckEmail(ctx, email)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(dto.CheckEmailResponse{Exists: exists}, constants.MsgSuccess))
}
