package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/daycarehub/backend/internal/constants"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/service"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	jwtService *service.JWTService
}

func NewAuthMiddleware(jwtService *service.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// extractToken prefers the httpOnly access cookie and falls back to
// the Authorization header for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	if !strings.HasPrefix(authHeader, constants.BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, constants.BearerPrefix)
}

// RequireAuth validates the access token and stores the authenticated
// identity in both the gin context and the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tokenString := extractToken(c)
		if tokenString == "" {
			logger.WarnWithContext(ctx, "Missing access token").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Log()
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			message := constants.MsgUnauthorized
			if domainErr := apperrors.GetDomainError(err); domainErr != nil && domainErr.Code == apperrors.ErrTokenExpired.Code {
				message = constants.MsgTokenExpired
			}
			logger.WarnWithContext(ctx, "Access token rejected").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(message, nil))
			c.Abort()
			return
		}

		c.Set(constants.GinKeyUserID, claims.UserID)
		c.Set(constants.GinKeyUserEmail, claims.Email)
		c.Set(constants.GinKeyUserType, claims.UserType)
		c.Set(constants.GinKeyClaims, claims)

		ctx = context.WithValue(ctx, ctxutil.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, ctxutil.UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, ctxutil.UserTypeKey, claims.UserType)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireUserType restricts a route to the listed account types. Must
// run after RequireAuth.
func (m *AuthMiddleware) RequireUserType(userTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString(constants.GinKeyUserType)
		for _, allowed := range userTypes {
			if userType == allowed {
				c.Next()
				return
			}
		}

		logger.WarnWithContext(c.Request.Context(), "User type not permitted").
			String("user_type", userType).
			Path(c.Request.URL.Path).
			Log()
		c.JSON(http.StatusForbidden, constants.BuildErrorResponse(constants.MsgForbidden, nil))
		c.Abort()
	}
}

// OptionalAuth attaches identity when a valid token is present but
// never rejects the request.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(constants.GinKeyUserID, claims.UserID)
		c.Set(constants.GinKeyUserEmail, claims.Email)
		c.Set(constants.GinKeyUserType, claims.UserType)

		ctx := context.WithValue(c.Request.Context(), ctxutil.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, ctxutil.UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, ctxutil.UserTypeKey, claims.UserType)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
