package middleware

import (
	"net/http"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Recovery converts panics into a 500 response and logs the panic
// value with request context.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.ErrorWithContext(c.Request.Context(), "Panic recovered").
			Any("panic", recovered).
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			Log()

		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalServer, nil))
	})
}
