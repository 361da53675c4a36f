package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/daycarehub/backend/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{validate: validator.New()}
}

// ValidateRequestBody decodes and validates the request body against
// the struct produced by factory. The body is restored afterwards so
// handlers can bind it again.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.WarnWithContext(ctx, "Failed to read request body").
					Path(c.Request.URL.Path).
					Err(err).
					Log()
				c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, nil))
				c.Abort()
				return
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.WarnWithContext(ctx, "JSON unmarshaling failed").
				Path(c.Request.URL.Path).
				Int("body_size", len(bodyBytes)).
				Err(err).
				Log()
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidRequestBody, err.Error()))
			c.Abort()
			return
		}

		if err := m.validate.Struct(request); err != nil {
			var validationErrors []string
			for _, e := range err.(validator.ValidationErrors) {
				if fieldMessages := validation.CustomMessage(e.Field()); fieldMessages != nil {
					if msg, exists := fieldMessages[e.Tag()]; exists {
						validationErrors = append(validationErrors, msg)
						continue
					}
				}
				validationErrors = append(validationErrors, validation.DefaultMessage(e.Field(), e.Tag()))
			}

			logger.WarnWithContext(ctx, "Request validation failed").
				Path(c.Request.URL.Path).
				Int("error_count", len(validationErrors)).
				Any("validation_errors", validationErrors).
				Log()

			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgValidationFailed, validationErrors))
			c.Abort()
			return
		}

		c.Next()
	}
}
