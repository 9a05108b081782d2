package middleware

import (
	"contact-form-relay/internal/delivery/http/response"
	"contact-form-relay/pkg/apperror"
	"contact-form-relay/pkg/logger"
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors attached to the context as the standard JSON
// envelope. The relay route answers with redirects and never attaches
// errors here; this covers the JSON surfaces (health, unknown routes).
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				// Internal details stay in the logs; clients get a generic
				// message.
				logger.Log.Error("unhandled request error", "error", err, "path", c.Request.URL.Path)
				appErr = apperror.Internal(err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		}
	}
}
