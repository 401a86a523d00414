package middleware

import (
	"errors"
	"net/http"

	"contacts-api/internal/delivery/http/response"
	"contacts-api/pkg/apperror"
	"contacts-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"request_id", response.RequestID(c),
					"path", c.FullPath(),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Category, appErr.Message, appErr.Details)
			return
		}

		// Errors that never went through apperror have no vetted message
		logger.Log.Error("Unhandled error",
			"request_id", response.RequestID(c),
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred. Please try again later.", nil)
	}
}
