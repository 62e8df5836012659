package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewErrorResponse maps err onto its user facing message and code.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Error: apperr.Message(err), Code: apperr.Code(err)}
}

// ErrorHandler writes the last error a handler attached with c.Error as a
// JSON response, and turns panics into a 500. The original cause is logged
// but never sent to the client.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.Any("error", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "internal server error",
					Code:  apperr.KindInternal.String(),
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
		c.JSON(status, NewErrorResponse(err))
	}
}
