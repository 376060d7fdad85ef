package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/xnftpulse/internal/domain/dto"
	"github.com/guttosm/xnftpulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON ErrorResponse
// when the handler did not write a response itself.
//
// Behavior:
//   - Runs after the rest of the chain (c.Next()).
//   - Logs the last error with the request id.
//   - Responds 500 unless a status was already chosen via c.Status / AbortWithError.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	last := c.Errors.Last()
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().Str("request_id", toString(rid)).Str("path", c.Request.URL.Path).Err(last.Err).Msg("request failed")

	if c.Writer.Written() {
		return
	}
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, dto.NewErrorResponse(http.StatusText(status), last.Err))
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
