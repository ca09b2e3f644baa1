package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmrkt/nftpulse/internal/domain/dto"
	"github.com/openmrkt/nftpulse/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors attached to the
// context (via c.Error) into a standardized JSON error response.
//
// Behavior:
//   - Runs the rest of the chain first.
//   - If any handler attached errors and no response was written yet,
//     responds 500 with the last error wrapped in dto.ErrorResponse.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError aborts the request with the given status and a standardized
// error body.
//
// Parameters:
//   - c: the request context.
//   - status: HTTP status code to return.
//   - message: human-readable message for the response body.
//   - err: optional underlying error included as detail.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
