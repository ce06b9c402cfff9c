package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/bhavpulse/internal/domain/dto"
	"github.com/guttosm/bhavpulse/internal/logger"
)

// ErrorHandler logs every error attached with c.Error during the request and
// renders the last one when the handler did not write a response itself.
// A dto.ErrorResponse is sent as is, any other error becomes a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	status := c.Writer.Status()
	if !c.Writer.Written() && status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	level := zerolog.WarnLevel
	if status >= http.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}
	for _, e := range c.Errors {
		logger.With("http").WithLevel(level).
			Err(e.Err).
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("request failed")
	}

	if c.Writer.Written() {
		return
	}
	var resp dto.ErrorResponse
	if !errors.As(c.Errors.Last().Err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", c.Errors.Last().Err)
	}
	c.JSON(status, resp)
}

// AbortWithError attaches err to the context for ErrorHandler, stops the chain
// and writes a dto.ErrorResponse with status. err may be nil.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	if err == nil {
		err = resp
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}
