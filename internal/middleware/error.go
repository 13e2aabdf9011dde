package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-harbor/backend/internal/metrics"
)

// ErrorResponse is the body of every 500 response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse for the current request
func NewErrorResponse(c *gin.Context, msg string) ErrorResponse {
	return ErrorResponse{
		Error:     msg,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	}
}

// Recovery turns a panic in a handler into a logged 500 JSON response
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				metrics.PanicRecoveries.Inc()
				var errMsg string
				switch v := err.(type) {
				case error:
					errMsg = v.Error()
				default:
					errMsg = fmt.Sprintf("%v", v)
				}
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					"error", errMsg,
					"request_id", c.GetString(RequestIDKey),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse(c, "Internal Server Error"))
			}
		}()
		c.Next()
	}
}
