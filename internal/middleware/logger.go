package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"hotelparadise/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request after completion and recovers from
// handler panics with a JSON 500.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequest(c, start, "panic", err.Error())
				log.Printf("panic_stack=%s", debug.Stack())

				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
				c.Abort()
				return
			}

			status := "ok"
			if c.Writer.Status() >= http.StatusInternalServerError {
				status = "http_error"
			}
			logRequest(c, start, status, errorSummary(c))
		}()

		c.Next()
	}
}

func logRequest(c *gin.Context, start time.Time, outcome, message string) {
	log.Printf(
		"request outcome=%s status=%d method=%s path=%s client_ip=%s user_id=%d role=%s latency=%s error=%q",
		outcome,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		c.GetInt64("user_id"),
		c.GetString("role"),
		time.Since(start),
		message,
	)
}

func errorSummary(c *gin.Context) string {
	if len(c.Errors) == 0 {
		return ""
	}
	return c.Errors.String()
}
