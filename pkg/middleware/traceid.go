package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxTraceIDLength = 64

// TraceIDMiddleware tags every request with a trace id, reusing an inbound
// X-Trace-ID so upstream callers can correlate their logs with ours.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := strings.TrimSpace(c.GetHeader("X-Trace-ID"))
		if traceID == "" || len(traceID) > maxTraceIDLength {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}
