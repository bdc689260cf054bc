package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing one sent by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("requestId", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func PerformanceLogger(slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		log.Printf("[PERF] %s %s | Status: %d | Time: %v | ID: %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency,
			c.GetString("requestId"))

		if slow > 0 && latency > slow {
			log.Printf("[SLOW] %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
