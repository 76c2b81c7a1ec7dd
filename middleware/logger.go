package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		marker := "✅"
		switch {
		case status >= 500:
			marker = "❌"
		case status >= 400:
			marker = "⚠️"
		}
		user := "-"
		if claims, ok := CurrentClaims(c); ok {
			user = claims.Subject
		}
		log.Printf("%s %s %s %s user=%s %d %s", marker, c.Request.Method, c.Request.URL.Path, c.ClientIP(), user, status, latency)
	}
}
