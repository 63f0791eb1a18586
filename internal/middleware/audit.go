package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestAudit trace chaque requête avec un id unique, le statut et la
// latence.
func RequestAudit() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Printf("📋 [%s] %s %s → %d (%s)",
			requestID[:8], c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
