package server

import (
	"fmt"
	"net/http"
	"time"

	"truecheck/internal/common/logger"
	"truecheck/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"

	ctxKeyRequestID = "requestId"
	ctxKeyType      = "verificationType"
)

// requestID reuses a well-formed inbound X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// accessLog writes one line per request. Bodies are never logged because
// they carry the caller's API key.
func accessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"requestId":   c.GetString(ctxKeyRequestID),
			"clientIp":    c.ClientIP(),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request completed", fields)
		case status >= http.StatusBadRequest:
			log.Warn("request completed", fields)
		default:
			log.Info("request completed", fields)
		}
	}
}

// recoverPanic answers a panic with the fallback record of the route's shape.
func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	route := c.FullPath()
	s.logger.Error("panic recovered", map[string]interface{}{
		"path":      c.Request.URL.Path,
		"requestId": c.GetString(ctxKeyRequestID),
		"panic":     fmt.Sprint(recovered),
	})

	switch route {
	case RouteVerifyV1:
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.SimpleResponse{
			Results: []models.SimpleResult{models.FallbackSimple()},
		})
	case RouteVerify, RouteVerifyV2:
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ExtendedResponse{
			Results: []models.ExtendedResult{models.FallbackExtended(c.GetString(ctxKeyType))},
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}
