package middleware

import (
	"strconv"
	"time"

	apperrors "eduplatform/errors"
	"eduplatform/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// AccessLog writes one structured line per request. Internal errors attached
// with c.Error are logged with their cause, which never reaches the client.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", routeOf(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(ContextRequestID)),
		}
		if id, _, ok := CurrentUser(c); ok {
			fields = append(fields, zap.Uint("user_id", id))
		}

		for _, e := range c.Errors {
			if apperrors.KindOf(e.Err) == apperrors.KindInternal {
				log.Error("request failed", append(fields, zap.Error(e.Err))...)
				return
			}
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Metrics records request latency by route template so ids do not explode
// label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			routeOf(c),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
