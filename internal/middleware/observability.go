package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/testpick/testpick-api/pkg/logger"
	"github.com/testpick/testpick-api/pkg/metrics"
)

// ObservabilityMiddleware instruments HTTP requests with metrics and logging
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// Route template is only known after routing; using it instead of the
		// raw path keeps metric cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, path, statusStr).Inc()

		fields := []zap.Field{
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if status >= 400 && len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		logger.LogHTTPRequest(method, c.Request.URL.Path, status, duration, fields...)
	}
}
