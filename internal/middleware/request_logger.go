package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/metrics"
)

// RequestLogger 记录每个请求的访问日志与 Prometheus 指标。
// 路径使用路由模板，避免 ID 造成指标基数膨胀。
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start).Seconds()

		metrics.ReqCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		metrics.ReqDuration.WithLabelValues(c.Request.Method, path).Observe(duration)

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", duration,
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
			log.Error("http_request", fields...)
			return
		}
		log.Info("http_request", fields...)
	}
}
