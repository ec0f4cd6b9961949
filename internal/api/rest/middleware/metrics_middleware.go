package middleware

import (
	"time"

	"github.com/crmgate/retailcrm-gateway/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics создает middleware, записывающее метрики обработанных запросов
func Metrics(m metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		// Шаблон маршрута вместо сырого URI, чтобы не раздувать кардинальность
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(startTime))
	}
}
