package middleware

import (
	"strconv"
	"time"

	"marketplace/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request count and duration per method/path/status
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)

		return err
	}
}
