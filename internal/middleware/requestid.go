package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID adds a unique request ID to each request
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Request().Header.Set(echo.HeaderXRequestID, requestID)
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		return next(c)
	}
}
