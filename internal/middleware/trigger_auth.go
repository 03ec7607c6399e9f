package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TriggerAuthMiddleware guards the internal event-trigger endpoints with a
// shared secret carried in the X-Trigger-Secret header.
func TriggerAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Trigger endpoints are disabled")
			}

			provided := c.Request().Header.Get("X-Trigger-Secret")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid trigger secret")
			}
			return next(c)
		}
	}
}
