package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

const defaultRequestTimeout = 15 * time.Second

// RequestTimeout stamps a deadline onto every request context. Repository
// calls inherit it, so pool acquisition on an exhausted pool gives up when
// the deadline passes instead of parking the handler goroutine forever.
// A non-positive d falls back to 15 seconds.
func RequestTimeout(d time.Duration) echo.MiddlewareFunc {
	if d <= 0 {
		d = defaultRequestTimeout
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
