package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/ports"
)

// ClaimsKey is the context key under which Auth stores the verified claims.
const ClaimsKey = "auth_claims"

// Auth extracts the bearer token, authenticates it against the given realm,
// and injects the verified claims into the request context. The core never
// sees the Authorization header, only the extracted token string.
//
// Failures propagate as domain errors for the central error handler:
// missing/malformed headers and bad tokens map to 401, a valid token from the
// other realm to 403.
func Auth(svc ports.AuthService, realm domain.Realm) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := svc.Authenticate(parts[1], realm)
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
