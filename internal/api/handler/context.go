package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edgerelay/edgerelay/internal/api/middleware"
	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Presence
// proves the middleware ran; handlers on authenticated routes fail fast with
// 401 if it did not.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
