package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is the service version reported on the system endpoints.
const Version = "1.0.0"

// SystemHandler serves unauthenticated service metadata.
type SystemHandler struct {
	env string
}

func NewSystemHandler(env string) *SystemHandler {
	return &SystemHandler{env: env}
}

// Status reports operational state and feature flags.
//
// @Summary      System status
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /system/status [get]
func (h *SystemHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":     "EdgeRelay Core API",
		"version":     Version,
		"environment": h.env,
		"status":      "operational",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"features": map[string]bool{
			"admin_authentication":  true,
			"client_authentication": true,
			"database_separation":   true,
			"redis_caching":         true,
		},
	})
}

// Info reports static service information.
//
// @Summary      Service info
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /system/info [get]
func (h *SystemHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":     "EdgeRelay Core API",
		"description": "Core API service for the EdgeRelay communication platform",
		"version":     Version,
		"environment": h.env,
		"endpoints": map[string]string{
			"admin":  "/api/admin",
			"client": "/api/client",
			"system": "/api/system",
		},
	})
}
