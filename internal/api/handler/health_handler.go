package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const gatewayVersion = "1.0.0"

// ServiceInfo describes one backend service in the registry.
type ServiceInfo struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HealthHandler serves the gateway's own health and the service
// registry.
type HealthHandler struct {
	services map[string]ServiceInfo
}

func NewHealthHandler(services map[string]ServiceInfo) *HealthHandler {
	return &HealthHandler{services: services}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "api-gateway",
		"version":   gatewayVersion,
		"services":  h.services,
	})
}

func (h *HealthHandler) Services(c echo.Context) error {
	registry := map[string]any{
		"gateway": map[string]any{
			"name":        "API Gateway",
			"description": "Unified entry point for all services",
			"endpoints": map[string]string{
				"health":   "/health",
				"services": "/services",
				"auth":     "/auth/*",
			},
		},
	}
	for name, svc := range h.services {
		registry[name] = svc
	}
	return c.JSON(http.StatusOK, registry)
}
