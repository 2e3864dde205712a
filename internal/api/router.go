// Package api is the gateway's HTTP layer. It owns no business logic:
// requests are forwarded to backend services over the message broker and
// replies are translated back into HTTP responses.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/api/handler"
)

// NewRouter builds the gateway's Echo instance with all routes
// registered. The broker client and service registry are injected by the
// caller.
func NewRouter(authBroker handler.Requester, services map[string]handler.ServiceInfo, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	authHandler := handler.NewAuthHandler(authBroker, log)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/me", authHandler.Me)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/refresh", authHandler.Refresh)

	healthHandler := handler.NewHealthHandler(services)
	e.GET("/health", healthHandler.Health)
	e.GET("/services", healthHandler.Services)

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
