package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/core/ports"
	"github.com/mesafina/restaurant-backend/internal/validation"
)

const serviceVersion = "1.0.0"

// NewRouter builds the auth service's direct HTTP surface: POST /signup
// with the same contract as the gateway route (useful when bypassing the
// broker) plus health and metrics.
func NewRouter(svc ports.AuthService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	h := &signupHandler{svc: svc, resolve: ResolveError(log)}
	e.POST("/signup", h.Signup)

	e.GET("/health", health)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

type signupHandler struct {
	svc     ports.AuthService
	resolve func(error) (int, string)
}

// validationErrorBody is the contract shape for structural violations:
// one message per failed rule.
type validationErrorBody struct {
	StatusCode int      `json:"statusCode"`
	Message    []string `json:"message"`
	Error      string   `json:"error"`
}

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (h *signupHandler) Signup(c echo.Context) error {
	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorBody{
			StatusCode: http.StatusBadRequest,
			Message:    []string{"invalid request body"},
			Error:      "Bad Request",
		})
	}

	in, violations := validation.Registration(in)
	if len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, validationErrorBody{
			StatusCode: http.StatusBadRequest,
			Message:    violations,
			Error:      "Bad Request",
		})
	}

	result, err := h.svc.Signup(c.Request().Context(), in)
	if err != nil {
		status, msg := h.resolve(err)
		return c.JSON(status, apiError{StatusCode: status, Message: msg})
	}
	return c.JSON(http.StatusCreated, result)
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "auth-api",
		"version":   serviceVersion,
	})
}
