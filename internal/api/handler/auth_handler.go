package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/core/ports"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/broker"
	"github.com/mesafina/restaurant-backend/internal/validation"
)

// Requester abstracts the broker client so handlers can be tested
// without a running transport.
type Requester interface {
	Request(ctx context.Context, pattern broker.Pattern, payload any) (json.RawMessage, error)
}

// AuthHandler forwards auth operations to the auth service over the
// broker. It carries no business logic: successful reply bodies pass
// through verbatim, failures are translated by status.
type AuthHandler struct {
	broker Requester
	log    zerolog.Logger
}

func NewAuthHandler(b Requester, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{broker: b, log: log}
}

// Signup registers a user via the user.signup pattern.
func (h *AuthHandler) Signup(c echo.Context) error {
	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, bindErrorBody())
	}

	in, violations := validation.Registration(in)
	if len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, validationErrorBody{
			StatusCode: http.StatusBadRequest,
			Message:    violations,
			Error:      "Bad Request",
		})
	}

	return h.forward(c, broker.PatternUserSignup, in, http.StatusCreated, "Registration failed")
}

// Login authenticates via the user.login pattern.
func (h *AuthHandler) Login(c echo.Context) error {
	var in loginRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, bindErrorBody())
	}

	if violations := validation.Login(in.Email, in.Password); len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, validationErrorBody{
			StatusCode: http.StatusBadRequest,
			Message:    violations,
			Error:      "Bad Request",
		})
	}

	return h.forward(c, broker.PatternUserLogin, in, http.StatusCreated, "Login failed")
}

// Me returns the current user via the user.me pattern. The payload is
// the bare user id.
func (h *AuthHandler) Me(c echo.Context) error {
	var in userIDRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, bindErrorBody())
	}
	return h.forward(c, broker.PatternUserMe, in.UserID, http.StatusOK, "Failed to get user info")
}

// Logout ends a session via the user.logout pattern.
func (h *AuthHandler) Logout(c echo.Context) error {
	var in userIDRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, bindErrorBody())
	}
	return h.forward(c, broker.PatternUserLogout, in.UserID, http.StatusOK, "Logout failed")
}

// Refresh exchanges a refresh token via the user.refresh pattern.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var in refreshRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, bindErrorBody())
	}
	return h.forward(c, broker.PatternUserRefresh, in.RefreshToken, http.StatusOK, "Token refresh failed")
}

// forward performs the broker round-trip and translates the outcome.
// Upstream conflicts keep their 409; other upstream failures keep their
// declared status (else 400) and message (else the operation fallback);
// transport failures and timeouts become 502.
func (h *AuthHandler) forward(c echo.Context, pattern broker.Pattern, payload any, successStatus int, fallback string) error {
	raw, err := h.broker.Request(c.Request().Context(), pattern, payload)
	if err == nil {
		return c.JSONBlob(successStatus, raw)
	}

	var remote *broker.RemoteError
	if errors.As(err, &remote) {
		if remote.Status == http.StatusConflict {
			msg := remote.Message
			if msg == "" {
				msg = "Email already registered"
			}
			return c.JSON(http.StatusConflict, apiError{StatusCode: http.StatusConflict, Message: msg})
		}

		status := remote.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		msg := remote.Message
		if msg == "" {
			msg = fallback
		}
		return c.JSON(status, apiError{StatusCode: status, Message: msg})
	}

	if errors.Is(err, broker.ErrTimeout) {
		h.log.Error().Str("pattern", string(pattern)).Msg("upstream request timed out")
		return c.JSON(http.StatusBadGateway, apiError{
			StatusCode: http.StatusBadGateway,
			Message:    "Auth service did not respond in time",
		})
	}

	h.log.Error().Err(err).Str("pattern", string(pattern)).Msg("upstream request failed")
	return c.JSON(http.StatusBadGateway, apiError{
		StatusCode: http.StatusBadGateway,
		Message:    "Auth service unavailable",
	})
}
