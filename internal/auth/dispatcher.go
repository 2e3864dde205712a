// Package auth wires the auth service's two transports: the broker
// dispatcher consuming auth_queue and the direct HTTP surface.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
	"github.com/mesafina/restaurant-backend/internal/core/ports"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/broker"
	"github.com/mesafina/restaurant-backend/internal/validation"
)

// ValidationError aggregates the structural violations of a request. It
// is raised before any business logic runs.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Dispatcher binds the user.* patterns to AuthService operations.
type Dispatcher struct {
	svc ports.AuthService
}

func NewDispatcher(svc ports.AuthService) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// Bind registers one handler per declared pattern and then verifies the
// binding is complete, so a pattern without a handler is caught at
// startup rather than at dispatch time.
func (d *Dispatcher) Bind(srv *broker.Server) error {
	bindings := map[broker.Pattern]broker.Handler{
		broker.PatternUserSignup:  d.handleSignup,
		broker.PatternUserLogin:   d.handleLogin,
		broker.PatternUserMe:      d.handleMe,
		broker.PatternUserLogout:  d.handleLogout,
		broker.PatternUserRefresh: d.handleRefresh,
	}
	for pattern, h := range bindings {
		if err := srv.Register(pattern, h); err != nil {
			return err
		}
	}

	for _, pattern := range broker.AuthPatterns() {
		if !srv.Registered(pattern) {
			return fmt.Errorf("auth: pattern %q has no handler", pattern)
		}
	}
	return nil
}

func (d *Dispatcher) handleSignup(ctx context.Context, data json.RawMessage) (any, error) {
	var in ports.RegisterInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &ValidationError{Violations: []string{"invalid signup payload"}}
	}

	// The gateway validates before sending, but broker callers may
	// bypass the gateway, so the checks run here as well.
	in, violations := validation.Registration(in)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return d.svc.Signup(ctx, in)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *Dispatcher) handleLogin(ctx context.Context, data json.RawMessage) (any, error) {
	var in loginPayload
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &ValidationError{Violations: []string{"invalid login payload"}}
	}
	return d.svc.Login(ctx, in.Email, in.Password)
}

// me, logout, and refresh carry a bare JSON string as their payload.

func (d *Dispatcher) handleMe(ctx context.Context, data json.RawMessage) (any, error) {
	userID, err := decodeString(data)
	if err != nil {
		return nil, err
	}
	return d.svc.Me(ctx, userID)
}

func (d *Dispatcher) handleLogout(ctx context.Context, data json.RawMessage) (any, error) {
	userID, err := decodeString(data)
	if err != nil {
		return nil, err
	}
	return d.svc.Logout(ctx, userID)
}

func (d *Dispatcher) handleRefresh(ctx context.Context, data json.RawMessage) (any, error) {
	token, err := decodeString(data)
	if err != nil {
		return nil, err
	}
	return d.svc.Refresh(ctx, token)
}

func decodeString(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", &ValidationError{Violations: []string{"invalid payload"}}
	}
	return s, nil
}

// ResolveError classifies a handler error into the status and message
// carried back over the broker. Unknown errors are logged with their
// real cause and surfaced as a generic 500.
func ResolveError(log zerolog.Logger) broker.ErrorResolver {
	return func(err error) (int, string) {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return http.StatusBadRequest, ve.Error()
		}

		switch {
		case errors.Is(err, domain.ErrEmailExists):
			return http.StatusConflict, "Email already registered"
		case errors.Is(err, domain.ErrInvalidData):
			return http.StatusBadRequest, "Invalid data provided"
		case errors.Is(err, domain.ErrRegistrationFailed):
			return http.StatusBadRequest, "Registration failed. Please try again."
		case errors.Is(err, domain.ErrInvalidCredentials):
			return http.StatusBadRequest, "Invalid email or password"
		case errors.Is(err, domain.ErrUserNotFound):
			return http.StatusBadRequest, "User not found"
		case errors.Is(err, domain.ErrInvalidToken):
			return http.StatusBadRequest, "Invalid refresh token"
		}

		log.Error().Err(err).Msg("unhandled dispatch error")
		return http.StatusInternalServerError, "internal server error"
	}
}
