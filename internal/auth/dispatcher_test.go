package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
	"github.com/mesafina/restaurant-backend/internal/core/ports"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/broker"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.RegisterInput) (*ports.SignupResult, error)
	loginFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn     func(ctx context.Context, userID string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.RegisterInput) (*ports.SignupResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*ports.AuthResult, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) Logout(_ context.Context, userID string) (*ports.LogoutResult, error) {
	return &ports.LogoutResult{Message: "User " + userID + " logged out"}, nil
}

func (s *stubAuthService) Refresh(context.Context, string) (*ports.AuthResult, error) {
	return &ports.AuthResult{}, nil
}

func TestDispatcher_Bind_CoversEveryPattern(t *testing.T) {
	srv := broker.NewServer(nil, broker.AuthQueue, 0, ResolveError(zerolog.Nop()), zerolog.Nop())

	if err := NewDispatcher(&stubAuthService{}).Bind(srv); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	for _, pattern := range broker.AuthPatterns() {
		if !srv.Registered(pattern) {
			t.Fatalf("pattern %q has no handler", pattern)
		}
	}
}

func TestDispatcher_HandleSignup_ValidatesBeforeService(t *testing.T) {
	d := NewDispatcher(&stubAuthService{
		signupFn: func(context.Context, ports.RegisterInput) (*ports.SignupResult, error) {
			t.Fatal("service must not run on invalid input")
			return nil, nil
		},
	})

	payload, _ := json.Marshal(ports.RegisterInput{
		Email:     "nope",
		Password:  "weak",
		FirstName: "J",
		LastName:  "D",
	})
	_, err := d.handleSignup(context.Background(), payload)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	// four bad fields, with "weak" failing two password rules
	if len(ve.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %v", ve.Violations)
	}
}

func TestDispatcher_HandleSignup_PassesNormalizedInput(t *testing.T) {
	var got ports.RegisterInput
	d := NewDispatcher(&stubAuthService{
		signupFn: func(_ context.Context, in ports.RegisterInput) (*ports.SignupResult, error) {
			got = in
			return &ports.SignupResult{Message: "User registered successfully"}, nil
		},
	})

	payload := []byte(`{"email":" TEST@EXAMPLE.COM ","password":"Abcdef1!","firstName":" Jo ","lastName":" Do "}`)
	if _, err := d.handleSignup(context.Background(), payload); err != nil {
		t.Fatalf("handleSignup returned error: %v", err)
	}
	if got.Email != "test@example.com" || got.FirstName != "Jo" || got.LastName != "Do" {
		t.Fatalf("input not normalized: %+v", got)
	}
}

func TestDispatcher_HandleMe_DecodesBareString(t *testing.T) {
	d := NewDispatcher(&stubAuthService{
		meFn: func(_ context.Context, userID string) (*ports.AuthResult, error) {
			if userID != "user-42" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &ports.AuthResult{}, nil
		},
	})

	if _, err := d.handleMe(context.Background(), json.RawMessage(`"user-42"`)); err != nil {
		t.Fatalf("handleMe returned error: %v", err)
	}

	if _, err := d.handleMe(context.Background(), json.RawMessage(`{"not":"a string"}`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestResolveError(t *testing.T) {
	resolve := ResolveError(zerolog.Nop())

	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{domain.ErrEmailExists, http.StatusConflict, "Email already registered"},
		{domain.ErrInvalidData, http.StatusBadRequest, "Invalid data provided"},
		{domain.ErrRegistrationFailed, http.StatusBadRequest, "Registration failed. Please try again."},
		{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
		{domain.ErrUserNotFound, http.StatusBadRequest, "User not found"},
		{domain.ErrInvalidToken, http.StatusBadRequest, "Invalid refresh token"},
		{&ValidationError{Violations: []string{"a", "b"}}, http.StatusBadRequest, "a; b"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		status, msg := resolve(tc.err)
		if status != tc.wantStatus || msg != tc.wantMsg {
			t.Fatalf("resolve(%v) = %d %q, want %d %q", tc.err, status, msg, tc.wantStatus, tc.wantMsg)
		}
	}
}
