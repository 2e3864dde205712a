package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
	"github.com/mesafina/restaurant-backend/internal/core/ports"
)

func postSignup(t *testing.T, svc ports.AuthService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &signupHandler{svc: svc, resolve: ResolveError(zerolog.Nop())}
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestSignupHandler_Created(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(_ context.Context, in ports.RegisterInput) (*ports.SignupResult, error) {
			return &ports.SignupResult{
				Message: "User registered successfully",
				User:    domain.PublicUser{ID: "u1", Email: in.Email, Role: domain.RoleCustomer},
			}, nil
		},
	}

	rec := postSignup(t, svc, `{"email":"a@b.com","password":"Abcdef1!","firstName":"Jo","lastName":"Do"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"role":"customer"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_Conflict(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, ports.RegisterInput) (*ports.SignupResult, error) {
			return nil, domain.ErrEmailExists
		},
	}

	rec := postSignup(t, svc, `{"email":"a@b.com","password":"Abcdef1!","firstName":"Jo","lastName":"Do"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already registered") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_ValidationBody(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, ports.RegisterInput) (*ports.SignupResult, error) {
			t.Fatal("service must not run on invalid input")
			return nil, nil
		},
	}

	rec := postSignup(t, svc, `{"email":"a@b.com","password":"SecurePass123","firstName":"Jo","lastName":"Do"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body validationErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Error != "Bad Request" || body.StatusCode != 400 {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	want := "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character (@$!%*?&)"
	if len(body.Message) != 1 || body.Message[0] != want {
		t.Fatalf("unexpected violations: %v", body.Message)
	}
}
